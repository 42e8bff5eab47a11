package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/report"
)

type RoomHandler struct {
	rooms     *repository.RoomRepository
	tasks     *repository.TaskRepository
	resolver  *access.Resolver
	lifecycle *lifecycle.Manager
	logger    *zap.Logger
}

func NewRoomHandler(rooms *repository.RoomRepository, tasks *repository.TaskRepository, resolver *access.Resolver, lm *lifecycle.Manager, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, tasks: tasks, resolver: resolver, lifecycle: lm, logger: logger}
}

func canEditRooms(p access.PermissionSet) bool { return p.CanEditRooms }

type roomView struct {
	model.Room
	Progress float64 `json:"progress"`
}

// List returns the project's rooms with per-room task progress. The rooms
// page counts every task including NOT_RELEVANT ones.
func (h *RoomHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}

	rooms, err := h.rooms.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}

	views := make([]roomView, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, roomView{
			Room:     room,
			Progress: report.Round2(report.RoomProgress(room.ID, tasks, false)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": views})
}

type roomRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	IsUsable bool   `json:"is_usable"`
	Icon     string `json:"icon"`
}

func (h *RoomHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditRooms) {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	room := &model.Room{
		ProjectID: projectID,
		Name:      req.Name,
		Type:      model.NormalizeRoomType(req.Type),
		Status:    model.NormalizeRoomStatus(req.Status),
		IsUsable:  req.IsUsable,
		Icon:      req.Icon,
	}
	if err := room.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.rooms.Create(c.Request.Context(), room); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"room": room})
}

func (h *RoomHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditRooms) {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	room, err := h.rooms.GetByID(c.Request.Context(), roomID)
	if err != nil {
		writeError(c, err)
		return
	}
	if room == nil || room.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}

	room.Name = req.Name
	room.Type = model.NormalizeRoomType(req.Type)
	room.Status = model.NormalizeRoomStatus(req.Status)
	room.IsUsable = req.IsUsable
	room.Icon = req.Icon
	if err := room.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.rooms.Update(c.Request.Context(), room); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// Delete removes only the room; its tasks keep a dangling room reference.
func (h *RoomHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	roomID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditRooms) {
		return
	}

	if err := h.lifecycle.DeleteRoom(c.Request.Context(), roomID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
