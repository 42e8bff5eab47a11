package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
)

type TaskHandler struct {
	tasks     *repository.TaskRepository
	resolver  *access.Resolver
	lifecycle *lifecycle.Manager
	logger    *zap.Logger
}

func NewTaskHandler(tasks *repository.TaskRepository, resolver *access.Resolver, lm *lifecycle.Manager, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, resolver: resolver, lifecycle: lm, logger: logger}
}

func canEditTasks(p access.PermissionSet) bool { return p.CanEditTasks }

func (h *TaskHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}

	tasks, err := h.tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

type taskRequest struct {
	RoomID          *int64     `json:"room_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Status          string     `json:"status"`
	StartPlanned    *time.Time `json:"start_planned"`
	EndPlanned      *time.Time `json:"end_planned"`
	StartActual     *time.Time `json:"start_actual"`
	EndActual       *time.Time `json:"end_actual"`
	BudgetAllocated float64    `json:"budget_allocated"`
	DependsOn       []int64    `json:"depends_on"`
}

func (req *taskRequest) apply(t *model.Task) {
	t.RoomID = req.RoomID
	t.Title = req.Title
	t.Description = req.Description
	t.Category = req.Category
	t.Status = model.TaskStatus(req.Status)
	t.StartPlanned = req.StartPlanned
	t.EndPlanned = req.EndPlanned
	t.StartActual = req.StartActual
	t.EndActual = req.EndActual
	t.BudgetAllocated = req.BudgetAllocated
	t.DependsOn = req.DependsOn
}

func (h *TaskHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditTasks) {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task body"})
		return
	}

	task := &model.Task{ProjectID: projectID}
	req.apply(task)
	if err := h.lifecycle.SaveTask(c.Request.Context(), task); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditTasks) {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task body"})
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		writeError(c, err)
		return
	}
	if task == nil || task.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	req.apply(task)
	if err := h.lifecycle.SaveTask(c.Request.Context(), task); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditTasks) {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), taskID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
