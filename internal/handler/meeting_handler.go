package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/report"
)

type MeetingHandler struct {
	meetings *repository.MeetingRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

func NewMeetingHandler(meetings *repository.MeetingRepository, resolver *access.Resolver, logger *zap.Logger) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, resolver: resolver, logger: logger}
}

type meetingView struct {
	model.Meeting
	Status report.MeetingStatus `json:"status"`
}

// List returns meetings sorted by derived status, least finished first. The
// status is recomputed on every read, never stored.
func (h *MeetingHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}

	meetings, err := h.meetings.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	report.SortMeetingsByStatus(meetings)

	views := make([]meetingView, 0, len(meetings))
	for _, m := range meetings {
		views = append(views, meetingView{Meeting: m, Status: report.MeetingStatusOf(m)})
	}
	c.JSON(http.StatusOK, gin.H{"meetings": views})
}

type meetingRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	MeetingDate time.Time          `json:"meeting_date"`
	DueDate     *time.Time         `json:"due_date"`
	Type        string             `json:"meeting_type"`
	Completed   bool               `json:"completed"`
	Decisions   []string           `json:"decisions"`
	ActionItems []model.ActionItem `json:"action_items"`
}

func (req *meetingRequest) apply(m *model.Meeting) {
	m.Title = req.Title
	m.Description = req.Description
	m.MeetingDate = req.MeetingDate
	m.DueDate = req.DueDate
	m.Type = model.MeetingType(req.Type)
	m.Completed = req.Completed
	m.Decisions = req.Decisions
	m.ActionItems = req.ActionItems
}

func (h *MeetingHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditTasks) {
		return
	}

	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	meeting := &model.Meeting{ProjectID: projectID}
	req.apply(meeting)
	if err := meeting.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.meetings.Create(c.Request.Context(), meeting); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meeting": meetingView{Meeting: *meeting, Status: report.MeetingStatusOf(*meeting)}})
}

func (h *MeetingHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	meetingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditTasks) {
		return
	}

	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
		return
	}

	meeting, err := h.meetings.GetByID(c.Request.Context(), meetingID)
	if err != nil {
		writeError(c, err)
		return
	}
	if meeting == nil || meeting.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "meeting not found"})
		return
	}

	req.apply(meeting)
	if err := meeting.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.meetings.Update(c.Request.Context(), meeting); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meetingView{Meeting: *meeting, Status: report.MeetingStatusOf(*meeting)}})
}

func (h *MeetingHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	meetingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canEditTasks) {
		return
	}

	if err := h.meetings.Delete(c.Request.Context(), meetingID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
