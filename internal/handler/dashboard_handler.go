package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/report"
)

// DashboardHandler serves the aggregated project view. Every figure is
// computed from fresh snapshots on each request; the sections a caller sees
// are masked by their permission set rather than failing the whole page.
type DashboardHandler struct {
	projects *repository.ProjectRepository
	rooms    *repository.RoomRepository
	tasks    *repository.TaskRepository
	vendors  *repository.VendorRepository
	payments *repository.PaymentRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

func NewDashboardHandler(
	projects *repository.ProjectRepository,
	rooms *repository.RoomRepository,
	tasks *repository.TaskRepository,
	vendors *repository.VendorRepository,
	payments *repository.PaymentRepository,
	resolver *access.Resolver,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		projects: projects,
		rooms:    rooms,
		tasks:    tasks,
		vendors:  vendors,
		payments: payments,
		resolver: resolver,
		logger:   logger,
	}
}

type roomProgressView struct {
	RoomID   int64   `json:"room_id"`
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
}

func (h *DashboardHandler) Get(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}
	perms := currentPermissions(c, h.resolver, projectID)

	ctx := c.Request.Context()
	project, err := h.projects.GetByID(ctx, projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	tasks, err := h.tasks.ListByProject(ctx, projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	rooms, err := h.rooms.ListByProject(ctx, projectID)
	if err != nil {
		writeError(c, err)
		return
	}

	// The dashboard's room bars exclude NOT_RELEVANT tasks.
	roomProgress := make([]roomProgressView, 0, len(rooms))
	for _, room := range rooms {
		roomProgress = append(roomProgress, roomProgressView{
			RoomID:   room.ID,
			Name:     room.Name,
			Progress: report.Round2(report.RoomProgress(room.ID, tasks, true)),
		})
	}

	resp := gin.H{
		"progress":      report.Round2(report.TaskProgress(tasks)),
		"room_progress": roomProgress,
		"waiting_tasks": report.WaitingTaskCount(tasks),
	}

	if perms.CanViewBudget || perms.CanViewPayments {
		vendors, err := h.vendors.ListByProject(ctx, projectID)
		if err != nil {
			writeError(c, err)
			return
		}
		payments, err := h.payments.ListByProject(ctx, projectID)
		if err != nil {
			writeError(c, err)
			return
		}

		if perms.CanViewBudget {
			summary := report.Budget(project.BudgetPlanned, vendors, payments)
			summary.BudgetUsedPercent = report.Round2(summary.BudgetUsedPercent)
			summary.ContractsPercent = report.Round2(summary.ContractsPercent)
			resp["budget"] = summary
			resp["categories"] = report.CategoryRollup(vendors, payments)
			resp["mismatched_vendors"] = report.MismatchedVendors(vendors, payments)
		}
		if perms.CanViewPayments {
			resp["top_vendors"] = report.TopVendors(vendors, payments)
			resp["alerts"] = report.DetectAlerts(time.Now(), tasks, payments)
		} else {
			resp["alerts"] = report.DetectAlerts(time.Now(), tasks, nil)
		}
	} else {
		// Task alerts are visible to everyone; payment alerts are not.
		resp["alerts"] = report.DetectAlerts(time.Now(), tasks, nil)
	}

	c.JSON(http.StatusOK, resp)
}
