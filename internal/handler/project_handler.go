package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
)

type ProjectHandler struct {
	projects  *repository.ProjectRepository
	resolver  *access.Resolver
	lifecycle *lifecycle.Manager
	logger    *zap.Logger
}

func NewProjectHandler(projects *repository.ProjectRepository, resolver *access.Resolver, lm *lifecycle.Manager, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, resolver: resolver, lifecycle: lm, logger: logger}
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	projects, err := h.projects.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Int64("user_id", userID), zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

type projectRequest struct {
	Name                  string  `json:"name" binding:"required"`
	Address               string  `json:"address"`
	BudgetPlanned         float64 `json:"budget_planned"`
	BudgetOverflowPercent float64 `json:"budget_overflow_percent"`
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	p := &model.Project{
		Name:                  req.Name,
		Address:               req.Address,
		OwnerID:               CurrentUserID(c),
		BudgetPlanned:         req.BudgetPlanned,
		BudgetOverflowPercent: req.BudgetOverflowPercent,
	}
	if err := p.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.projects.Create(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}

	p, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	role, _ := h.resolver.ResolveRole(c.Request.Context(), projectID, CurrentUserID(c))
	perms := access.PermissionsFor(role)
	if !perms.CanViewBudget {
		p.BudgetPlanned = 0
	}
	c.JSON(http.StatusOK, gin.H{"project": p, "role": role, "permissions": perms})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditProject }) {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	existing, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	existing.Name = req.Name
	existing.Address = req.Address
	existing.BudgetPlanned = req.BudgetPlanned
	existing.BudgetOverflowPercent = req.BudgetOverflowPercent
	if err := existing.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.projects.Update(c.Request.Context(), existing); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": existing})
}

type deleteProjectRequest struct {
	ConfirmName string `json:"confirm_name" binding:"required"`
}

// Delete cascades through every dependent collection. The caller must retype
// the project name to confirm.
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditProject }) {
		return
	}

	var req deleteProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirm_name required"})
		return
	}

	report, err := h.lifecycle.DeleteProject(c.Request.Context(), projectID, req.ConfirmName, CurrentUserID(c))
	if err != nil {
		if errors.Is(err, lifecycle.ErrNameConfirmation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation does not match project name"})
			return
		}
		if errors.Is(err, lifecycle.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "cascade": report})
}
