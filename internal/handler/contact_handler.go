package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
)

// ContactHandler manages the project's contact phonebook, which is separate
// from memberships and grants no access.
type ContactHandler struct {
	contacts *repository.ContactRepository
	resolver *access.Resolver
	logger   *zap.Logger
}

func NewContactHandler(contacts *repository.ContactRepository, resolver *access.Resolver, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, resolver: resolver, logger: logger}
}

func (h *ContactHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, anyAccess) {
		return
	}

	contacts, err := h.contacts.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

type contactRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Notes string `json:"notes"`
}

func (req *contactRequest) apply(ct *model.OwnerContact) {
	ct.Name = req.Name
	ct.Phone = req.Phone
	ct.Email = req.Email
	ct.Role = model.OwnerContactRole(req.Role)
	ct.Notes = req.Notes
}

func (h *ContactHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditProject }) {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	contact := &model.OwnerContact{ProjectID: projectID}
	req.apply(contact)
	if err := contact.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.contacts.Create(c.Request.Context(), contact); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contact": contact})
}

func (h *ContactHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditProject }) {
		return
	}

	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}

	contact, err := h.contacts.GetByID(c.Request.Context(), contactID)
	if err != nil {
		writeError(c, err)
		return
	}
	if contact == nil || contact.ProjectID != projectID {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}

	req.apply(contact)
	if err := contact.Validate(); err != nil {
		writeError(c, err)
		return
	}
	if err := h.contacts.Update(c.Request.Context(), contact); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contact": contact})
}

func (h *ContactHandler) Delete(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	contactID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, func(p access.PermissionSet) bool { return p.CanEditProject }) {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), contactID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
