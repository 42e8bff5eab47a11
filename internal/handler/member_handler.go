package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/repository"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/invite"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/lifecycle"
)

type MemberHandler struct {
	members     *repository.MemberRepository
	users       *repository.UserRepository
	invitations *repository.InvitationRepository
	resolver    *access.Resolver
	invites     *invite.Service
	lifecycle   *lifecycle.Manager
	logger      *zap.Logger
}

func NewMemberHandler(
	members *repository.MemberRepository,
	users *repository.UserRepository,
	invitations *repository.InvitationRepository,
	resolver *access.Resolver,
	invites *invite.Service,
	lm *lifecycle.Manager,
	logger *zap.Logger,
) *MemberHandler {
	return &MemberHandler{
		members:     members,
		users:       users,
		invitations: invitations,
		resolver:    resolver,
		invites:     invites,
		lifecycle:   lm,
		logger:      logger,
	}
}

func canManageUsers(p access.PermissionSet) bool { return p.CanManageUsers }

// List returns current members and pending invitations together, the way the
// members page shows them.
func (h *MemberHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canManageUsers) {
		return
	}

	members, err := h.members.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	pending, err := h.invitations.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "pending_invitations": pending})
}

type addMemberRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role" binding:"required"`
}

// Add grants membership to a registered email directly, or stores a pending
// invitation and returns its registration URL when no account exists yet.
func (h *MemberHandler) Add(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canManageUsers) {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and role required"})
		return
	}
	role := model.Role(req.Role)
	if !model.KnownRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}

	if user != nil {
		member := &model.ProjectMember{ProjectID: projectID, UserID: user.ID, Role: role}
		if err := h.members.Create(c.Request.Context(), member); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"member": member})
		return
	}

	inviter, err := h.users.GetByID(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	inviterName := ""
	if inviter != nil {
		inviterName = inviter.Name
	}

	inv, registerURL, err := h.invites.Create(c.Request.Context(), projectID, req.Email, role, inviterName)
	if err != nil {
		if errors.Is(err, invite.ErrUnknownRole) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invitation": inv, "register_url": registerURL})
}

// Remove drops a member from the project; their account is cleaned up
// globally if this was their last project.
func (h *MemberHandler) Remove(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canManageUsers) {
		return
	}

	if err := h.lifecycle.RemoveMember(c.Request.Context(), projectID, userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": true})
}

// CancelInvitation deletes a pending invitation. Cancelling twice reports
// not-found instead of failing hard.
func (h *MemberHandler) CancelInvitation(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !authorize(c, h.resolver, projectID, canManageUsers) {
		return
	}

	if err := h.invites.Cancel(c.Request.Context(), invitationID); err != nil {
		if errors.Is(err, invite.ErrInvitationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}
