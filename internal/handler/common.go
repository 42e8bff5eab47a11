package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/access"
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// authorize resolves the caller's permissions on a project and aborts with
// 403 when check fails or the caller has no role at all. Access denial is
// always an explicit response, never a silent no-op.
func authorize(c *gin.Context, resolver *access.Resolver, projectID int64, check func(access.PermissionSet) bool) bool {
	userID := CurrentUserID(c)
	perms, ok := resolver.Permissions(c.Request.Context(), projectID, userID)
	if !ok || !check(perms) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return false
	}
	return true
}

// anyAccess passes for every member; role resolution alone gates the request.
func anyAccess(access.PermissionSet) bool { return true }

// currentPermissions returns the caller's capability set for response
// shaping. Callers must have passed authorize already.
func currentPermissions(c *gin.Context, resolver *access.Resolver, projectID int64) access.PermissionSet {
	perms, _ := resolver.Permissions(c.Request.Context(), projectID, CurrentUserID(c))
	return perms
}

func writeError(c *gin.Context, err error) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
