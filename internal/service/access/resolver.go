package access

import (
	"context"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type projectGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
}

type memberFinder interface {
	Find(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Resolver determines a user's role within a project. Any store failure
// degrades to "no role": data-access problems must never widen access.
type Resolver struct {
	projects    projectGetter
	members     memberFinder
	users       userGetter
	superAdmins map[string]struct{}
	logger      *zap.Logger
}

// NewResolver builds a resolver. superAdminEmails comes from configuration
// so the list can change without a rebuild; those accounts resolve to OWNER
// on every project.
func NewResolver(projects projectGetter, members memberFinder, users userGetter, superAdminEmails []string, logger *zap.Logger) *Resolver {
	admins := make(map[string]struct{}, len(superAdminEmails))
	for _, email := range superAdminEmails {
		admins[email] = struct{}{}
	}
	return &Resolver{
		projects:    projects,
		members:     members,
		users:       users,
		superAdmins: admins,
		logger:      logger,
	}
}

// ResolveRole returns the user's role in the project and whether any access
// exists. Project ownership is authoritative and short-circuits the
// membership lookup, so a conflicting membership row for the owner is
// ignored.
func (r *Resolver) ResolveRole(ctx context.Context, projectID, userID int64) (model.Role, bool) {
	if len(r.superAdmins) > 0 {
		user, err := r.users.GetByID(ctx, userID)
		if err != nil {
			r.logger.Warn("Role resolution failed reading user, denying access",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return "", false
		}
		if user != nil {
			if _, ok := r.superAdmins[user.Email]; ok {
				return model.RoleOwner, true
			}
		}
	}

	project, err := r.projects.GetByID(ctx, projectID)
	if err != nil {
		r.logger.Warn("Role resolution failed reading project, denying access",
			zap.Int64("project_id", projectID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return "", false
	}
	if project == nil {
		return "", false
	}

	if project.OwnerID == userID {
		return model.RoleOwner, true
	}

	member, err := r.members.Find(ctx, projectID, userID)
	if err != nil {
		r.logger.Warn("Role resolution failed reading membership, denying access",
			zap.Int64("project_id", projectID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return "", false
	}
	if member == nil || !model.KnownRole(member.Role) {
		return "", false
	}

	return member.Role, true
}

// Permissions resolves the role and returns its capability set. The second
// return is false when the user has no access to the project at all, which
// callers must treat as access denied rather than a restricted view.
func (r *Resolver) Permissions(ctx context.Context, projectID, userID int64) (PermissionSet, bool) {
	role, ok := r.ResolveRole(ctx, projectID, userID)
	if !ok {
		return PermissionSet{}, false
	}
	return PermissionsFor(role), true
}
