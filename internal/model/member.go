package model

import "time"

// Role is a user's role within a single project.
type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleAdmin      Role = "ADMIN"
	RoleFamily     Role = "FAMILY"
	RoleContractor Role = "CONTRACTOR"
	RoleDesigner   Role = "DESIGNER"
	RoleViewOnly   Role = "VIEW_ONLY"
)

// ProjectMember links a registered user to a project with a role. The project
// owner is implicit via Project.OwnerID and needs no membership row.
type ProjectMember struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	UserID    int64     `json:"user_id"`
	Role      Role      `json:"role_in_project"`
	CreatedAt time.Time `json:"created_at"`
}

// KnownRole reports whether v is one of the defined roles. Unknown values
// never grant access.
func KnownRole(v Role) bool {
	switch v {
	case RoleOwner, RoleAdmin, RoleFamily, RoleContractor, RoleDesigner, RoleViewOnly:
		return true
	}
	return false
}
