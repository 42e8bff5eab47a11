package model

import "time"

// Invitation is a deferred membership grant for an email address that has no
// user account yet. It is consumed at registration time or cancelled by the
// inviter.
type Invitation struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	ProjectID int64     `json:"project_id"`
	Role      Role      `json:"role_in_project"`
	Token     string    `json:"token"`
	InvitedBy string    `json:"invited_by"`
	CreatedAt time.Time `json:"created_at"`
}
