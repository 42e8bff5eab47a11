// Package mq defines the event payloads exchanged over the events topic
// exchange between the API process and the notification consumers.
package mq

import "time"

// Routing keys on the events exchange.
const (
	KeyNotificationCreated = "notification.created"
	KeyInvitationCreated   = "invitation.created"
	KeyInviteClaimFailed   = "invite.claim_failed"
	KeyAlertRaised         = "alert.raised"
	KeyProjectDeleted      = "project.deleted"
)

// NotificationCreatedPayload asks for a message to be delivered on a channel.
type NotificationCreatedPayload struct {
	Channel    string   `json:"channel"` // EMAIL or WHATSAPP
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject,omitempty"`
	Message    string   `json:"message"`
}

// InvitationCreatedPayload carries a registration link for an invited email.
type InvitationCreatedPayload struct {
	InvitationID int64  `json:"invitation_id"`
	Email        string `json:"email"`
	ProjectID    int64  `json:"project_id"`
	ProjectName  string `json:"project_name"`
	Role         string `json:"role"`
	InvitedBy    string `json:"invited_by"`
	RegisterURL  string `json:"register_url"`
}

// InviteClaimFailedPayload records a membership grant that could not be
// applied because the new account never became queryable. Kept durable so an
// operator can reconcile it instead of the membership silently vanishing.
type InviteClaimFailedPayload struct {
	InvitationID int64     `json:"invitation_id"`
	Email        string    `json:"email"`
	ProjectID    int64     `json:"project_id"`
	Role         string    `json:"role"`
	Attempts     int       `json:"attempts"`
	FailedAt     time.Time `json:"failed_at"`
}

// AlertRaisedPayload is published by the periodic alert scan.
type AlertRaisedPayload struct {
	ProjectID        int64     `json:"project_id"`
	ProjectName      string    `json:"project_name"`
	OverdueTasks     int       `json:"overdue_tasks"`
	UpcomingPayments int       `json:"upcoming_payments"`
	WaitingTasks     int       `json:"waiting_tasks"`
	Recipients       []string  `json:"recipients"`
	RaisedAt         time.Time `json:"raised_at"`
}

// ProjectDeletedPayload announces a completed cascade delete.
type ProjectDeletedPayload struct {
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	DeletedBy   int64     `json:"deleted_by"`
	DeletedAt   time.Time `json:"deleted_at"`
}
