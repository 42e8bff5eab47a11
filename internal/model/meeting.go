package model

import "time"

type MeetingType string

const (
	MeetingSiteVisit MeetingType = "SITE_VISIT"
	MeetingSupplier  MeetingType = "SUPPLIER"
	MeetingDesign    MeetingType = "DESIGN"
	MeetingGeneral   MeetingType = "GENERAL"
)

type ActionItemStatus string

const (
	ActionPending    ActionItemStatus = "PENDING"
	ActionInProgress ActionItemStatus = "IN_PROGRESS"
	ActionCompleted  ActionItemStatus = "COMPLETED"
)

type ActionItem struct {
	ID               string           `json:"id"`
	Description      string           `json:"description"`
	DueDate          *time.Time       `json:"due_date,omitempty"`
	AssigneeVendorID *int64           `json:"assignee_vendor_id,omitempty"`
	Status           ActionItemStatus `json:"status"`
}

// Meeting stores only raw facts; its display status is derived on every read
// and never persisted.
type Meeting struct {
	ID          int64        `json:"id"`
	ProjectID   int64        `json:"project_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	MeetingDate time.Time    `json:"meeting_date"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Type        MeetingType  `json:"meeting_type"`
	Completed   bool         `json:"completed"`
	Decisions   []string     `json:"decisions,omitempty"`
	ActionItems []ActionItem `json:"action_items,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (m *Meeting) Validate() error {
	if m.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	return nil
}
