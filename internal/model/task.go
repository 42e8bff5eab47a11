package model

import "time"

type TaskStatus string

const (
	TaskNoStatus    TaskStatus = "NO_STATUS"
	TaskNotStarted  TaskStatus = "NOT_STARTED"
	TaskInProgress  TaskStatus = "IN_PROGRESS"
	TaskWaiting     TaskStatus = "WAITING"
	TaskDone        TaskStatus = "DONE"
	TaskNotRelevant TaskStatus = "NOT_RELEVANT"
)

// Task status transitions are intentionally unconstrained: any status may be
// set from any other.
type Task struct {
	ID              int64       `json:"id"`
	ProjectID       int64       `json:"project_id"`
	RoomID          *int64      `json:"room_id,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	Status          TaskStatus  `json:"status"`
	StartPlanned    *time.Time  `json:"start_planned,omitempty"`
	EndPlanned      *time.Time  `json:"end_planned,omitempty"`
	StartActual     *time.Time  `json:"start_actual,omitempty"`
	EndActual       *time.Time  `json:"end_actual,omitempty"`
	BudgetAllocated float64     `json:"budget_allocated"`
	DependsOn       []int64     `json:"depends_on,omitempty"` // declared, not consumed by any scheduler
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NormalizeTaskStatus coerces unknown values from the store to NO_STATUS.
func NormalizeTaskStatus(v string) TaskStatus {
	switch TaskStatus(v) {
	case TaskNoStatus, TaskNotStarted, TaskInProgress, TaskWaiting, TaskDone, TaskNotRelevant:
		return TaskStatus(v)
	}
	return TaskNoStatus
}

// DisplayTitle falls back to category when no explicit title was given.
func (t *Task) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.Category != "" {
		return t.Category
	}
	return t.Description
}
