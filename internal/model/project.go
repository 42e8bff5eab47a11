package model

import (
	"fmt"
	"time"
)

type Project struct {
	ID                    int64     `json:"id"`
	Name                  string    `json:"name"`
	Address               string    `json:"address"`
	OwnerID               int64     `json:"owner_id"`
	BudgetPlanned         float64   `json:"budget_planned"`
	BudgetOverflowPercent float64   `json:"budget_allowed_overflow_percent"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Validate checks the project invariants before it is written.
func (p *Project) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if p.BudgetPlanned < 0 {
		return &ValidationError{Field: "budget_planned", Reason: "must be >= 0"}
	}
	if p.BudgetOverflowPercent < 0 || p.BudgetOverflowPercent > 100 {
		return &ValidationError{Field: "budget_allowed_overflow_percent", Reason: "must be in [0,100]"}
	}
	return nil
}

// ValidationError marks a locally recoverable input problem.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
