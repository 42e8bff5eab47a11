package report

import (
	"time"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

const (
	upcomingPaymentWindow = 14 * 24 * time.Hour
	recentlyCompletedSpan = 7 * 24 * time.Hour
)

// Alerts is the attention list computed against a reference time. Records
// without the relevant date are excluded from date-based buckets rather than
// treated as due.
type Alerts struct {
	OverdueTasks      []model.Task    `json:"overdue_tasks"`
	UpcomingPayments  []model.Payment `json:"upcoming_payments"`
	RecentlyCompleted []model.Task    `json:"recently_completed"`
	WaitingCount      int             `json:"waiting_count"`
}

// DetectAlerts scans task and payment snapshots for conditions worth
// surfacing on the dashboard.
func DetectAlerts(now time.Time, tasks []model.Task, payments []model.Payment) Alerts {
	var a Alerts

	for _, t := range tasks {
		if t.Status == model.TaskWaiting {
			a.WaitingCount++
		}

		if t.Status != model.TaskDone {
			if t.EndPlanned != nil && t.EndPlanned.Before(now) {
				a.OverdueTasks = append(a.OverdueTasks, t)
			}
			continue
		}

		completedAt := t.UpdatedAt
		if t.EndActual != nil {
			completedAt = *t.EndActual
		}
		if !completedAt.After(now) && now.Sub(completedAt) <= recentlyCompletedSpan {
			a.RecentlyCompleted = append(a.RecentlyCompleted, t)
		}
	}

	for _, p := range payments {
		if p.Status == model.PaymentPaid {
			continue
		}
		due := p.EstimatedDate
		if due == nil {
			due = p.Date
		}
		if due == nil {
			continue
		}
		if !due.Before(now) && due.Sub(now) <= upcomingPaymentWindow {
			a.UpcomingPayments = append(a.UpcomingPayments, p)
		}
	}

	return a
}
