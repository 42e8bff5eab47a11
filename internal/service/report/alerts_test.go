package report

import (
	"testing"
	"time"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestDetectAlerts_OverdueTasks(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: 1, Status: model.TaskInProgress, EndPlanned: datePtr(now.Add(-48 * time.Hour))},
		{ID: 2, Status: model.TaskDone, EndPlanned: datePtr(now.Add(-48 * time.Hour))},   // done: not overdue
		{ID: 3, Status: model.TaskInProgress, EndPlanned: datePtr(now.Add(time.Hour))},   // future
		{ID: 4, Status: model.TaskInProgress},                                            // no planned end: excluded
	}

	a := DetectAlerts(now, tasks, nil)
	if len(a.OverdueTasks) != 1 || a.OverdueTasks[0].ID != 1 {
		t.Errorf("overdue = %v, want just task 1", a.OverdueTasks)
	}
}

func TestDetectAlerts_UpcomingPayments(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	payments := []model.Payment{
		{ID: 1, Status: model.PaymentPending, EstimatedDate: datePtr(now.Add(5 * 24 * time.Hour))},
		{ID: 2, Status: model.PaymentPlanned, EstimatedDate: datePtr(now.Add(20 * 24 * time.Hour))}, // beyond 14d
		{ID: 3, Status: model.PaymentPaid, Date: datePtr(now.Add(2 * 24 * time.Hour))},              // paid: ignored
		{ID: 4, Status: model.PaymentPending},                                                       // no date: excluded
		{ID: 5, Status: model.PaymentPending, EstimatedDate: datePtr(now.Add(-24 * time.Hour))},     // past: not upcoming
	}

	a := DetectAlerts(now, nil, payments)
	if len(a.UpcomingPayments) != 1 || a.UpcomingPayments[0].ID != 1 {
		t.Errorf("upcoming = %v, want just payment 1", a.UpcomingPayments)
	}
}

func TestDetectAlerts_RecentlyCompleted(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: 1, Status: model.TaskDone, EndActual: datePtr(now.Add(-2 * 24 * time.Hour))},
		{ID: 2, Status: model.TaskDone, EndActual: datePtr(now.Add(-10 * 24 * time.Hour))}, // too old
		// no actual end date: falls back to updated_at
		{ID: 3, Status: model.TaskDone, UpdatedAt: now.Add(-1 * 24 * time.Hour)},
	}

	a := DetectAlerts(now, tasks, nil)
	if len(a.RecentlyCompleted) != 2 {
		t.Fatalf("recently completed = %v, want tasks 1 and 3", a.RecentlyCompleted)
	}
}

func TestDetectAlerts_WaitingCount(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Status: model.TaskWaiting},
		{ID: 2, Status: model.TaskWaiting},
		{ID: 3, Status: model.TaskInProgress},
	}
	a := DetectAlerts(time.Now(), tasks, nil)
	if a.WaitingCount != 2 {
		t.Errorf("WaitingCount = %d, want 2", a.WaitingCount)
	}
}
