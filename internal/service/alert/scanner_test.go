package alert

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type fakeProjects struct{ projects []model.Project }

func (f *fakeProjects) ListAll(_ context.Context) ([]model.Project, error) {
	return f.projects, nil
}

type fakeTasks struct{ byProject map[int64][]model.Task }

func (f *fakeTasks) ListByProject(_ context.Context, projectID int64) ([]model.Task, error) {
	return f.byProject[projectID], nil
}

type fakePayments struct{ byProject map[int64][]model.Payment }

func (f *fakePayments) ListByProject(_ context.Context, projectID int64) ([]model.Payment, error) {
	return f.byProject[projectID], nil
}

type fakeUsers struct{ byID map[int64]*model.User }

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f.byID[id], nil
}

type fakePublisher struct {
	keys     []string
	payloads []any
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	f.keys = append(f.keys, routingKey)
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestScan_RaisesAlertForProjectNeedingAttention(t *testing.T) {
	now := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	overdue := now.Add(-48 * time.Hour)

	publisher := &fakePublisher{}
	s := NewScanner(
		&fakeProjects{projects: []model.Project{
			{ID: 1, Name: "Herzl 12", OwnerID: 7},
			{ID: 2, Name: "Quiet", OwnerID: 7},
		}},
		&fakeTasks{byProject: map[int64][]model.Task{
			1: {{ID: 10, Status: model.TaskInProgress, EndPlanned: &overdue}},
		}},
		&fakePayments{byProject: map[int64][]model.Payment{}},
		&fakeUsers{byID: map[int64]*model.User{7: {ID: 7, Email: "owner@example.com"}}},
		publisher,
		zap.NewNop(),
	)
	s.now = func() time.Time { return now }

	s.Scan(context.Background())

	if len(publisher.keys) != 1 || publisher.keys[0] != "alert.raised" {
		t.Fatalf("published = %v, want one alert.raised for the overdue project", publisher.keys)
	}
	payload, ok := publisher.payloads[0].(mq.AlertRaisedPayload)
	if !ok {
		t.Fatalf("payload type = %T", publisher.payloads[0])
	}
	if payload.ProjectID != 1 || payload.OverdueTasks != 1 {
		t.Errorf("payload = %+v, want project 1 with one overdue task", payload)
	}
	if len(payload.Recipients) != 1 || payload.Recipients[0] != "owner@example.com" {
		t.Errorf("recipients = %v, want the owner's email", payload.Recipients)
	}
}

func TestScan_QuietProjectPublishesNothing(t *testing.T) {
	publisher := &fakePublisher{}
	s := NewScanner(
		&fakeProjects{projects: []model.Project{{ID: 1, Name: "Quiet", OwnerID: 7}}},
		&fakeTasks{byProject: map[int64][]model.Task{
			1: {{ID: 10, Status: model.TaskDone}},
		}},
		&fakePayments{byProject: map[int64][]model.Payment{}},
		&fakeUsers{byID: map[int64]*model.User{}},
		publisher,
		zap.NewNop(),
	)
	s.now = func() time.Time { return time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC) }

	s.Scan(context.Background())

	if len(publisher.keys) != 0 {
		t.Errorf("published = %v, want nothing for a quiet project", publisher.keys)
	}
}
