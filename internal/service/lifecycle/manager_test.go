package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type fakeTasks struct {
	created []model.Task
	updated []model.Task
}

func (f *fakeTasks) Create(_ context.Context, t *model.Task) error {
	t.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *t)
	return nil
}

func (f *fakeTasks) Update(_ context.Context, t *model.Task) error {
	f.updated = append(f.updated, *t)
	return nil
}

type fakePayments struct {
	byVendor  map[int64][]model.Payment
	listErr   error
	deleteErr map[int64]error
	deleted   []int64
	created   []model.Payment
	updated   []model.Payment
}

func (f *fakePayments) Create(_ context.Context, p *model.Payment) error {
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *p)
	return nil
}

func (f *fakePayments) Update(_ context.Context, p *model.Payment) error {
	f.updated = append(f.updated, *p)
	return nil
}

func (f *fakePayments) Delete(_ context.Context, id int64) error {
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePayments) ListByVendor(_ context.Context, vendorID int64) ([]model.Payment, error) {
	return f.byVendor[vendorID], f.listErr
}

type fakeDeleter struct {
	deleted []int64
	err     error
}

func (f *fakeDeleter) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeProjects struct {
	project *model.Project
	getErr  error
	deleted []int64
	ownedBy map[int64]int
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (*model.Project, error) {
	return f.project, f.getErr
}

func (f *fakeProjects) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProjects) CountByOwner(_ context.Context, userID int64) (int, error) {
	return f.ownedBy[userID], nil
}

type fakeMembers struct {
	removed     [][2]int64
	countByUser map[int64]int
}

func (f *fakeMembers) Delete(_ context.Context, projectID, userID int64) error {
	f.removed = append(f.removed, [2]int64{projectID, userID})
	return nil
}

func (f *fakeMembers) CountByUser(_ context.Context, userID int64) (int, error) {
	return f.countByUser[userID], nil
}

type fakeUsers struct {
	deleted []int64
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePurger struct {
	calls int
	err   error
}

func (f *fakePurger) DeleteByProject(_ context.Context, _ int64) error {
	f.calls++
	return f.err
}

type fakeEvents struct {
	keys []string
}

func (f *fakeEvents) Record(_ context.Context, _ string, _ *int64, routingKey string, _ interface{}) error {
	f.keys = append(f.keys, routingKey)
	return nil
}

func newTestManager(stores Stores, events eventRecorder) *Manager {
	m := NewManager(stores, events, zap.NewNop())
	m.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	return m
}

func TestSaveTask_TitleFallsBackToCategory(t *testing.T) {
	tasks := &fakeTasks{}
	m := newTestManager(Stores{Tasks: tasks}, &fakeEvents{})

	task := &model.Task{ProjectID: 1, Category: "electricity", Status: model.TaskNotStarted}
	if err := m.SaveTask(context.Background(), task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if len(tasks.created) != 1 {
		t.Fatalf("created %d tasks, want 1", len(tasks.created))
	}
	if tasks.created[0].Title != "electricity" {
		t.Errorf("Title = %q, want category fallback", tasks.created[0].Title)
	}
}

func TestSaveTask_UnknownStatusCoerced(t *testing.T) {
	tasks := &fakeTasks{}
	m := newTestManager(Stores{Tasks: tasks}, &fakeEvents{})

	task := &model.Task{ProjectID: 1, Title: "tiling", Status: "SOMETHING_ELSE"}
	if err := m.SaveTask(context.Background(), task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	if tasks.created[0].Status != model.TaskNoStatus {
		t.Errorf("Status = %q, want NO_STATUS", tasks.created[0].Status)
	}
}

func TestSavePayment_PendingToPaidMovesDate(t *testing.T) {
	payments := &fakePayments{}
	m := newTestManager(Stores{Payments: payments}, &fakeEvents{})

	estimated := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p := &model.Payment{ProjectID: 1, VendorID: 2, Amount: 1000, Status: model.PaymentPlanned, EstimatedDate: &estimated}
	if err := m.SavePayment(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Date != nil || p.EstimatedDate == nil {
		t.Fatalf("planned payment should carry only an estimated date")
	}

	paidOn := time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC)
	p.Status = model.PaymentPaid
	p.Date = &paidOn
	if err := m.SavePayment(context.Background(), p); err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Date == nil || !p.Date.Equal(paidOn) {
		t.Errorf("Date = %v, want %v", p.Date, paidOn)
	}
	if p.EstimatedDate != nil {
		t.Errorf("EstimatedDate = %v, want cleared after paying", p.EstimatedDate)
	}
}

func TestSavePayment_RejectsMissingVendor(t *testing.T) {
	m := newTestManager(Stores{Payments: &fakePayments{}}, &fakeEvents{})
	err := m.SavePayment(context.Background(), &model.Payment{ProjectID: 1, Amount: 10})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDeleteVendor_PartialCascadeStillDeletesVendor(t *testing.T) {
	payments := &fakePayments{
		byVendor: map[int64][]model.Payment{
			7: {{ID: 100}, {ID: 101}, {ID: 102}},
		},
		deleteErr: map[int64]error{101: errors.New("store unreachable")},
	}
	vendors := &fakeDeleter{}
	m := newTestManager(Stores{Payments: payments, Vendors: vendors}, &fakeEvents{})

	report, err := m.DeleteVendor(context.Background(), 7)
	if err != nil {
		t.Fatalf("DeleteVendor: %v", err)
	}
	if len(vendors.deleted) != 1 || vendors.deleted[0] != 7 {
		t.Errorf("vendor deletions = %v, want [7]", vendors.deleted)
	}
	if len(report.DeletedPayments) != 2 {
		t.Errorf("DeletedPayments = %v, want 100 and 102", report.DeletedPayments)
	}
	if len(report.FailedPayments) != 1 || report.FailedPayments[0] != 101 {
		t.Errorf("FailedPayments = %v, want [101]", report.FailedPayments)
	}
	if !report.Partial() {
		t.Error("report should be flagged partial")
	}
}

func TestDeleteProject_RequiresExactNameConfirmation(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 3, Name: "Herzl 12"}}
	m := newTestManager(Stores{Projects: projects}, &fakeEvents{})

	if _, err := m.DeleteProject(context.Background(), 3, "herzl 12", 1); !errors.Is(err, ErrNameConfirmation) {
		t.Fatalf("err = %v, want ErrNameConfirmation", err)
	}
	if len(projects.deleted) != 0 {
		t.Error("nothing should be deleted on a failed confirmation")
	}
}

func TestDeleteProject_SweepsAllCollections(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 3, Name: "Herzl 12", OwnerID: 1}}
	events := &fakeEvents{}
	purgers := make([]*fakePurger, 8)
	for i := range purgers {
		purgers[i] = &fakePurger{}
	}
	stores := Stores{
		Projects:         projects,
		RoomPurger:       purgers[0],
		TaskPurger:       purgers[1],
		MemberPurger:     purgers[2],
		VendorPurger:     purgers[3],
		PaymentPurger:    purgers[4],
		MeetingPurger:    purgers[5],
		ContactPurger:    purgers[6],
		InvitationPurger: purgers[7],
	}
	m := newTestManager(stores, events)

	report, err := m.DeleteProject(context.Background(), 3, "Herzl 12", 1)
	if err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	for i, p := range purgers {
		if p.calls != 1 {
			t.Errorf("purger %d called %d times, want 1", i, p.calls)
		}
	}
	if len(projects.deleted) != 1 {
		t.Errorf("project deletions = %v, want [3]", projects.deleted)
	}
	if report.Partial() {
		t.Errorf("unexpected partial report: %+v", report)
	}
	if len(events.keys) != 1 || events.keys[0] != "project.deleted" {
		t.Errorf("recorded events = %v, want [project.deleted]", events.keys)
	}
}

func TestDeleteProject_FailedSweepReportedButDeleteProceeds(t *testing.T) {
	projects := &fakeProjects{project: &model.Project{ID: 3, Name: "Herzl 12"}}
	broken := &fakePurger{err: errors.New("store unreachable")}
	ok := &fakePurger{}
	stores := Stores{
		Projects:         projects,
		RoomPurger:       ok,
		TaskPurger:       broken,
		MemberPurger:     ok,
		VendorPurger:     ok,
		PaymentPurger:    ok,
		MeetingPurger:    ok,
		ContactPurger:    ok,
		InvitationPurger: ok,
	}
	m := newTestManager(stores, &fakeEvents{})

	report, err := m.DeleteProject(context.Background(), 3, "Herzl 12", 1)
	if err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if len(report.FailedCollections) != 1 || report.FailedCollections[0] != "tasks" {
		t.Errorf("FailedCollections = %v, want [tasks]", report.FailedCollections)
	}
	if len(projects.deleted) != 1 {
		t.Error("project should still be deleted after a failed sweep")
	}
}

func TestRemoveMember_LastMembershipDeletesAccount(t *testing.T) {
	members := &fakeMembers{countByUser: map[int64]int{}}
	projects := &fakeProjects{ownedBy: map[int64]int{}}
	users := &fakeUsers{}
	m := newTestManager(Stores{Members: members, Projects: projects, Users: users}, &fakeEvents{})

	if err := m.RemoveMember(context.Background(), 3, 9); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if len(users.deleted) != 1 || users.deleted[0] != 9 {
		t.Errorf("user deletions = %v, want [9]", users.deleted)
	}
}

func TestRemoveMember_OtherTiesKeepAccount(t *testing.T) {
	tests := []struct {
		name    string
		members map[int64]int
		owned   map[int64]int
	}{
		{"still a member elsewhere", map[int64]int{9: 1}, map[int64]int{}},
		{"owns another project", map[int64]int{}, map[int64]int{9: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := &fakeMembers{countByUser: tt.members}
			projects := &fakeProjects{ownedBy: tt.owned}
			users := &fakeUsers{}
			m := newTestManager(Stores{Members: members, Projects: projects, Users: users}, &fakeEvents{})

			if err := m.RemoveMember(context.Background(), 3, 9); err != nil {
				t.Fatalf("RemoveMember: %v", err)
			}
			if len(users.deleted) != 0 {
				t.Errorf("user deletions = %v, want none", users.deleted)
			}
			if len(members.removed) != 1 {
				t.Errorf("membership removals = %v, want one", members.removed)
			}
		})
	}
}
