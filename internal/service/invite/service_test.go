package invite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type fakeInvitations struct {
	created []model.Invitation
	byToken map[string]*model.Invitation
	deleted []int64
	rows    int64
}

func (f *fakeInvitations) Create(_ context.Context, inv *model.Invitation) error {
	inv.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *inv)
	return nil
}

func (f *fakeInvitations) FindByToken(_ context.Context, token string) (*model.Invitation, error) {
	return f.byToken[token], nil
}

func (f *fakeInvitations) Delete(_ context.Context, id int64) (int64, error) {
	f.deleted = append(f.deleted, id)
	return f.rows, nil
}

type fakeMembers struct {
	created []model.ProjectMember
}

func (f *fakeMembers) Create(_ context.Context, m *model.ProjectMember) error {
	m.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *m)
	return nil
}

// fakeUsers returns nil until the configured number of lookups has happened,
// imitating a store that lags behind a fresh account write.
type fakeUsers struct {
	user         *model.User
	visibleAfter int
	lookups      int
}

func (f *fakeUsers) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	f.lookups++
	if f.lookups < f.visibleAfter {
		return nil, nil
	}
	return f.user, nil
}

type fakeProjects struct {
	project *model.Project
}

func (f *fakeProjects) GetByID(_ context.Context, _ int64) (*model.Project, error) {
	return f.project, nil
}

type fakeEvents struct {
	keys []string
}

func (f *fakeEvents) Record(_ context.Context, _ string, _ *int64, routingKey string, _ interface{}) error {
	f.keys = append(f.keys, routingKey)
	return nil
}

func newTestService(invitations *fakeInvitations, members *fakeMembers, users *fakeUsers, events *fakeEvents) (*Service, *[]time.Duration) {
	var slept []time.Duration
	s := NewService(
		invitations,
		members,
		users,
		&fakeProjects{project: &model.Project{ID: 3, Name: "Herzl 12"}},
		events,
		"https://reno.example.com",
		zap.NewNop(),
	)
	s.newToken = func() string { return "tok-123" }
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	s.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	return s, &slept
}

func TestCreate_StoresTokenAndReturnsRegisterURL(t *testing.T) {
	invitations := &fakeInvitations{}
	events := &fakeEvents{}
	s, _ := newTestService(invitations, &fakeMembers{}, &fakeUsers{}, events)

	inv, url, err := s.Create(context.Background(), 3, "new@example.com", model.RoleContractor, "Dana")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if inv.Token != "tok-123" {
		t.Errorf("Token = %q, want generated token", inv.Token)
	}
	if !strings.Contains(url, "invite=tok-123") {
		t.Errorf("register URL %q does not embed the token", url)
	}
	if len(events.keys) != 1 || events.keys[0] != "invitation.created" {
		t.Errorf("events = %v, want [invitation.created]", events.keys)
	}
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	s, _ := newTestService(&fakeInvitations{}, &fakeMembers{}, &fakeUsers{}, &fakeEvents{})
	if _, _, err := s.Create(context.Background(), 3, "new@example.com", "SUPERVISOR", "Dana"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("err = %v, want ErrUnknownRole", err)
	}
}

func TestClaim_AccountVisibleAfterRetries(t *testing.T) {
	invitations := &fakeInvitations{
		byToken: map[string]*model.Invitation{
			"tok-123": {ID: 1, Email: "new@example.com", ProjectID: 3, Role: model.RoleFamily},
		},
		rows: 1,
	}
	members := &fakeMembers{}
	users := &fakeUsers{user: &model.User{ID: 9, Email: "new@example.com"}, visibleAfter: 3}
	s, slept := newTestService(invitations, members, users, &fakeEvents{})

	member, err := s.Claim(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if member.UserID != 9 || member.ProjectID != 3 || member.Role != model.RoleFamily {
		t.Errorf("member = %+v, want user 9 in project 3 as FAMILY", member)
	}
	if users.lookups != 3 {
		t.Errorf("lookups = %d, want 3", users.lookups)
	}
	if len(*slept) != 2 {
		t.Errorf("backoff sleeps = %d, want 2", len(*slept))
	}
	if len(invitations.deleted) != 1 || invitations.deleted[0] != 1 {
		t.Errorf("invitation deletions = %v, want [1]", invitations.deleted)
	}
}

func TestClaim_ExhaustionParksGrantDurably(t *testing.T) {
	invitations := &fakeInvitations{
		byToken: map[string]*model.Invitation{
			"tok-123": {ID: 1, Email: "new@example.com", ProjectID: 3, Role: model.RoleFamily},
		},
	}
	members := &fakeMembers{}
	users := &fakeUsers{visibleAfter: 100} // never visible
	events := &fakeEvents{}
	s, slept := newTestService(invitations, members, users, events)

	_, err := s.Claim(context.Background(), "tok-123")
	if !errors.Is(err, ErrClaimExhausted) {
		t.Fatalf("err = %v, want ErrClaimExhausted", err)
	}
	if users.lookups != claimAttempts {
		t.Errorf("lookups = %d, want hard cap of %d", users.lookups, claimAttempts)
	}
	if len(*slept) != claimAttempts-1 {
		t.Errorf("backoff sleeps = %d, want %d", len(*slept), claimAttempts-1)
	}
	if len(members.created) != 0 {
		t.Error("no membership should be created on exhaustion")
	}
	if len(events.keys) != 1 || events.keys[0] != "invite.claim_failed" {
		t.Errorf("events = %v, want the grant parked as invite.claim_failed", events.keys)
	}
}

func TestClaim_UnknownToken(t *testing.T) {
	s, _ := newTestService(&fakeInvitations{byToken: map[string]*model.Invitation{}}, &fakeMembers{}, &fakeUsers{}, &fakeEvents{})
	if _, err := s.Claim(context.Background(), "nope"); !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("err = %v, want ErrInvitationNotFound", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	invitations := &fakeInvitations{rows: 1}
	s, _ := newTestService(invitations, &fakeMembers{}, &fakeUsers{}, &fakeEvents{})

	if err := s.Cancel(context.Background(), 1); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	invitations.rows = 0
	if err := s.Cancel(context.Background(), 1); !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("second cancel err = %v, want ErrInvitationNotFound", err)
	}
}
