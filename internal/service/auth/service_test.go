package auth

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/invite"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	created []model.User
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	u.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *u)
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

type fakeClaimer struct {
	member *model.ProjectMember
	err    error
	tokens []string
}

func (f *fakeClaimer) Claim(_ context.Context, token string) (*model.ProjectMember, error) {
	f.tokens = append(f.tokens, token)
	return f.member, f.err
}

func TestRegister_HashesPasswordAndIssuesToken(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	s := NewService(users, &fakeClaimer{}, "secret", zap.NewNop())

	user, token, member, err := s.Register(context.Background(), "Dana", "dana@example.com", "hunter2", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Error("expected a session token")
	}
	if member != nil {
		t.Error("no invitation token, no membership expected")
	}
	if user.PasswordHash == "hunter2" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*model.User{
		"dana@example.com": {ID: 1, Email: "dana@example.com"},
	}}
	s := NewService(users, &fakeClaimer{}, "secret", zap.NewNop())

	if _, _, _, err := s.Register(context.Background(), "Dana", "dana@example.com", "pw", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_ClaimsInvitation(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	claimer := &fakeClaimer{member: &model.ProjectMember{ProjectID: 3, Role: model.RoleFamily}}
	s := NewService(users, claimer, "secret", zap.NewNop())

	_, _, member, err := s.Register(context.Background(), "Dana", "dana@example.com", "pw", "tok-123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(claimer.tokens) != 1 || claimer.tokens[0] != "tok-123" {
		t.Errorf("claimed tokens = %v, want [tok-123]", claimer.tokens)
	}
	if member == nil || member.ProjectID != 3 {
		t.Errorf("member = %+v, want membership in project 3", member)
	}
}

func TestRegister_ExhaustedClaimDoesNotFailRegistration(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	claimer := &fakeClaimer{err: invite.ErrClaimExhausted}
	s := NewService(users, claimer, "secret", zap.NewNop())

	user, token, member, err := s.Register(context.Background(), "Dana", "dana@example.com", "pw", "tok-123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user == nil || token == "" {
		t.Error("account and session should exist despite the failed claim")
	}
	if member != nil {
		t.Error("membership must not be granted after an exhausted claim")
	}
}

func TestLogin(t *testing.T) {
	users := &fakeUsers{byEmail: map[string]*model.User{}}
	s := NewService(users, &fakeClaimer{}, "secret", zap.NewNop())

	registered, _, _, err := s.Register(context.Background(), "Dana", "dana@example.com", "hunter2", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	users.byEmail["dana@example.com"] = registered

	if _, token, err := s.Login(context.Background(), "dana@example.com", "hunter2"); err != nil || token == "" {
		t.Errorf("Login = (%q, %v), want a token", token, err)
	}
	if _, _, err := s.Login(context.Background(), "dana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := s.Login(context.Background(), "nobody@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}
