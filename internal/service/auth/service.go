package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/invite"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/util"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type userStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type invitationClaimer interface {
	Claim(ctx context.Context, token string) (*model.ProjectMember, error)
}

// Service handles account registration and login. Registration with an
// invitation token also resolves the pending membership grant.
type Service struct {
	users     userStore
	invites   invitationClaimer
	jwtSecret string
	logger    *zap.Logger
}

func NewService(users userStore, invites invitationClaimer, jwtSecret string, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		invites:   invites,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// Register creates an account and returns it with a session token. When
// inviteToken is set, the matching pending invitation is claimed; a claim
// that cannot complete does not fail the registration, the account simply
// starts without the membership.
func (s *Service) Register(ctx context.Context, name, email, password, inviteToken string) (*model.User, string, *model.ProjectMember, error) {
	if email == "" {
		return nil, "", nil, &model.ValidationError{Field: "email", Reason: "required"}
	}
	if password == "" {
		return nil, "", nil, &model.ValidationError{Field: "password", Reason: "required"}
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", nil, err
	}
	if existing != nil {
		return nil, "", nil, ErrEmailTaken
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, "", nil, err
	}

	user := &model.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", nil, err
	}

	var member *model.ProjectMember
	if inviteToken != "" {
		member, err = s.invites.Claim(ctx, inviteToken)
		if err != nil {
			if errors.Is(err, invite.ErrClaimExhausted) || errors.Is(err, invite.ErrInvitationNotFound) {
				s.logger.Warn("Registration completed without invited membership",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
			} else {
				s.logger.Error("Invitation claim failed during registration",
					zap.Int64("user_id", user.ID),
					zap.Error(err),
				)
			}
			member = nil
		}
	}

	token, err := util.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("email", email))
	return user, token, member, nil
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !util.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.ID, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
