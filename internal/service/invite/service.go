package invite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/metrics"
)

const (
	claimAttempts = 5
	claimBackoff  = time.Second
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrUnknownRole        = errors.New("unknown role for invitation")

	// ErrClaimExhausted means the invited account never became readable
	// within the retry budget. The grant is parked as a durable event for
	// reconciliation; the caller should continue registration without
	// membership.
	ErrClaimExhausted = errors.New("invitation claim retries exhausted")
)

type invitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	FindByToken(ctx context.Context, token string) (*model.Invitation, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type memberCreator interface {
	Create(ctx context.Context, m *model.ProjectMember) error
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type projectGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
}

type eventRecorder interface {
	Record(ctx context.Context, aggregateType string, aggregateID *int64, routingKey string, payload interface{}) error
}

// Service manages deferred membership grants for emails with no account yet.
type Service struct {
	invitations invitationStore
	members     memberCreator
	users       userFinder
	projects    projectGetter
	events      eventRecorder
	baseURL     string
	logger      *zap.Logger

	newToken func() string
	sleep    func(time.Duration)
	now      func() time.Time
}

func NewService(
	invitations invitationStore,
	members memberCreator,
	users userFinder,
	projects projectGetter,
	events eventRecorder,
	baseURL string,
	logger *zap.Logger,
) *Service {
	return &Service{
		invitations: invitations,
		members:     members,
		users:       users,
		projects:    projects,
		events:      events,
		baseURL:     baseURL,
		logger:      logger,
		newToken:    uuid.NewString,
		sleep:       time.Sleep,
		now:         time.Now,
	}
}

// Create stores a pending invitation and returns it with the shareable
// registration URL. An invitation.created event is recorded so the email
// consumer can deliver the link.
func (s *Service) Create(ctx context.Context, projectID int64, email string, role model.Role, invitedBy string) (*model.Invitation, string, error) {
	if email == "" {
		return nil, "", &model.ValidationError{Field: "email", Reason: "required"}
	}
	if !model.KnownRole(role) {
		return nil, "", ErrUnknownRole
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, "", err
	}
	if project == nil {
		return nil, "", fmt.Errorf("project %d not found", projectID)
	}

	inv := &model.Invitation{
		Email:     email,
		ProjectID: projectID,
		Role:      role,
		Token:     s.newToken(),
		InvitedBy: invitedBy,
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, "", err
	}

	registerURL := s.RegisterURL(inv.Token)
	if err := s.events.Record(ctx, "invitation", &inv.ID, mq.KeyInvitationCreated, mq.InvitationCreatedPayload{
		InvitationID: inv.ID,
		Email:        inv.Email,
		ProjectID:    projectID,
		ProjectName:  project.Name,
		Role:         string(role),
		InvitedBy:    invitedBy,
		RegisterURL:  registerURL,
	}); err != nil {
		s.logger.Error("Failed to record invitation.created event",
			zap.Int64("invitation_id", inv.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("Invitation created",
		zap.Int64("project_id", projectID),
		zap.String("email", email),
		zap.String("role", string(role)),
	)
	return inv, registerURL, nil
}

func (s *Service) RegisterURL(token string) string {
	return fmt.Sprintf("%s/register?invite=%s", s.baseURL, token)
}

// Claim converts a pending invitation into a membership for the account
// registered under the invitation's email. The account lookup is retried a
// bounded number of times because the store may briefly not return a row that
// was just written. When retries run out the grant is recorded as an
// invite.claim_failed event instead of being dropped, and ErrClaimExhausted
// is returned.
func (s *Service) Claim(ctx context.Context, token string) (*model.ProjectMember, error) {
	inv, err := s.invitations.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		metrics.IncrementInvitationClaim("missing")
		return nil, ErrInvitationNotFound
	}

	var user *model.User
	for attempt := 1; attempt <= claimAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		user, err = s.users.FindByEmail(ctx, inv.Email)
		if err != nil {
			s.logger.Warn("Account lookup failed during invitation claim",
				zap.String("email", inv.Email),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		if user != nil {
			break
		}
		if attempt < claimAttempts {
			s.sleep(claimBackoff)
		}
	}

	if user == nil {
		metrics.IncrementInvitationClaim("exhausted")
		s.logger.Error("Invitation claim exhausted retries, parking grant for reconciliation",
			zap.Int64("invitation_id", inv.ID),
			zap.String("email", inv.Email),
			zap.Int64("project_id", inv.ProjectID),
		)
		if err := s.events.Record(ctx, "invitation", &inv.ID, mq.KeyInviteClaimFailed, mq.InviteClaimFailedPayload{
			InvitationID: inv.ID,
			Email:        inv.Email,
			ProjectID:    inv.ProjectID,
			Role:         string(inv.Role),
			Attempts:     claimAttempts,
			FailedAt:     s.now(),
		}); err != nil {
			s.logger.Error("Failed to record invite.claim_failed event",
				zap.Int64("invitation_id", inv.ID),
				zap.Error(err),
			)
		}
		return nil, ErrClaimExhausted
	}

	member := &model.ProjectMember{
		ProjectID: inv.ProjectID,
		UserID:    user.ID,
		Role:      inv.Role,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	if _, err := s.invitations.Delete(ctx, inv.ID); err != nil {
		// Membership exists; a leftover invitation row is harmless and can
		// be cancelled manually.
		s.logger.Warn("Failed to delete consumed invitation",
			zap.Int64("invitation_id", inv.ID),
			zap.Error(err),
		)
	}

	metrics.IncrementInvitationClaim("claimed")
	s.logger.Info("Invitation claimed",
		zap.Int64("invitation_id", inv.ID),
		zap.Int64("project_id", inv.ProjectID),
		zap.Int64("user_id", user.ID),
	)
	return member, nil
}

// Cancel deletes a pending invitation. Cancelling one that is already gone
// reports ErrInvitationNotFound rather than failing hard.
func (s *Service) Cancel(ctx context.Context, invitationID int64) error {
	deleted, err := s.invitations.Delete(ctx, invitationID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrInvitationNotFound
	}
	return nil
}
