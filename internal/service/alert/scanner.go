package alert

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/service/report"
)

type projectLister interface {
	ListAll(ctx context.Context) ([]model.Project, error)
}

type taskLister interface {
	ListByProject(ctx context.Context, projectID int64) ([]model.Task, error)
}

type paymentLister interface {
	ListByProject(ctx context.Context, projectID int64) ([]model.Payment, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type eventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Scanner periodically recomputes the attention list for every project and
// publishes an alert.raised event when something needs attention. Fan-out to
// notification channels happens downstream of the queue.
type Scanner struct {
	projects  projectLister
	tasks     taskLister
	payments  paymentLister
	users     userGetter
	publisher eventPublisher
	logger    *zap.Logger

	cron *cron.Cron
	now  func() time.Time
}

func NewScanner(projects projectLister, tasks taskLister, payments paymentLister, users userGetter, publisher eventPublisher, logger *zap.Logger) *Scanner {
	return &Scanner{
		projects:  projects,
		tasks:     tasks,
		payments:  payments,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Start schedules the scan. An empty spec disables it.
func (s *Scanner) Start(spec string) error {
	if spec == "" {
		s.logger.Info("Alert scan disabled, no cron spec configured")
		return nil
	}
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.Scan(ctx)
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Alert scan scheduled", zap.String("spec", spec))
	return nil
}

func (s *Scanner) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Scan walks every project once. Per-project failures are logged and skipped
// so one broken project cannot starve the rest.
func (s *Scanner) Scan(ctx context.Context) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		s.logger.Error("Alert scan failed listing projects", zap.Error(err))
		return
	}

	raised := 0
	for _, project := range projects {
		if err := s.scanProject(ctx, project); err != nil {
			s.logger.Error("Alert scan failed for project",
				zap.Int64("project_id", project.ID),
				zap.Error(err),
			)
			continue
		}
		raised++
	}
	s.logger.Info("Alert scan finished",
		zap.Int("projects", len(projects)),
		zap.Int("scanned", raised),
	)
}

func (s *Scanner) scanProject(ctx context.Context, project model.Project) error {
	tasks, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}
	payments, err := s.payments.ListByProject(ctx, project.ID)
	if err != nil {
		return err
	}

	alerts := report.DetectAlerts(s.now(), tasks, payments)
	if len(alerts.OverdueTasks) == 0 && len(alerts.UpcomingPayments) == 0 && alerts.WaitingCount == 0 {
		return nil
	}

	var recipients []string
	owner, err := s.users.GetByID(ctx, project.OwnerID)
	if err != nil {
		s.logger.Warn("Alert scan could not resolve project owner",
			zap.Int64("project_id", project.ID),
			zap.Error(err),
		)
	} else if owner != nil {
		recipients = append(recipients, owner.Email)
	}

	return s.publisher.Publish(mq.KeyAlertRaised, mq.AlertRaisedPayload{
		ProjectID:        project.ID,
		ProjectName:      project.Name,
		OverdueTasks:     len(alerts.OverdueTasks),
		UpcomingPayments: len(alerts.UpcomingPayments),
		WaitingTasks:     alerts.WaitingCount,
		Recipients:       recipients,
		RaisedAt:         s.now(),
	})
}
