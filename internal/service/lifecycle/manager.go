package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/contracts/mq"
	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
	"github.com/DiegoSucharczuk/renovation-sub000/pkg/metrics"
)

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrNameConfirmation = errors.New("confirmation does not match project name")
)

type taskStore interface {
	Create(ctx context.Context, t *model.Task) error
	Update(ctx context.Context, t *model.Task) error
}

type paymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	Update(ctx context.Context, p *model.Payment) error
	Delete(ctx context.Context, id int64) error
	ListByVendor(ctx context.Context, vendorID int64) ([]model.Payment, error)
}

type roomStore interface {
	Delete(ctx context.Context, id int64) error
}

type vendorStore interface {
	Delete(ctx context.Context, id int64) error
}

type projectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
	CountByOwner(ctx context.Context, userID int64) (int, error)
}

type memberStore interface {
	Delete(ctx context.Context, projectID, userID int64) error
	CountByUser(ctx context.Context, userID int64) (int, error)
}

type userStore interface {
	Delete(ctx context.Context, id int64) error
}

type collectionPurger interface {
	DeleteByProject(ctx context.Context, projectID int64) error
}

type eventRecorder interface {
	Record(ctx context.Context, aggregateType string, aggregateID *int64, routingKey string, payload interface{}) error
}

// Stores bundles every repository the lifecycle manager mutates. Purger
// entries cover the collections swept during project deletion.
type Stores struct {
	Tasks    taskStore
	Payments paymentStore
	Rooms    roomStore
	Vendors  vendorStore
	Projects projectStore
	Members  memberStore
	Users    userStore

	RoomPurger       collectionPurger
	TaskPurger       collectionPurger
	VendorPurger     collectionPurger
	PaymentPurger    collectionPurger
	MeetingPurger    collectionPurger
	ContactPurger    collectionPurger
	MemberPurger     collectionPurger
	InvitationPurger collectionPurger
}

// Manager owns the mutation rules that go beyond a single repository call:
// save-time normalization, cascading deletes, and account cleanup.
type Manager struct {
	stores Stores
	events eventRecorder
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(stores Stores, events eventRecorder, logger *zap.Logger) *Manager {
	return &Manager{
		stores: stores,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// SaveTask creates or updates a task. A task entered without a title takes
// its category, or failing that its description, as the stored title.
func (m *Manager) SaveTask(ctx context.Context, t *model.Task) error {
	t.Status = model.NormalizeTaskStatus(string(t.Status))
	if t.Title == "" {
		t.Title = t.DisplayTitle()
	}
	if t.ID == 0 {
		return m.stores.Tasks.Create(ctx, t)
	}
	return m.stores.Tasks.Update(ctx, t)
}

// SavePayment validates and creates or updates a payment. Date fields are
// reshaped for the payment's status, so moving a payment from pending to paid
// carries its estimated date over into the paid date.
func (m *Manager) SavePayment(ctx context.Context, p *model.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.NormalizeDates(m.now())
	if p.ID == 0 {
		return m.stores.Payments.Create(ctx, p)
	}
	return m.stores.Payments.Update(ctx, p)
}

// DeleteRoom removes the room only. Tasks keep their room reference, which
// readers resolve to "no room" when the lookup misses.
func (m *Manager) DeleteRoom(ctx context.Context, roomID int64) error {
	return m.stores.Rooms.Delete(ctx, roomID)
}

// CascadeReport describes the outcome of a best-effort dependent sweep.
type CascadeReport struct {
	DeletedPayments   []int64  `json:"deleted_payments,omitempty"`
	FailedPayments    []int64  `json:"failed_payments,omitempty"`
	FailedCollections []string `json:"failed_collections,omitempty"`
}

func (r CascadeReport) Partial() bool {
	return len(r.FailedPayments) > 0 || len(r.FailedCollections) > 0
}

// DeleteVendor removes a vendor and sweeps its payments one by one. Payment
// deletions that fail are reported and left in place; the vendor is deleted
// regardless, so the report is the only record of what remains.
func (m *Manager) DeleteVendor(ctx context.Context, vendorID int64) (CascadeReport, error) {
	var report CascadeReport

	payments, err := m.stores.Payments.ListByVendor(ctx, vendorID)
	if err != nil {
		return report, fmt.Errorf("listing vendor payments: %w", err)
	}

	for _, p := range payments {
		if err := m.stores.Payments.Delete(ctx, p.ID); err != nil {
			report.FailedPayments = append(report.FailedPayments, p.ID)
			metrics.IncrementCascadeFailure("vendor", "payments")
			m.logger.Error("Payment deletion failed during vendor cascade",
				zap.Int64("vendor_id", vendorID),
				zap.Int64("payment_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		report.DeletedPayments = append(report.DeletedPayments, p.ID)
	}

	if err := m.stores.Vendors.Delete(ctx, vendorID); err != nil {
		return report, fmt.Errorf("deleting vendor %d: %w", vendorID, err)
	}
	return report, nil
}

// DeleteProject removes a project and every dependent collection. The caller
// must supply the project's exact name as confirmation before anything is
// touched. Collection sweeps are best-effort: a failing sweep is reported and
// skipped, and the project row is removed regardless.
func (m *Manager) DeleteProject(ctx context.Context, projectID int64, confirmName string, deletedBy int64) (CascadeReport, error) {
	var report CascadeReport

	project, err := m.stores.Projects.GetByID(ctx, projectID)
	if err != nil {
		return report, err
	}
	if project == nil {
		return report, ErrProjectNotFound
	}
	if confirmName != project.Name {
		return report, ErrNameConfirmation
	}

	sweeps := []struct {
		name   string
		purger collectionPurger
	}{
		{"rooms", m.stores.RoomPurger},
		{"tasks", m.stores.TaskPurger},
		{"project_users", m.stores.MemberPurger},
		{"vendors", m.stores.VendorPurger},
		{"payments", m.stores.PaymentPurger},
		{"meetings", m.stores.MeetingPurger},
		{"project_owners", m.stores.ContactPurger},
		{"pending_invitations", m.stores.InvitationPurger},
	}

	for _, s := range sweeps {
		if err := s.purger.DeleteByProject(ctx, projectID); err != nil {
			report.FailedCollections = append(report.FailedCollections, s.name)
			metrics.IncrementCascadeFailure("project", s.name)
			m.logger.Error("Collection sweep failed during project cascade",
				zap.Int64("project_id", projectID),
				zap.String("collection", s.name),
				zap.Error(err),
			)
		}
	}

	if err := m.stores.Projects.Delete(ctx, projectID); err != nil {
		return report, fmt.Errorf("deleting project %d: %w", projectID, err)
	}

	if err := m.events.Record(ctx, "project", &projectID, mq.KeyProjectDeleted, mq.ProjectDeletedPayload{
		ProjectID:   projectID,
		ProjectName: project.Name,
		DeletedBy:   deletedBy,
		DeletedAt:   m.now(),
	}); err != nil {
		m.logger.Error("Failed to record project.deleted event",
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
	}

	return report, nil
}

// RemoveMember drops the membership row, then deletes the user account
// entirely if that was their last tie to any project.
func (m *Manager) RemoveMember(ctx context.Context, projectID, userID int64) error {
	if err := m.stores.Members.Delete(ctx, projectID, userID); err != nil {
		return err
	}

	memberships, err := m.stores.Members.CountByUser(ctx, userID)
	if err != nil {
		m.logger.Warn("Skipping account cleanup, membership count failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil
	}
	owned, err := m.stores.Projects.CountByOwner(ctx, userID)
	if err != nil {
		m.logger.Warn("Skipping account cleanup, ownership count failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil
	}
	if memberships > 0 || owned > 0 {
		return nil
	}

	if err := m.stores.Users.Delete(ctx, userID); err != nil {
		m.logger.Error("Orphaned account cleanup failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil
	}
	m.logger.Info("Removed user account with no remaining projects", zap.Int64("user_id", userID))
	return nil
}
