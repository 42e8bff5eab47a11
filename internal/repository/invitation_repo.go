package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type InvitationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInvitationRepository(db *pgxpool.Pool, logger *zap.Logger) *InvitationRepository {
	return &InvitationRepository{db: db, logger: logger}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *model.Invitation) error {
	query := `
        INSERT INTO pending_invitations (email, project_id, role_in_project, token, invited_by, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		inv.Email, inv.ProjectID, inv.Role, inv.Token, inv.InvitedBy,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert invitation",
			zap.String("email", inv.Email),
			zap.Int64("project_id", inv.ProjectID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Invitation created",
		zap.Int64("invitation_id", inv.ID),
		zap.Int64("project_id", inv.ProjectID),
	)
	return nil
}

// FindByToken returns (nil, nil) when no pending invitation carries the token.
func (r *InvitationRepository) FindByToken(ctx context.Context, token string) (*model.Invitation, error) {
	query := `
        SELECT id, email, project_id, role_in_project, token, invited_by, created_at
        FROM pending_invitations
        WHERE token = $1
    `
	var inv model.Invitation
	err := r.db.QueryRow(ctx, query, token).Scan(
		&inv.ID, &inv.Email, &inv.ProjectID, &inv.Role, &inv.Token, &inv.InvitedBy, &inv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvitationRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Invitation, error) {
	query := `
        SELECT id, email, project_id, role_in_project, token, invited_by, created_at
        FROM pending_invitations
        WHERE project_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := []model.Invitation{}
	for rows.Next() {
		var inv model.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.Email, &inv.ProjectID, &inv.Role, &inv.Token, &inv.InvitedBy, &inv.CreatedAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// Delete removes an invitation. Deleting an already-deleted invitation is a
// no-op: rowsDeleted is returned so callers can tell.
func (r *InvitationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM pending_invitations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete invitation", zap.Int64("invitation_id", id), zap.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *InvitationRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pending_invitations WHERE project_id = $1`, projectID)
	return err
}
