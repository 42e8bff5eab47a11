package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type MemberRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMemberRepository(db *pgxpool.Pool, logger *zap.Logger) *MemberRepository {
	return &MemberRepository{db: db, logger: logger}
}

func (r *MemberRepository) Create(ctx context.Context, m *model.ProjectMember) error {
	query := `
        INSERT INTO project_users (project_id, user_id, role_in_project, created_at)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, m.ProjectID, m.UserID, m.Role).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert project member",
			zap.Int64("project_id", m.ProjectID),
			zap.Int64("user_id", m.UserID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Project member added",
		zap.Int64("project_id", m.ProjectID),
		zap.Int64("user_id", m.UserID),
		zap.String("role", string(m.Role)),
	)
	return nil
}

// Find returns (nil, nil) when the user has no membership row in the project.
func (r *MemberRepository) Find(ctx context.Context, projectID, userID int64) (*model.ProjectMember, error) {
	query := `
        SELECT id, project_id, user_id, role_in_project, created_at
        FROM project_users
        WHERE project_id = $1 AND user_id = $2
    `
	var m model.ProjectMember
	err := r.db.QueryRow(ctx, query, projectID, userID).Scan(
		&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) ListByProject(ctx context.Context, projectID int64) ([]model.ProjectMember, error) {
	query := `
        SELECT id, project_id, user_id, role_in_project, created_at
        FROM project_users
        WHERE project_id = $1
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []model.ProjectMember{}
	for rows.Next() {
		var m model.ProjectMember
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberRepository) Delete(ctx context.Context, projectID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM project_users WHERE project_id = $1 AND user_id = $2`,
		projectID, userID,
	)
	if err != nil {
		r.logger.Error("Failed to remove project member",
			zap.Int64("project_id", projectID),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// CountByUser reports how many memberships a user holds across all projects.
func (r *MemberRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM project_users WHERE user_id = $1`, userID,
	).Scan(&count)
	return count, err
}

func (r *MemberRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project_users WHERE project_id = $1`, projectID)
	return err
}
