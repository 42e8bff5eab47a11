package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	r.logger.Debug("Inserting project",
		zap.Int64("owner_id", p.OwnerID),
		zap.String("name", p.Name),
	)

	query := `
        INSERT INTO projects (name, address, owner_id, budget_planned, budget_overflow_percent, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		p.Name,
		p.Address,
		p.OwnerID,
		p.BudgetPlanned,
		p.BudgetOverflowPercent,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return err
	}

	r.logger.Info("Project inserted successfully",
		zap.Int64("id", p.ID),
		zap.Int64("owner_id", p.OwnerID),
	)
	return nil
}

// GetByID returns (nil, nil) when the project does not exist.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	query := `
        SELECT id, name, address, owner_id, budget_planned, budget_overflow_percent, created_at, updated_at
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.OwnerID,
		&p.BudgetPlanned, &p.BudgetOverflowPercent,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get project", zap.Int64("project_id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `
        UPDATE projects
        SET name = $1, address = $2, budget_planned = $3, budget_overflow_percent = $4, updated_at = NOW()
        WHERE id = $5
    `
	_, err := r.db.Exec(ctx, query,
		p.Name, p.Address, p.BudgetPlanned, p.BudgetOverflowPercent, p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int64("project_id", p.ID), zap.Error(err))
		return err
	}
	r.logger.Info("Project updated", zap.Int64("project_id", p.ID))
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int64("project_id", id), zap.Error(err))
		return err
	}
	r.logger.Info("Project deleted", zap.Int64("project_id", id))
	return nil
}

// ListByUser returns projects the user owns plus projects where a membership
// row exists.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID int64) ([]model.Project, error) {
	query := `
        SELECT DISTINCT p.id, p.name, p.address, p.owner_id, p.budget_planned, p.budget_overflow_percent, p.created_at, p.updated_at
        FROM projects p
        LEFT JOIN project_users pu ON pu.project_id = p.id
        WHERE p.owner_id = $1 OR pu.user_id = $1
        ORDER BY p.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Address, &p.OwnerID,
			&p.BudgetPlanned, &p.BudgetOverflowPercent,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListAll returns every project, used by the periodic alert scan.
func (r *ProjectRepository) ListAll(ctx context.Context) ([]model.Project, error) {
	query := `
        SELECT id, name, address, owner_id, budget_planned, budget_overflow_percent, created_at, updated_at
        FROM projects
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Address, &p.OwnerID,
			&p.BudgetPlanned, &p.BudgetOverflowPercent,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CountByOwner reports how many projects a user owns.
func (r *ProjectRepository) CountByOwner(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects WHERE owner_id = $1`, userID).Scan(&count)
	return count, err
}
