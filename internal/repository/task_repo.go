package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func (r *TaskRepository) Create(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Inserting task",
		zap.Int64("project_id", t.ProjectID),
		zap.String("title", t.Title),
		zap.String("status", string(t.Status)),
	)
	query := `
        INSERT INTO tasks (project_id, room_id, title, description, category, status,
                           start_planned, end_planned, start_actual, end_actual,
                           budget_allocated, depends_on, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		t.ProjectID, t.RoomID, t.Title, t.Description, t.Category, t.Status,
		t.StartPlanned, t.EndPlanned, t.StartActual, t.EndActual,
		t.BudgetAllocated, t.DependsOn,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert task",
			zap.Int64("project_id", t.ProjectID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Task inserted successfully",
		zap.Int64("task_id", t.ID),
		zap.Int64("project_id", t.ProjectID),
	)
	return nil
}

// GetByID returns (nil, nil) when the task does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `
        SELECT id, project_id, room_id, title, description, category, status,
               start_planned, end_planned, start_actual, end_actual,
               budget_allocated, depends_on, created_at, updated_at
        FROM tasks
        WHERE id = $1
    `
	var (
		t         model.Task
		rawStatus string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ProjectID, &t.RoomID, &t.Title, &t.Description, &t.Category, &rawStatus,
		&t.StartPlanned, &t.EndPlanned, &t.StartActual, &t.EndActual,
		&t.BudgetAllocated, &t.DependsOn, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Status = model.NormalizeTaskStatus(rawStatus)
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	query := `
        UPDATE tasks
        SET room_id = $1, title = $2, description = $3, category = $4, status = $5,
            start_planned = $6, end_planned = $7, start_actual = $8, end_actual = $9,
            budget_allocated = $10, depends_on = $11, updated_at = NOW()
        WHERE id = $12
    `
	_, err := r.db.Exec(ctx, query,
		t.RoomID, t.Title, t.Description, t.Category, t.Status,
		t.StartPlanned, t.EndPlanned, t.StartActual, t.EndActual,
		t.BudgetAllocated, t.DependsOn, t.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update task", zap.Int64("task_id", t.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete task", zap.Int64("task_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Task, error) {
	r.logger.Debug("Listing tasks for project", zap.Int64("project_id", projectID))
	query := `
        SELECT id, project_id, room_id, title, description, category, status,
               start_planned, end_planned, start_actual, end_actual,
               budget_allocated, depends_on, created_at, updated_at
        FROM tasks
        WHERE project_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query tasks",
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var (
			t         model.Task
			rawStatus string
		)
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.RoomID, &t.Title, &t.Description, &t.Category, &rawStatus,
			&t.StartPlanned, &t.EndPlanned, &t.StartActual, &t.EndActual,
			&t.BudgetAllocated, &t.DependsOn, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.Status = model.NormalizeTaskStatus(rawStatus)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
	return err
}
