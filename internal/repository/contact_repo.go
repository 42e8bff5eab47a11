package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type ContactRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewContactRepository(db *pgxpool.Pool, logger *zap.Logger) *ContactRepository {
	return &ContactRepository{db: db, logger: logger}
}

func (r *ContactRepository) Create(ctx context.Context, c *model.OwnerContact) error {
	query := `
        INSERT INTO project_owners (project_id, name, phone, email, role, notes)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		c.ProjectID, c.Name, c.Phone, c.Email, c.Role, c.Notes,
	).Scan(&c.ID)
	if err != nil {
		r.logger.Error("Failed to insert owner contact",
			zap.Int64("project_id", c.ProjectID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// GetByID returns (nil, nil) when the contact does not exist.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*model.OwnerContact, error) {
	query := `
        SELECT id, project_id, name, phone, email, role, notes
        FROM project_owners
        WHERE id = $1
    `
	var c model.OwnerContact
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ProjectID, &c.Name, &c.Phone, &c.Email, &c.Role, &c.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *model.OwnerContact) error {
	query := `
        UPDATE project_owners
        SET name = $1, phone = $2, email = $3, role = $4, notes = $5
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query, c.Name, c.Phone, c.Email, c.Role, c.Notes, c.ID)
	if err != nil {
		r.logger.Error("Failed to update owner contact", zap.Int64("contact_id", c.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project_owners WHERE id = $1`, id)
	return err
}

func (r *ContactRepository) ListByProject(ctx context.Context, projectID int64) ([]model.OwnerContact, error) {
	query := `
        SELECT id, project_id, name, phone, email, role, notes
        FROM project_owners
        WHERE project_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.OwnerContact{}
	for rows.Next() {
		var c model.OwnerContact
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Phone, &c.Email, &c.Role, &c.Notes); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *ContactRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project_owners WHERE project_id = $1`, projectID)
	return err
}
