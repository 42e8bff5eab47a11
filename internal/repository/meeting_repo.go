package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type MeetingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMeetingRepository(db *pgxpool.Pool, logger *zap.Logger) *MeetingRepository {
	return &MeetingRepository{db: db, logger: logger}
}

func (r *MeetingRepository) Create(ctx context.Context, m *model.Meeting) error {
	items, err := json.Marshal(m.ActionItems)
	if err != nil {
		return err
	}
	query := `
        INSERT INTO meetings (project_id, title, description, meeting_date, due_date,
                              meeting_type, completed, decisions, action_items, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err = r.db.QueryRow(ctx, query,
		m.ProjectID, m.Title, m.Description, m.MeetingDate, m.DueDate,
		m.Type, m.Completed, m.Decisions, items,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert meeting",
			zap.Int64("project_id", m.ProjectID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Meeting inserted", zap.Int64("meeting_id", m.ID))
	return nil
}

// GetByID returns (nil, nil) when the meeting does not exist. Malformed
// action item documents decode to an empty list instead of failing the read.
func (r *MeetingRepository) GetByID(ctx context.Context, id int64) (*model.Meeting, error) {
	query := `
        SELECT id, project_id, title, description, meeting_date, due_date,
               meeting_type, completed, decisions, action_items, created_at, updated_at
        FROM meetings
        WHERE id = $1
    `
	var (
		m        model.Meeting
		rawItems []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.MeetingDate, &m.DueDate,
		&m.Type, &m.Completed, &m.Decisions, &rawItems, &m.CreatedAt, &m.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.ActionItems = decodeActionItems(rawItems, r.logger, m.ID)
	return &m, nil
}

func (r *MeetingRepository) Update(ctx context.Context, m *model.Meeting) error {
	items, err := json.Marshal(m.ActionItems)
	if err != nil {
		return err
	}
	query := `
        UPDATE meetings
        SET title = $1, description = $2, meeting_date = $3, due_date = $4,
            meeting_type = $5, completed = $6, decisions = $7, action_items = $8, updated_at = NOW()
        WHERE id = $9
    `
	_, err = r.db.Exec(ctx, query,
		m.Title, m.Description, m.MeetingDate, m.DueDate,
		m.Type, m.Completed, m.Decisions, items, m.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update meeting", zap.Int64("meeting_id", m.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *MeetingRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete meeting", zap.Int64("meeting_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *MeetingRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Meeting, error) {
	query := `
        SELECT id, project_id, title, description, meeting_date, due_date,
               meeting_type, completed, decisions, action_items, created_at, updated_at
        FROM meetings
        WHERE project_id = $1
        ORDER BY meeting_date DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query meetings", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	meetings := []model.Meeting{}
	for rows.Next() {
		var (
			m        model.Meeting
			rawItems []byte
		)
		if err := rows.Scan(
			&m.ID, &m.ProjectID, &m.Title, &m.Description, &m.MeetingDate, &m.DueDate,
			&m.Type, &m.Completed, &m.Decisions, &rawItems, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.ActionItems = decodeActionItems(rawItems, r.logger, m.ID)
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *MeetingRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM meetings WHERE project_id = $1`, projectID)
	return err
}

func decodeActionItems(raw []byte, logger *zap.Logger, meetingID int64) []model.ActionItem {
	if len(raw) == 0 {
		return nil
	}
	var items []model.ActionItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Malformed action items document, coercing to empty",
			zap.Int64("meeting_id", meetingID),
			zap.Error(err),
		)
		return nil
	}
	return items
}
