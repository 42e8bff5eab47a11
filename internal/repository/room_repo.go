package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/DiegoSucharczuk/renovation-sub000/internal/model"
)

type RoomRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRoomRepository(db *pgxpool.Pool, logger *zap.Logger) *RoomRepository {
	return &RoomRepository{db: db, logger: logger}
}

func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
        INSERT INTO rooms (project_id, name, type, status, is_usable, icon, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		room.ProjectID, room.Name, room.Type, room.Status, room.IsUsable, room.Icon,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert room",
			zap.Int64("project_id", room.ProjectID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Info("Room inserted", zap.Int64("room_id", room.ID))
	return nil
}

// GetByID returns (nil, nil) when the room does not exist. Tasks keep a
// dangling room id after room deletion, so callers must handle the miss.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	query := `
        SELECT id, project_id, name, type, status, is_usable, icon, created_at, updated_at
        FROM rooms
        WHERE id = $1
    `
	var (
		room         model.Room
		rawType      string
		rawStatus    string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID, &room.ProjectID, &room.Name, &rawType, &rawStatus,
		&room.IsUsable, &room.Icon, &room.CreatedAt, &room.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	room.Type = model.NormalizeRoomType(rawType)
	room.Status = model.NormalizeRoomStatus(rawStatus)
	return &room, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `
        UPDATE rooms
        SET name = $1, type = $2, status = $3, is_usable = $4, icon = $5, updated_at = NOW()
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query,
		room.Name, room.Type, room.Status, room.IsUsable, room.Icon, room.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update room", zap.Int64("room_id", room.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete room", zap.Int64("room_id", id), zap.Error(err))
		return err
	}
	r.logger.Info("Room deleted", zap.Int64("room_id", id))
	return nil
}

func (r *RoomRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Room, error) {
	query := `
        SELECT id, project_id, name, type, status, is_usable, icon, created_at, updated_at
        FROM rooms
        WHERE project_id = $1
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query rooms", zap.Int64("project_id", projectID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var (
			room      model.Room
			rawType   string
			rawStatus string
		)
		if err := rows.Scan(
			&room.ID, &room.ProjectID, &room.Name, &rawType, &rawStatus,
			&room.IsUsable, &room.Icon, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, err
		}
		room.Type = model.NormalizeRoomType(rawType)
		room.Status = model.NormalizeRoomStatus(rawStatus)
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE project_id = $1`, projectID)
	return err
}
