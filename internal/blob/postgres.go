package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore keeps file bytes in a blobs table. Sharing is a flat list of
// emails granted read access; an empty list means project-wide visibility.
type PostgresStore struct {
	db      *pgxpool.Pool
	baseURL string
	logger  *zap.Logger
}

func NewPostgresStore(db *pgxpool.Pool, baseURL string, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, baseURL: baseURL, logger: logger}
}

func (s *PostgresStore) Upload(ctx context.Context, name, contentType string, data []byte, shareWith []string) (*FileRef, error) {
	id := uuid.NewString()
	query := `
        INSERT INTO blobs (id, name, content_type, data, shared_with, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
    `
	if _, err := s.db.Exec(ctx, query, id, name, contentType, data, shareWith); err != nil {
		s.logger.Error("Failed to store blob", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	return &FileRef{
		ID:          id,
		ViewURL:     fmt.Sprintf("%s/api/files/%s", s.baseURL, id),
		DownloadURL: fmt.Sprintf("%s/api/files/%s?download=1", s.baseURL, id),
	}, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM blobs WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("Failed to delete blob", zap.String("blob_id", id), zap.Error(err))
	}
	return err
}

// FetchAsBlob returns the file bytes, or (nil, nil) when the file is gone.
func (s *PostgresStore) FetchAsBlob(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT data FROM blobs WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Meta returns the stored name and content type for serving the file.
func (s *PostgresStore) Meta(ctx context.Context, id string) (name, contentType string, err error) {
	err = s.db.QueryRow(ctx, `SELECT name, content_type FROM blobs WHERE id = $1`, id).Scan(&name, &contentType)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", nil
	}
	return name, contentType, err
}
