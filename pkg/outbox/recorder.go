package outbox

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Recorder writes a single pending event in its own transaction, for call
// sites that are not already inside one.
type Recorder struct {
	db   *pgxpool.Pool
	repo *Repository
}

func NewRecorder(db *pgxpool.Pool, repo *Repository) *Recorder {
	return &Recorder{db: db, repo: repo}
}

func (r *Recorder) Record(ctx context.Context, aggregateType string, aggregateID *int64, routingKey string, payload interface{}) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := InsertEventInTx(ctx, tx, r.repo, aggregateType, aggregateID, routingKey, payload); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
