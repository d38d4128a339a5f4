package sqlite

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/belalnote2/InsightAssistant/internal/domain/failures"
)

type FailureRepository struct {
	db *sql.DB
}

func NewFailureRepository(db *sql.DB) *FailureRepository {
	return &FailureRepository{db: db}
}

// Save records one degraded analysis call
func (r *FailureRepository) Save(ctx context.Context, f *domain.Failure) error {
	const q = `
INSERT INTO analysis_failures (cause, detail, occurred_at)
VALUES (?,?,?);
`
	occurredAt := f.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q, f.Cause, f.Detail, occurredAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	f.OccurredAt = occurredAt
	return nil
}

// Recent returns the latest recorded failures, newest first
func (r *FailureRepository) Recent(ctx context.Context, limit int) ([]*domain.Failure, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, cause, detail, occurred_at
FROM analysis_failures
ORDER BY id DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Failure
	for rows.Next() {
		var f domain.Failure
		if err := rows.Scan(&f.ID, &f.Cause, &f.Detail, &f.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
