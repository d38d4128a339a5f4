package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/belalnote2/InsightAssistant/internal/domain/analysis"
)

// AnalysisRepository persists analyses in MySQL. Schema is managed
// out-of-band; see the sqlite package for the reference DDL.
type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts an analysis record and fills the generated id
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO analyses (original_text, summary, persons, category, created_at)
VALUES (?,?,?,?,?);
`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q, a.OriginalText, a.Summary, a.Persons, a.Category, createdAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	a.CreatedAt = createdAt
	return nil
}

// Latest returns the most recent analyses, newest first
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, original_text, summary, persons, category, created_at
FROM analyses
ORDER BY id DESC
LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnalyses(rows)
}

// All returns every stored analysis, oldest first
func (r *AnalysisRepository) All(ctx context.Context) ([]*domain.Analysis, error) {
	const q = `
SELECT id, original_text, summary, persons, category, created_at
FROM analyses
ORDER BY id ASC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAnalyses(rows)
}

func scanAnalyses(rows *sql.Rows) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		if err := rows.Scan(&a.ID, &a.OriginalText, &a.Summary, &a.Persons, &a.Category, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
