package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	// Save inserts the record and fills a.ID with the generated identifier.
	Save(ctx context.Context, a *Analysis) error
	Latest(ctx context.Context, limit int) ([]*Analysis, error)
	All(ctx context.Context) ([]*Analysis, error)
}
