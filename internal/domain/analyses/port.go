package analyses

import "context"

// DefaultHistoryLimit is used when a caller asks for a non-positive limit.
const DefaultHistoryLimit = 10

// Repository port (append-only record store)
type Repository interface {
	// Insert appends r and fills in r.ID and r.CreatedAt.
	Insert(ctx context.Context, r *Record) error
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	Ping(ctx context.Context) error
}

// Archive port (optional off-box copy of each persisted record)
type Archive interface {
	Put(ctx context.Context, r *Record) (string, error)
}
