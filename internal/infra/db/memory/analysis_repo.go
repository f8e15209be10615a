// Package memory is an in-process record store for tests and throwaway runs.
package memory

import (
	"context"
	"sync"
	"time"

	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/infra/db/sqlutil"
)

// AnalysisRepository keeps records in insertion order. Stored and returned
// records are copies, so callers cannot mutate what is stored.
type AnalysisRepository struct {
	mu      sync.RWMutex
	records []domain.Record
	nextID  domain.RecordID
}

func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{nextID: 1}
}

func (r *AnalysisRepository) Insert(ctx context.Context, rec *domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = r.nextID
	rec.CreatedAt = time.Now().UTC()
	r.nextID++
	r.records = append(r.records, clone(*rec))
	return nil
}

func (r *AnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = sqlutil.LimitOrDefault(limit, domain.DefaultHistoryLimit)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Record, 0, min(limit, len(r.records)))
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		c := clone(r.records[i])
		out = append(out, &c)
	}
	return out, nil
}

func (r *AnalysisRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

func clone(rec domain.Record) domain.Record {
	rec.Reasons = append([]string{}, rec.Reasons...)
	rec.Recommendations = append([]string{}, rec.Recommendations...)
	return rec
}
