package analyses

import (
	"context"
	"fmt"
	"time"

	"github.com/bryanwahyu/account-risk/internal/application"
	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/domain/risk"
	"github.com/bryanwahyu/account-risk/internal/logging"
)

// Service implements use-cases untuk analysis
// Service is safe for concurrent use as long as Repo is.
type Service struct {
	Repo    domain.Repository
	Archive domain.Archive // optional
	Clock   application.Clock
}

// Analyze evaluates p, persists the result and returns the stored record.
// A persistence failure fails the whole call; nothing is returned.
func (s *Service) Analyze(ctx context.Context, p risk.AccountProfile) (*domain.Record, error) {
	e := risk.Evaluate(p)
	reasons := risk.Reasons(p, e)
	recs := risk.Recommend(e.Level, reasons)

	rec := &domain.Record{
		Assessment: domain.Assessment{
			Username:        p.Username,
			RiskScore:       e.Score,
			RiskLevel:       e.Level,
			Confidence:      e.Confidence,
			ConfidenceLabel: e.ConfidenceLabel,
			Reasons:         risk.Texts(reasons),
			Recommendations: recs,
			Timestamp:       s.now().Format(time.RFC3339Nano),
		},
	}

	if err := s.Repo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	logging.L(ctx).Info("analysis stored",
		"id", rec.ID,
		"username", rec.Username,
		"risk_score", rec.RiskScore,
		"risk_level", rec.RiskLevel,
	)

	s.archive(ctx, rec)
	return rec, nil
}

// History returns up to limit records, newest first; never nil.
func (s *Service) History(ctx context.Context, limit int) ([]*domain.Record, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	list, err := s.Repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	if list == nil {
		list = []*domain.Record{}
	}
	return list, nil
}

// archive copies rec to the archive. The record is already in the store,
// so failures are only logged.
func (s *Service) archive(ctx context.Context, rec *domain.Record) {
	if s.Archive == nil {
		return
	}
	url, err := s.Archive.Put(ctx, rec)
	if err != nil {
		logging.L(ctx).Warn("archive upload failed", "id", rec.ID, "error", err)
		return
	}
	logging.L(ctx).Debug("analysis archived", "id", rec.ID, "url", url)
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}
