package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/infra/db/sqlutil"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// EnsureSchema creates the analyses table when missing.
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS analyses (
  id BIGSERIAL PRIMARY KEY,
  username TEXT NOT NULL,
  risk_score INTEGER NOT NULL,
  risk_level TEXT NOT NULL,
  confidence INTEGER NOT NULL,
  confidence_label TEXT NOT NULL,
  reasons JSONB NOT NULL,
  recommendations JSONB NOT NULL,
  analyzed_at TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses (created_at DESC, id DESC);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Insert appends one analysis record; id comes back via RETURNING
func (r *AnalysisRepository) Insert(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analyses
  (username, risk_score, risk_level, confidence, confidence_label, reasons, recommendations, analyzed_at, created_at)
VALUES ($1,$2,$3,$4,$5,$6::jsonb,$7::jsonb,$8,$9)
RETURNING id;
`
	reasons, err := sqlutil.EncodeList(rec.Reasons)
	if err != nil {
		return err
	}
	recs, err := sqlutil.EncodeList(rec.Recommendations)
	if err != nil {
		return err
	}
	// TIMESTAMPTZ keeps microseconds only
	created := time.Now().UTC().Truncate(time.Microsecond)

	var id int64
	if err := r.db.QueryRowContext(ctx, q,
		rec.Username, rec.RiskScore, string(rec.RiskLevel), rec.Confidence, string(rec.ConfidenceLabel),
		reasons, recs, rec.Timestamp, created,
	).Scan(&id); err != nil {
		return err
	}
	rec.ID = domain.RecordID(id)
	rec.CreatedAt = created
	return nil
}

// ListRecent returns up to limit records ordered by created_at desc
func (r *AnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Record, error) {
	limit = sqlutil.LimitOrDefault(limit, domain.DefaultHistoryLimit)
	const q = `
SELECT id, username, risk_score, risk_level, confidence, confidence_label,
       reasons::text, recommendations::text, analyzed_at, created_at
FROM analyses
ORDER BY created_at DESC, id DESC
LIMIT $1;
`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		var rec domain.Record
		var reasons, recs string
		var created time.Time
		if err := rows.Scan(
			&rec.ID, &rec.Username, &rec.RiskScore, &rec.RiskLevel, &rec.Confidence, &rec.ConfidenceLabel,
			&reasons, &recs, &rec.Timestamp, &created,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if rec.Reasons, err = sqlutil.DecodeList(reasons); err != nil {
			return nil, err
		}
		if rec.Recommendations, err = sqlutil.DecodeList(recs); err != nil {
			return nil, err
		}
		rec.CreatedAt = created.UTC()
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
