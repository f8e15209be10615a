package mysql

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
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  username TEXT NOT NULL,
  risk_score INT NOT NULL,
  risk_level VARCHAR(32) NOT NULL,
  confidence INT NOT NULL,
  confidence_label VARCHAR(16) NOT NULL,
  reasons JSON NOT NULL,
  recommendations JSON NOT NULL,
  analyzed_at VARCHAR(64) NOT NULL,
  created_at DATETIME(6) NOT NULL,
  KEY idx_analyses_created (created_at)
) CHARACTER SET utf8mb4;`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Insert appends one analysis record
func (r *AnalysisRepository) Insert(ctx context.Context, rec *domain.Record) error {
	const q = `
INSERT INTO analyses
  (username, risk_score, risk_level, confidence, confidence_label, reasons, recommendations, analyzed_at, created_at)
VALUES (?,?,?,?,?,?,?,?,?);
`
	reasons, err := sqlutil.EncodeList(rec.Reasons)
	if err != nil {
		return err
	}
	recs, err := sqlutil.EncodeList(rec.Recommendations)
	if err != nil {
		return err
	}
	// DATETIME(6) keeps microseconds only
	created := time.Now().UTC().Truncate(time.Microsecond)

	res, err := r.db.ExecContext(ctx, q,
		rec.Username, rec.RiskScore, string(rec.RiskLevel), rec.Confidence, string(rec.ConfidenceLabel),
		reasons, recs, rec.Timestamp, created,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
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
       reasons, recommendations, analyzed_at, created_at
FROM analyses
ORDER BY created_at DESC, id DESC
LIMIT ?;
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
