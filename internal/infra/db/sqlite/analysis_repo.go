package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/infra/db/sqlutil"
)

// createdAtLayout is fixed-width so text ordering matches time ordering.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z"

type AnalysisRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// EnsureSchema creates the analyses table when missing.
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS analyses (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  risk_score INTEGER NOT NULL,
  risk_level TEXT NOT NULL,
  confidence INTEGER NOT NULL,
  confidence_label TEXT NOT NULL,
  reasons TEXT NOT NULL,
  recommendations TEXT NOT NULL,
  analyzed_at TEXT NOT NULL,
  created_at TEXT NOT NULL
);`
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
	created := r.now()

	res, err := r.db.ExecContext(ctx, q,
		rec.Username, rec.RiskScore, string(rec.RiskLevel), rec.Confidence, string(rec.ConfidenceLabel),
		reasons, recs, rec.Timestamp, created.Format(createdAtLayout),
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
		var reasons, recs, created string
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
		if rec.CreatedAt, err = time.Parse(createdAtLayout, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *AnalysisRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
