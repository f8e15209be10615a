package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/domain/risk"
)

// newRepo connects to MYSQL_DSN and starts from an empty table.
// The test is skipped when MYSQL_DSN is not set.
func newRepo(t *testing.T) *AnalysisRepository {
	t.Helper()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set, skipping integration test")
	}
	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAnalysisRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	_, err = db.ExecContext(ctx, "TRUNCATE TABLE analyses")
	require.NoError(t, err)
	return repo
}

func TestAnalysisRepository_RoundTrip(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	empty, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)

	var inserted []*domain.Record
	for _, name := range []string{"first", "second", "third"} {
		rec := &domain.Record{Assessment: domain.Assessment{
			Username:        name,
			RiskScore:       42,
			RiskLevel:       risk.LevelModerate,
			Confidence:      52,
			ConfidenceLabel: risk.ConfidenceMedium,
			Reasons:         []string{"Bio contains an external link"},
			Recommendations: []string{"🔗 Never click suspicious links - they may be phishing attempts"},
			Timestamp:       "2026-10-18T10:00:00Z",
		}}
		require.NoError(t, repo.Insert(ctx, rec))
		inserted = append(inserted, rec)
	}

	list, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, got := range list {
		want := inserted[len(inserted)-1-i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Assessment, got.Assessment)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	}
	assert.NoError(t, repo.Ping(ctx))
}
