package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/domain/risk"
)

func newRepo(t *testing.T) *AnalysisRepository {
	t.Helper()
	ctx := context.Background()
	db, err := Connect(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewAnalysisRepository(db)
	require.NoError(t, repo.EnsureSchema(ctx))
	require.NoError(t, repo.EnsureSchema(ctx), "schema creation must be idempotent")
	return repo
}

func sampleRecord(i int) *domain.Record {
	return &domain.Record{Assessment: domain.Assessment{
		Username:        fmt.Sprintf("user_%d", i),
		RiskScore:       i * 7 % 101,
		RiskLevel:       risk.LevelFor(i * 7 % 101),
		Confidence:      20 + i,
		ConfidenceLabel: risk.ConfidenceLow,
		Reasons:         []string{"Missing profile picture", fmt.Sprintf("reason %d", i)},
		Recommendations: []string{"⚠️ DO NOT interact with this account or click any links", `say "hi"`},
		Timestamp:       time.Date(2026, 1, 2, 3, 4, i, 0, time.UTC).Format(time.RFC3339Nano),
	}}
}

func TestListRecent_EmptyStore(t *testing.T) {
	repo := newRepo(t)
	list, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestInsert_AssignsSequentialIDs(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a, b := sampleRecord(1), sampleRecord(2)
	require.NoError(t, repo.Insert(ctx, a))
	require.NoError(t, repo.Insert(ctx, b))

	assert.Equal(t, domain.RecordID(1), a.ID)
	assert.Equal(t, domain.RecordID(2), b.ID)
	assert.False(t, a.CreatedAt.IsZero())
	assert.False(t, b.CreatedAt.Before(a.CreatedAt))
}

func TestRoundTrip_NewestFirst(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	const n = 5
	var inserted []*domain.Record
	for i := 0; i < n; i++ {
		rec := sampleRecord(i)
		require.NoError(t, repo.Insert(ctx, rec))
		inserted = append(inserted, rec)
	}

	list, err := repo.ListRecent(ctx, n)
	require.NoError(t, err)
	require.Len(t, list, n)
	for i, got := range list {
		want := inserted[n-1-i]
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Assessment, got.Assessment)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	}
}

func TestListRecent_Limits(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Insert(ctx, sampleRecord(i)))
	}

	list, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, "user_11", list[0].Username)

	list, err = repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, domain.DefaultHistoryLimit)

	list, err = repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, list, 12)
}

func TestInsert_NilListsStoredAsEmpty(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	rec := sampleRecord(1)
	rec.Reasons, rec.Recommendations = nil, nil
	require.NoError(t, repo.Insert(ctx, rec))

	list, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{}, list[0].Reasons)
	assert.Equal(t, []string{}, list[0].Recommendations)
}

func TestPing(t *testing.T) {
	assert.NoError(t, newRepo(t).Ping(context.Background()))
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "risk.db"), ResolvePath(dir, "risk.db"))

	missing := filepath.Join(dir, "does", "not", "exist")
	assert.Equal(t, filepath.Join(os.TempDir(), "risk.db"), ResolvePath(missing, "risk.db"))
}
