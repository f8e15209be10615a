package analyses

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/account-risk/internal/application"
	domain "github.com/bryanwahyu/account-risk/internal/domain/analyses"
	"github.com/bryanwahyu/account-risk/internal/domain/risk"
	"github.com/bryanwahyu/account-risk/internal/infra/db/memory"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

type failingRepo struct{ err error }

func (f failingRepo) Insert(context.Context, *domain.Record) error { return f.err }
func (f failingRepo) ListRecent(context.Context, int) ([]*domain.Record, error) {
	return nil, f.err
}
func (f failingRepo) Ping(context.Context) error { return f.err }

type fakeArchive struct {
	mu   sync.Mutex
	keys []domain.RecordID
	err  error
}

func (a *fakeArchive) Put(_ context.Context, r *domain.Record) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, r.ID)
	return "mem://" + r.Username, nil
}

func newService(repo domain.Repository, archive domain.Archive) *Service {
	return &Service{Repo: repo, Archive: archive, Clock: application.FixedClock{T: fixedNow}}
}

func TestAnalyze_StoresAssessment(t *testing.T) {
	repo := memory.NewAnalysisRepository()
	svc := newService(repo, nil)

	rec, err := svc.Analyze(context.Background(), risk.AccountProfile{Username: "test_user"})
	require.NoError(t, err)

	assert.Equal(t, domain.RecordID(1), rec.ID)
	assert.Equal(t, "test_user", rec.Username)
	assert.Equal(t, risk.LevelLow, rec.RiskLevel)
	assert.Equal(t, fixedNow.Format(time.RFC3339Nano), rec.Timestamp)
	assert.NotEmpty(t, rec.Reasons)
	assert.NotEmpty(t, rec.Recommendations)
	assert.False(t, rec.CreatedAt.IsZero())

	list, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.Assessment, list[0].Assessment)
}

func TestAnalyze_PersistFailureReturnsNothing(t *testing.T) {
	boom := errors.New("disk full")
	archive := &fakeArchive{}
	svc := newService(failingRepo{err: boom}, archive)

	rec, err := svc.Analyze(context.Background(), risk.AccountProfile{Username: "x"})
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, archive.keys, "nothing is archived when the store rejects the record")
}

func TestAnalyze_ArchivesStoredRecord(t *testing.T) {
	archive := &fakeArchive{}
	svc := newService(memory.NewAnalysisRepository(), archive)

	rec, err := svc.Analyze(context.Background(), risk.AccountProfile{Username: "x"})
	require.NoError(t, err)
	assert.Equal(t, []domain.RecordID{rec.ID}, archive.keys)
}

func TestAnalyze_ArchiveFailureIsNotFatal(t *testing.T) {
	svc := newService(memory.NewAnalysisRepository(), &fakeArchive{err: errors.New("bucket gone")})

	rec, err := svc.Analyze(context.Background(), risk.AccountProfile{Username: "x"})
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestHistory(t *testing.T) {
	svc := newService(memory.NewAnalysisRepository(), nil)
	ctx := context.Background()

	list, err := svc.History(ctx, 5)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	for i := 0; i < 12; i++ {
		_, err := svc.Analyze(ctx, risk.AccountProfile{Username: "x"})
		require.NoError(t, err)
	}
	list, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, list, domain.DefaultHistoryLimit)
	assert.Equal(t, domain.RecordID(12), list[0].ID)

	_, err = newService(failingRepo{err: errors.New("down")}, nil).History(ctx, 3)
	assert.ErrorContains(t, err, "list analyses")
}

func TestAnalyze_ConcurrentCallsGetDistinctIDs(t *testing.T) {
	svc := newService(memory.NewAnalysisRepository(), nil)

	const n = 50
	ids := make(chan domain.RecordID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := svc.Analyze(context.Background(), risk.AccountProfile{Username: "x"})
			if assert.NoError(t, err) {
				ids <- rec.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[domain.RecordID]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
