package persistence

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/texpress/app/web/enums"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		assert.NotNil(t, store)
		require.NoError(t, store.Close())
	})

	t.Run("invalid path", func(t *testing.T) {
		store, err := NewSQLiteStore("/invalid/path/that/does/not/exist/test.db")
		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("table created", func(t *testing.T) {
		store := newTestStore(t)
		var count int
		err := store.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='jobs'").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestSQLiteStore_RecordAndGet(t *testing.T) {
	store := newTestStore(t)
	started := time.Now().Truncate(time.Millisecond)

	rec := JobRecord{
		ID:         "job-1",
		Kind:       enums.JobKindPDF,
		Status:     enums.JobStatusFailed,
		StartedAt:  started,
		FinishedAt: started.Add(1500 * time.Millisecond),
		InputSize:  120,
		Details:    "! Undefined control sequence",
	}
	require.NoError(t, store.RecordJob(rec))

	got, err := store.GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, enums.JobKindPDF, got.Kind)
	assert.Equal(t, enums.JobStatusFailed, got.Status)
	assert.True(t, rec.StartedAt.Equal(got.StartedAt))
	assert.True(t, rec.FinishedAt.Equal(got.FinishedAt))
	assert.Equal(t, 120, got.InputSize)
	assert.Equal(t, "! Undefined control sequence", got.Details)

	// replace with the same id
	rec.Status = enums.JobStatusSuccess
	rec.OutputSize = 4096
	require.NoError(t, store.RecordJob(rec))
	got, err = store.GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, enums.JobStatusSuccess, got.Status)
	assert.Equal(t, int64(4096), got.OutputSize)

	_, err = store.GetJob("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ListStatsCleanup(t *testing.T) {
	store := newTestStore(t)
	base := time.Now().Add(-time.Hour)

	statuses := []enums.JobStatus{enums.JobStatusSuccess, enums.JobStatusSuccess, enums.JobStatusRejected,
		enums.JobStatusFailed, enums.JobStatusError}
	for i, st := range statuses {
		require.NoError(t, store.RecordJob(JobRecord{
			ID:         fmt.Sprintf("job-%d", i),
			Kind:       enums.JobKindLatex,
			Status:     st,
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		}))
	}

	jobs, err := store.ListJobs(3)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "job-4", jobs[0].ID, "newest first")
	assert.Equal(t, "job-3", jobs[1].ID)
	assert.Equal(t, "job-2", jobs[2].ID)

	st, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 5, Success: 2, Rejected: 1, Failed: 1, Error: 1}, st)

	removed, err := store.CleanupOldJobs(2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	jobs, err = store.ListJobs(10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-4", jobs[0].ID)
	assert.Equal(t, "job-3", jobs[1].ID)
}

func TestSQLiteStore_EmptyStats(t *testing.T) {
	store := newTestStore(t)
	st, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)

	jobs, err := store.ListJobs(10)
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
