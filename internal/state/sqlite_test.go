package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(context.Background(), ":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenMigrates(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestSQLiteStore_OpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(context.Background(), path))
	assert.Equal(t, path, store.Path())
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close is idempotent")

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(context.Background(), path), "migrations rerun cleanly")
	require.NoError(t, reopened.Close())
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	assert.ErrorIs(t, store.RecordRun(ctx, &Run{}), ErrNotOpen)
	_, err := store.ListRuns(ctx, 0)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = store.GetRun(ctx, "x")
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestSQLiteStore_RecordAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	run := &Run{
		Root:        "/src/app",
		Profile:     "strict",
		StartedAt:   started,
		Duration:    1500 * time.Millisecond,
		Files:       42,
		Edges:       77,
		Entities:    12,
		Cycles:      1,
		Orphans:     3,
		Diagnostics: 9,
		Errors:      2,
		Warnings:    5,
	}
	require.NoError(t, store.RecordRun(ctx, run))
	require.NotEmpty(t, run.ID, "id is assigned")

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Root, got.Root)
	assert.Equal(t, run.Profile, got.Profile)
	assert.True(t, started.Equal(got.StartedAt))
	assert.Equal(t, run.Duration, got.Duration)
	assert.Equal(t, 42, got.Files)
	assert.Equal(t, 77, got.Edges)
	assert.Equal(t, 9, got.Diagnostics)
	assert.Equal(t, 2, got.Errors)

	_, err = store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 3 {
		require.NoError(t, store.RecordRun(ctx, &Run{
			Root:      "/src/app",
			Profile:   "recommended",
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Files:     i,
		}))
	}

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 2, all[0].Files, "newest first")
	assert.Equal(t, 0, all[2].Files)

	limited, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSQLiteStore_DuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordRun(ctx, &Run{ID: "fixed", Root: "/a", Profile: "strict"}))
	assert.Error(t, store.RecordRun(ctx, &Run{ID: "fixed", Root: "/a", Profile: "strict"}))
}
