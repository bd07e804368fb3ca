package state

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore returns a store backed by sqlmock, bypassing Open and migrations.
func mockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store := NewSQLiteStore(nil)
	store.db = db
	t.Cleanup(func() { _ = db.Close() })
	return store, mock
}

func TestSQLiteStore_RecordRunExecError(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)

	err := store.RecordRun(context.Background(), &Run{Root: "/a", Profile: "strict"})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to record run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_RecordRunArgs(t *testing.T) {
	store, mock := mockStore(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO runs").
		WithArgs("fixed", "/a", "strict", started, int64(250), 3, 2, 1, 0, 0, 4, 1, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	run := &Run{
		ID: "fixed", Root: "/a", Profile: "strict", StartedAt: started,
		Duration: 250 * time.Millisecond, Files: 3, Edges: 2, Entities: 1,
		Diagnostics: 4, Errors: 1, Warnings: 2,
	}
	require.NoError(t, store.RecordRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ListRunsErrors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		store, mock := mockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM runs").WillReturnError(assert.AnError)

		_, err := store.ListRuns(context.Background(), 5)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to list runs")
	})

	t.Run("scan", func(t *testing.T) {
		store, mock := mockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM runs").
			WithArgs(-1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("only-one-column"))

		_, err := store.ListRuns(context.Background(), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to scan run")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLiteStore_GetRunQueryError(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM runs WHERE id").
		WithArgs("abc").
		WillReturnError(assert.AnError)

	_, err := store.GetRun(context.Background(), "abc")
	require.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrRunNotFound)
}

func TestSQLiteStore_CloseError(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectClose().WillReturnError(assert.AnError)

	assert.ErrorIs(t, store.Close(), assert.AnError)
	assert.NoError(t, store.Close(), "second close is a no-op")
}
