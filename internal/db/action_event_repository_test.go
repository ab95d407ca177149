package db

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tOgg1/themekit/internal/logging"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate(context.Background()))
	return database
}

func TestActionEventRepositoryRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := NewActionEventRepository(setupTestDB(t))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := &ActionEvent{
		ActionID:      "theme.light",
		AnalyticsName: "Change to light theme",
		Theme:         "light",
		Status:        "success",
		Timestamp:     base,
	}
	second := &ActionEvent{
		ActionID:      "theme.dark",
		AnalyticsName: "Change to dark theme",
		Theme:         "dark",
		Status:        "error",
		Error:         "boom",
		Timestamp:     base.Add(100 * time.Millisecond),
	}
	require.NoError(t, repo.Record(ctx, first))
	require.NoError(t, repo.Record(ctx, second))
	require.NotEmpty(t, first.ID)

	events, err := repo.Query(ctx, ActionEventQuery{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "theme.dark", events[0].ActionID, "newest first")
	require.Equal(t, "boom", events[0].Error)
	require.True(t, second.Timestamp.Equal(events[0].Timestamp))
	require.Equal(t, "light", events[1].Theme)
	require.Empty(t, events[1].Error)

	filtered, err := repo.Query(ctx, ActionEventQuery{ActionID: "theme.light"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, first.ID, filtered[0].ID)

	limited, err := repo.Query(ctx, ActionEventQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestActionEventRepositoryRejectsInvalid(t *testing.T) {
	repo := NewActionEventRepository(setupTestDB(t))
	ctx := context.Background()

	require.ErrorIs(t, repo.Record(ctx, nil), ErrInvalidActionEvent)
	require.ErrorIs(t, repo.Record(ctx, &ActionEvent{AnalyticsName: "x", Status: "success"}), ErrInvalidActionEvent)
	require.ErrorIs(t, repo.Record(ctx, &ActionEvent{ActionID: "x", Status: "success"}), ErrInvalidActionEvent)
	require.ErrorIs(t, repo.Record(ctx, &ActionEvent{ActionID: "x", AnalyticsName: "x"}), ErrInvalidActionEvent)
}

func TestOpenFileBackedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "analytics.db")
	database, err := Open(path)
	require.NoError(t, err)
	require.Equal(t, path, database.Path())
	require.NoError(t, database.Migrate(context.Background()))
	require.NoError(t, database.Migrate(context.Background()))
	require.NoError(t, database.Close())
}

func TestRetryPolicyRetriesOnBusy(t *testing.T) {
	attempts := 0
	err := RetryPolicy{Attempts: 3, Backoff: time.Millisecond}.run(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, attempts)
}

func TestRetryPolicyLogsBusyRetries(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.WithContext(context.Background(), zerolog.New(&buf))

	attempts := 0
	err := RetryPolicy{Attempts: 2, Backoff: time.Millisecond}.run(ctx, func() error {
		attempts++
		if attempts == 1 {
			return errors.New("database is busy")
		}
		return nil
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "database busy, retrying")
	require.Contains(t, buf.String(), `"attempt":1`)
}

func TestRetryPolicyStops(t *testing.T) {
	attempts := 0
	err := RetryPolicy{Attempts: 3, Backoff: time.Millisecond}.run(context.Background(), func() error {
		attempts++
		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, 1, attempts)

	attempts = 0
	err = RetryPolicy{Attempts: 2, Backoff: time.Millisecond}.run(context.Background(), func() error {
		attempts++
		return errors.New("SQLITE_BUSY")
	})
	require.Error(t, err)
	require.Equal(t, 2, attempts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, RetryPolicy{}.run(ctx, func() error { return nil }), context.Canceled)
}

func TestTransactionWithRetryRollsBack(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	err := database.TransactionWithRetry(ctx, RetryPolicy{Attempts: 1}, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO action_events (id, timestamp, action_id, analytics_name, status) VALUES ('a', 't', 'x', 'x', 'success')`)
		require.NoError(t, err)
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	n, err := NewActionEventRepository(database).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}
