package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/tOgg1/themekit/internal/logging"
)

// RetryPolicy bounds how often a busy-database failure is retried.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetryPolicy is used when a zero policy is passed.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 50 * time.Millisecond}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts <= 0 {
		p.Attempts = DefaultRetryPolicy.Attempts
	}
	if p.Backoff <= 0 {
		p.Backoff = DefaultRetryPolicy.Backoff
	}
	return p
}

// TransactionWithRetry runs fn in a transaction, retrying while SQLite
// reports the database as busy.
func (db *DB) TransactionWithRetry(ctx context.Context, policy RetryPolicy, fn func(*sql.Tx) error) error {
	return policy.run(ctx, func() error {
		return db.Transaction(ctx, fn)
	})
}

// run doubles the backoff after each busy failure.
func (p RetryPolicy) run(ctx context.Context, fn func() error) error {
	p = p.normalized()
	backoff := p.Backoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !isBusy(err) || attempt >= p.Attempts {
			return err
		}

		logging.FromContext(ctx).Warn().
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("database busy, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func isBusy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	message := strings.ToLower(err.Error())
	for _, marker := range []string{"database is locked", "database is busy", "sqlite_busy"} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
