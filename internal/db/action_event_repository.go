package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidActionEvent is returned when required fields are missing.
var ErrInvalidActionEvent = errors.New("invalid action event")

const defaultQueryLimit = 50

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ActionEvent is one analytics row written when an action is performed.
type ActionEvent struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	ActionID      string    `json:"action_id"`
	AnalyticsName string    `json:"analytics_name"`
	Theme         string    `json:"theme,omitempty"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
}

// ActionEventRepository persists performed actions.
type ActionEventRepository struct {
	db *DB
}

// NewActionEventRepository creates a new ActionEventRepository.
func NewActionEventRepository(db *DB) *ActionEventRepository {
	return &ActionEventRepository{db: db}
}

// Record appends an event, filling in ID and Timestamp when unset.
func (r *ActionEventRepository) Record(ctx context.Context, event *ActionEvent) error {
	if event == nil || event.ActionID == "" || event.AnalyticsName == "" || event.Status == "" {
		return ErrInvalidActionEvent
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	} else {
		event.Timestamp = event.Timestamp.UTC()
	}

	return r.db.TransactionWithRetry(ctx, RetryPolicy{}, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO action_events (
				id, timestamp, action_id, analytics_name, theme, status, error
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			event.ID,
			event.Timestamp.Format(timestampLayout),
			event.ActionID,
			event.AnalyticsName,
			nullString(event.Theme),
			event.Status,
			nullString(event.Error),
		)
		if err != nil {
			return fmt.Errorf("failed to insert action event: %w", err)
		}
		return nil
	})
}

// ActionEventQuery filters Query results.
type ActionEventQuery struct {
	ActionID string // Filter by action ID (empty = all)
	Limit    int    // Max results, newest first
}

// Query returns events newest first.
func (r *ActionEventRepository) Query(ctx context.Context, q ActionEventQuery) ([]*ActionEvent, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	query := `
		SELECT id, timestamp, action_id, analytics_name, theme, status, error
		FROM action_events
	`
	args := []any{}
	if q.ActionID != "" {
		query += " WHERE action_id = ?"
		args = append(args, q.ActionID)
	}
	query += " ORDER BY timestamp DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query action events: %w", err)
	}
	defer rows.Close()

	var out []*ActionEvent
	for rows.Next() {
		var (
			event     ActionEvent
			timestamp string
			theme     sql.NullString
			errText   sql.NullString
		)
		if err := rows.Scan(&event.ID, &timestamp, &event.ActionID, &event.AnalyticsName, &theme, &event.Status, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan action event: %w", err)
		}
		event.Timestamp, err = time.Parse(timestampLayout, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse action event timestamp: %w", err)
		}
		event.Theme = theme.String
		event.Error = errText.String
		out = append(out, &event)
	}
	return out, rows.Err()
}

// Count returns the number of recorded events.
func (r *ActionEventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM action_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count action events: %w", err)
	}
	return n, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
