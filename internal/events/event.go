package events

import (
	"time"

	"github.com/tOgg1/themekit/internal/theme"
)

// EventType categorizes preference change events.
type EventType string

const (
	EventTypeThemeChanged     EventType = "theme.changed"
	EventTypeOverridesChanged EventType = "overrides.changed"
)

// Event describes a single preference mutation.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time

	// Previous and Current are set for theme.changed.
	Previous theme.Kind
	Current  theme.Kind

	// Key is the override role touched by overrides.changed; Value is empty
	// when the override was removed.
	Key   string
	Value string
}
