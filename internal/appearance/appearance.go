// Package appearance keeps the active theme record in sync with the
// preference store.
package appearance

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tOgg1/themekit/internal/events"
	"github.com/tOgg1/themekit/internal/logging"
	"github.com/tOgg1/themekit/internal/metrics"
	"github.com/tOgg1/themekit/internal/theme"
)

// Store is the preference surface the manager reads.
type Store interface {
	Theme() theme.Kind
	ResolvedTheme() theme.Kind
	Overrides() theme.Overrides
	Subscribe(fn events.EventHandler, types ...events.EventType) (func(), error)
}

// Listener receives every rebuilt record.
type Listener func(kind theme.Kind, t theme.Theme)

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager rebuilds the theme whenever the store changes.
type Manager struct {
	store         Store
	baseOverrides theme.Overrides
	logger        zerolog.Logger

	mu          sync.RWMutex
	kind        theme.Kind
	current     theme.Theme
	listeners   []Listener
	unsubscribe func()
}

// New builds the active theme immediately and subscribes to the store.
// baseOverrides come from configuration; user overrides from the store win
// over them.
func New(store Store, baseOverrides theme.Overrides, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:         store,
		baseOverrides: baseOverrides.Merge(nil),
		logger:        logging.Component("appearance"),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.rebuild()

	unsubscribe, err := store.Subscribe(m.handle)
	if err != nil {
		return nil, err
	}
	m.unsubscribe = unsubscribe
	return m, nil
}

// Current returns the active record.
func (m *Manager) Current() theme.Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Kind returns the concrete kind the active record was built from.
func (m *Manager) Kind() theme.Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.kind
}

// OnChange registers fn for every rebuild.
func (m *Manager) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Refresh rebuilds without waiting for a store event, e.g. after the system
// appearance changed.
func (m *Manager) Refresh() {
	m.rebuild()
}

// Close stops listening to the store.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Manager) handle(event *events.Event) {
	if event.Type == events.EventTypeThemeChanged {
		metrics.RecordThemeChange(string(event.Previous), string(event.Current))
	}
	m.rebuild()
}

func (m *Manager) rebuild() {
	kind := m.store.ResolvedTheme()
	overrides := m.baseOverrides.Merge(m.store.Overrides())

	built, err := theme.Build(kind, overrides)
	if err != nil {
		// A resolved kind is always buildable; keep the previous record.
		m.logger.Error().Err(err).Str("kind", string(kind)).Msg("failed to build theme")
		return
	}
	metrics.RecordThemeBuild(string(kind))

	m.mu.Lock()
	m.kind = kind
	m.current = built
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	m.logger.Debug().Str("kind", string(kind)).Int("overrides", len(overrides)).Msg("theme rebuilt")
	for _, fn := range listeners {
		fn(kind, built)
	}
}
