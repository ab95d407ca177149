// Package prefs persists the user's theme selection and color overrides.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tOgg1/themekit/internal/events"
	"github.com/tOgg1/themekit/internal/logging"
	"github.com/tOgg1/themekit/internal/theme"
)

const (
	CurrentVersion = 1

	defaultDebounce = 1 * time.Second
)

// ErrInvalidKind is returned by SetTheme for kinds outside theme.Kinds().
var ErrInvalidKind = errors.New("invalid theme kind")

// State is the persisted document.
type State struct {
	Version   int               `json:"version"`
	Theme     theme.Kind        `json:"theme"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// Option configures a Store.
type Option func(*Store)

// WithDebounce sets the delay between a mutation and the background save.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithDetector replaces the appearance detector used to resolve system.
func WithDetector(d Detector) Option {
	return func(s *Store) {
		if d != nil {
			s.detector = d
		}
	}
}

// WithDefaultTheme sets the kind reported before anything is persisted.
func WithDefaultTheme(kind theme.Kind) Option {
	return func(s *Store) {
		if kind.Valid() {
			s.defaultKind = kind
			s.state.Theme = kind
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store holds the current preferences. An empty path keeps everything in
// memory.
type Store struct {
	path     string
	lockPath string

	mu          sync.Mutex
	state       State
	defaultKind theme.Kind
	dirty       bool
	timer       *time.Timer
	debounce    time.Duration

	detector  Detector
	publisher *events.InMemoryPublisher
	logger    zerolog.Logger
}

func New(path string, opts ...Option) *Store {
	path = strings.TrimSpace(path)
	s := &Store{
		path:        path,
		defaultKind: theme.KindSystem,
		state: State{
			Version:   CurrentVersion,
			Theme:     theme.KindSystem,
			Overrides: make(map[string]string),
		},
		debounce:  defaultDebounce,
		detector:  EnvDetector{},
		publisher: events.NewInMemoryPublisher(),
		logger:    logging.Component("prefs"),
	}
	if path != "" {
		s.lockPath = path + ".lock"
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}

	loaded, err := s.loadLocked()
	if err != nil {
		return err
	}
	s.state = loaded
	s.dirty = false
	return nil
}

// Theme returns the selected kind, which may be system.
func (s *Store) Theme() theme.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Theme
}

// SetTheme selects kind and notifies subscribers when the value changed.
func (s *Store) SetTheme(kind theme.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	s.mu.Lock()
	previous := s.state.Theme
	if previous == kind {
		s.mu.Unlock()
		return nil
	}
	s.state.Theme = kind
	s.markDirtyLocked()
	s.mu.Unlock()

	s.logger.Info().
		Str("previous", string(previous)).
		Str("current", string(kind)).
		Msg("theme changed")

	s.publish(&events.Event{
		Type:     events.EventTypeThemeChanged,
		Previous: previous,
		Current:  kind,
	})
	return nil
}

// ResolvedTheme resolves the selected kind.
func (s *Store) ResolvedTheme() theme.Kind {
	return s.Resolve(s.Theme())
}

// Resolve maps system onto light or dark using the store's detector. Every
// other kind resolves to itself.
func (s *Store) Resolve(kind theme.Kind) theme.Kind {
	if kind != theme.KindSystem {
		return kind
	}
	if s.detector.IsDark() {
		return theme.KindDark
	}
	return theme.KindLight
}

// Overrides returns a copy of the user color overrides.
func (s *Store) Overrides() theme.Overrides {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(theme.Overrides, len(s.state.Overrides))
	for k, v := range s.state.Overrides {
		out[k] = v
	}
	return out
}

func (s *Store) SetOverride(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return errors.New("override key is required")
	}
	if value == "" {
		return s.DeleteOverride(key)
	}

	s.mu.Lock()
	if s.state.Overrides == nil {
		s.state.Overrides = make(map[string]string)
	}
	if s.state.Overrides[key] == value {
		s.mu.Unlock()
		return nil
	}
	s.state.Overrides[key] = value
	s.markDirtyLocked()
	current := s.state.Theme
	s.mu.Unlock()

	s.publish(&events.Event{
		Type:     events.EventTypeOverridesChanged,
		Previous: current,
		Current:  current,
		Key:      key,
		Value:    value,
	})
	return nil
}

func (s *Store) DeleteOverride(key string) error {
	key = strings.TrimSpace(key)

	s.mu.Lock()
	if _, ok := s.state.Overrides[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.state.Overrides, key)
	s.markDirtyLocked()
	current := s.state.Theme
	s.mu.Unlock()

	s.publish(&events.Event{
		Type:     events.EventTypeOverridesChanged,
		Previous: current,
		Current:  current,
		Key:      key,
	})
	return nil
}

// Subscribe registers fn for every change event. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn events.EventHandler, types ...events.EventType) (func(), error) {
	id := uuid.New().String()
	if err := s.publisher.Subscribe(id, events.Filter{EventTypes: types}, fn); err != nil {
		return nil, err
	}
	return func() {
		_ = s.publisher.Unsubscribe(id)
	}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	needsSave := s.dirty
	s.mu.Unlock()
	s.publisher.Close()
	if !needsSave {
		return nil
	}
	return s.SaveNow()
}

func (s *Store) SaveNow() error {
	s.mu.Lock()
	if s.path == "" {
		s.dirty = false
		s.mu.Unlock()
		return nil
	}
	state := cloneState(s.state)
	s.dirty = false
	s.mu.Unlock()

	state.Version = CurrentVersion

	if err := withFileLock(s.lockPath, func() error {
		return writeAtomicJSON(s.path, state)
	}); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) publish(event *events.Event) {
	event.ID = uuid.New().String()
	event.Timestamp = time.Now().UTC()
	s.publisher.Publish(context.Background(), event)
}

func (s *Store) markDirtyLocked() {
	s.dirty = true
	if s.path == "" {
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, func() {
			if err := s.SaveNow(); err != nil {
				s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to save preferences")
			}
		})
		return
	}
	_ = s.timer.Reset(s.debounce)
}

func (s *Store) loadLocked() (State, error) {
	var out State
	if err := withFileLock(s.lockPath, func() error {
		payload, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				out = State{Version: CurrentVersion}
				return nil
			}
			return err
		}
		if len(payload) == 0 {
			out = State{Version: CurrentVersion}
			return nil
		}
		return json.Unmarshal(payload, &out)
	}); err != nil {
		return State{}, err
	}

	if out.Version <= 0 {
		out.Version = CurrentVersion
	}
	if !out.Theme.Valid() {
		if out.Theme != "" {
			s.logger.Warn().Str("theme", string(out.Theme)).Msg("ignoring unknown persisted theme")
		}
		out.Theme = s.defaultKind
	}
	if out.Overrides == nil {
		out.Overrides = make(map[string]string)
	}
	return out, nil
}

func withFileLock(lockPath string, fn func() error) error {
	if strings.TrimSpace(lockPath) == "" {
		return fn()
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("lock %s: %w", lockPath, err)
	}
	defer func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
	}()
	return fn()
}

func writeAtomicJSON(path string, state State) error {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func cloneState(state State) State {
	out := state
	if state.Overrides != nil {
		out.Overrides = make(map[string]string, len(state.Overrides))
		for k, v := range state.Overrides {
			out.Overrides[k] = v
		}
	}
	return out
}
