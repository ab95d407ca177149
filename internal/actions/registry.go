package actions

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/tOgg1/themekit/internal/db"
	"github.com/tOgg1/themekit/internal/logging"
	"github.com/tOgg1/themekit/internal/metrics"
)

// Recorder persists an analytics row for a performed action.
type Recorder interface {
	Record(ctx context.Context, event *db.ActionEvent) error
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRecorder enables analytics recording.
func WithRecorder(r Recorder) RegistryOption {
	return func(reg *Registry) {
		reg.recorder = r
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(reg *Registry) {
		reg.logger = logger
	}
}

// Registry is the collection of root actions exposed to menus and search.
type Registry struct {
	store    ThemeStore
	recorder Recorder
	logger   zerolog.Logger

	mu    sync.RWMutex
	roots []*Action
	byID  map[string]*Action
}

func NewRegistry(store ThemeStore, opts ...RegistryOption) *Registry {
	r := &Registry{
		store:  store,
		logger: logging.Component("actions"),
		byID:   make(map[string]*Action),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the store actions are performed against.
func (r *Registry) Store() ThemeStore { return r.store }

// Register adds root actions and all their descendants. Nothing is added if
// any ID collides.
func (r *Registry) Register(roots ...*Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make(map[string]*Action)
	for _, root := range roots {
		var err error
		walk(root, func(a *Action) {
			if err != nil {
				return
			}
			if _, ok := r.byID[a.ID]; ok {
				err = fmt.Errorf("%w: %s", ErrDuplicateAction, a.ID)
				return
			}
			if _, ok := pending[a.ID]; ok {
				err = fmt.Errorf("%w: %s", ErrDuplicateAction, a.ID)
				return
			}
			pending[a.ID] = a
		})
		if err != nil {
			return err
		}
	}

	for id, a := range pending {
		r.byID[id] = a
	}
	r.roots = append(r.roots, roots...)
	return nil
}

// Roots returns the registered top-level actions in registration order.
func (r *Registry) Roots() []*Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Action(nil), r.roots...)
}

// All returns every registered action, parents before their children.
func (r *Registry) All() []*Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Action
	for _, root := range r.roots {
		walk(root, func(a *Action) { out = append(out, a) })
	}
	return out
}

func (r *Registry) Lookup(id string) (*Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, id)
	}
	return a, nil
}

// Search fuzzy-matches query against each action's display name and
// keywords, best match first. An empty query returns All().
func (r *Registry) Search(query string, ctx Context) []*Action {
	all := r.All()
	query = strings.TrimSpace(query)
	if query == "" {
		return all
	}

	candidates := make([]string, len(all))
	for i, a := range all {
		candidates[i] = a.DisplayName(ctx) + " " + a.Keywords
	}

	matches := fuzzy.Find(query, candidates)
	out := make([]*Action, len(matches))
	for i, match := range matches {
		out[i] = all[match.Index]
	}
	return out
}

// Perform runs the action with the given ID against the store. Analytics
// failures are logged and never returned.
func (r *Registry) Perform(ctx context.Context, id string) error {
	a, err := r.Lookup(id)
	if err != nil {
		return err
	}

	logger := logging.WithAction(r.logger, a.ID)
	if a.IsParent() {
		logger.Debug().Msg("ignoring perform on parent action")
		return fmt.Errorf("%w: %s", ErrNotPerformable, a.ID)
	}

	start := time.Now()
	err = a.Perform(r.store)
	metrics.RecordAction(a.ID, err, time.Since(start))

	status := metrics.StatusSuccess
	event := &db.ActionEvent{
		ActionID:      a.ID,
		AnalyticsName: a.AnalyticsName,
		Theme:         string(a.Target),
	}
	if err != nil {
		status = metrics.StatusError
		event.Error = err.Error()
		logger.Error().Err(err).Str("target", string(a.Target)).Msg("action failed")
	} else {
		logger.Info().Str("target", string(a.Target)).Msg("action performed")
	}
	event.Status = status

	if r.recorder != nil {
		if recErr := r.recorder.Record(logging.WithContext(ctx, logger), event); recErr != nil {
			logger.Warn().Err(recErr).Msg("failed to record action analytics")
		}
	}
	return err
}

func walk(a *Action, fn func(*Action)) {
	if a == nil {
		return
	}
	fn(a)
	for _, child := range a.Children {
		walk(child, fn)
	}
}
