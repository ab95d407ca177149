package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/appearance"
	"github.com/tOgg1/themekit/internal/config"
	"github.com/tOgg1/themekit/internal/db"
	"github.com/tOgg1/themekit/internal/logging"
	"github.com/tOgg1/themekit/internal/metrics"
	"github.com/tOgg1/themekit/internal/prefs"
)

var errAnalyticsDisabled = errors.New("analytics is disabled (set analytics.enabled in config)")

// app holds the process-wide pieces a command needs. Everything past the
// config is opened on first use.
type app struct {
	configFile  string
	logLevel    string
	logFormat   string
	showMetrics bool

	cfg      *config.Config
	reg      *prometheus.Registry
	store    *prefs.Store
	database *db.DB
	history  *db.ActionEventRepository
	registry *actions.Registry
	manager  *appearance.Manager
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, used, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       cmd.ErrOrStderr(),
		EnableCaller: cfg.Logging.EnableCaller,
	})
	if used != "" {
		logging.Component("cli").Debug().Str("config", used).Msg("loaded config file")
	} else {
		logging.Component("cli").Debug().Msg("no config file found, using defaults")
	}

	a.reg = prometheus.NewRegistry()
	return metrics.Register(a.reg)
}

// loadConfig returns the config and the path of the file it came from, empty
// when only defaults and env applied.
func (a *app) loadConfig() (*config.Config, string, error) {
	loader := config.NewLoader()
	if a.configFile != "" {
		loader.SetConfigFile(a.configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, "", err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, loader.ConfigFileUsed(), nil
}

func (a *app) prefs() (*prefs.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	store := prefs.New(a.cfg.Preferences.Path,
		prefs.WithDebounce(a.cfg.Preferences.SaveDebounce),
		prefs.WithDefaultTheme(a.cfg.DefaultTheme()),
	)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("load preferences %s: %w", store.Path(), err)
	}
	a.store = store
	return store, nil
}

// actionHistory opens the analytics database. It returns errAnalyticsDisabled
// when analytics is off.
func (a *app) actionHistory(ctx context.Context) (*db.ActionEventRepository, error) {
	if a.history != nil {
		return a.history, nil
	}
	if !a.cfg.Analytics.Enabled {
		return nil, errAnalyticsDisabled
	}

	database, err := db.Open(a.cfg.Analytics.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate analytics database: %w", err)
	}
	a.database = database
	a.history = db.NewActionEventRepository(database)
	return a.history, nil
}

func (a *app) actions(ctx context.Context) (*actions.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}

	store, err := a.prefs()
	if err != nil {
		return nil, err
	}

	var opts []actions.RegistryOption
	history, err := a.actionHistory(ctx)
	switch {
	case err == nil:
		opts = append(opts, actions.WithRecorder(history))
	case errors.Is(err, errAnalyticsDisabled):
	default:
		logging.Component("cli").Warn().Err(err).Msg("analytics unavailable, actions will not be recorded")
	}

	registry := actions.NewRegistry(store, opts...)
	if err := registry.Register(actions.RootSettingsActions...); err != nil {
		return nil, err
	}
	a.registry = registry
	return registry, nil
}

func (a *app) appearance() (*appearance.Manager, error) {
	if a.manager != nil {
		return a.manager, nil
	}

	store, err := a.prefs()
	if err != nil {
		return nil, err
	}
	manager, err := appearance.New(store, a.cfg.BaseOverrides())
	if err != nil {
		return nil, err
	}
	a.manager = manager
	return manager, nil
}

func (a *app) writeMetrics(w io.Writer) error {
	families, err := a.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

// close flushes pending preferences and closes the analytics database.
func (a *app) close() error {
	if a.manager != nil {
		a.manager.Close()
		a.manager = nil
	}

	var errs []error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("save preferences: %w", err))
		}
		a.store = nil
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			errs = append(errs, err)
		}
		a.database = nil
		a.history = nil
	}
	a.registry = nil
	return errors.Join(errs...)
}
