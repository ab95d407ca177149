// Package config handles themekit configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tOgg1/themekit/internal/theme"
)

// Config is the root configuration structure for themekit.
type Config struct {
	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Preferences controls where the user's theme selection is persisted.
	Preferences PreferencesConfig `yaml:"preferences" mapstructure:"preferences"`

	// Appearance holds install-wide theme defaults.
	Appearance AppearanceConfig `yaml:"appearance" mapstructure:"appearance"`

	// Analytics controls the action log.
	Analytics AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// PreferencesConfig contains preference store settings.
type PreferencesConfig struct {
	// Path is the JSON preferences file (default: ~/.config/themekit/preferences.json).
	Path string `yaml:"path" mapstructure:"path"`

	// SaveDebounce delays background writes after a change.
	SaveDebounce time.Duration `yaml:"save_debounce" mapstructure:"save_debounce"`
}

// AppearanceConfig contains theme defaults.
type AppearanceConfig struct {
	// DefaultTheme is used until the user picks a theme.
	DefaultTheme string `yaml:"default_theme" mapstructure:"default_theme"`

	// Overrides are color overrides applied beneath the user's own. Brand
	// roles may be written as dotted keys or as a nested brand map.
	Overrides map[string]string `yaml:"overrides" mapstructure:"-"`
}

// AnalyticsConfig contains the action log settings.
type AnalyticsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// DatabasePath is the SQLite file (default: ~/.local/share/themekit/analytics.db).
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".config", "themekit")
	dataDir := filepath.Join(homeDir, ".local", "share", "themekit")

	return &Config{
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Preferences: PreferencesConfig{
			Path:         filepath.Join(configDir, "preferences.json"),
			SaveDebounce: time.Second,
		},
		Appearance: AppearanceConfig{
			DefaultTheme: string(theme.KindSystem),
			Overrides:    map[string]string{},
		},
		Analytics: AnalyticsConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(dataDir, "analytics.db"),
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Preferences.SaveDebounce < 0 {
		return fmt.Errorf("preferences.save_debounce must not be negative")
	}

	if _, err := theme.ParseKind(c.Appearance.DefaultTheme); err != nil {
		return fmt.Errorf("appearance.default_theme: %w", err)
	}

	if c.Analytics.Enabled && c.Analytics.DatabasePath == "" {
		return fmt.Errorf("analytics.database_path is required when analytics is enabled")
	}

	return nil
}

// DefaultTheme returns the parsed default kind. Call after Validate.
func (c *Config) DefaultTheme() theme.Kind {
	kind, err := theme.ParseKind(c.Appearance.DefaultTheme)
	if err != nil {
		return theme.KindSystem
	}
	return kind
}

// BaseOverrides returns the configured overrides with role names restored to
// their canonical spelling.
func (c *Config) BaseOverrides() theme.Overrides {
	out := make(theme.Overrides, len(c.Appearance.Overrides))
	for k, v := range c.Appearance.Overrides {
		if canonical, ok := theme.CanonicalRole(k); ok {
			k = canonical
		}
		out[k] = v
	}
	return out
}
