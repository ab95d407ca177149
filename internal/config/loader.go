package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "THEMEKIT"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// Load loads configuration with proper precedence:
// defaults < config file < env vars
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Viper splits dotted map keys, so overrides are read raw and flattened.
	if err := l.loadOverrides(cfg); err != nil {
		return nil, err
	}

	// Unmarshal does not see env values for map-typed keys.
	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	expandPaths(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// expandTilde expands ~ to the user's home directory.
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func expandPaths(cfg *Config) {
	cfg.Preferences.Path = expandTilde(cfg.Preferences.Path)
	cfg.Analytics.DatabasePath = expandTilde(cfg.Analytics.DatabasePath)
}

// setupViper configures Viper with defaults and environment bindings.
func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		v.AddConfigPath(filepath.Join(xdgConfig, "themekit"))
	}
	if homeDir, _ := os.UserHomeDir(); homeDir != "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "themekit"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)
	bindEnvVars(v)
}

// setDefaults sets all default values in Viper.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.enable_caller", cfg.Logging.EnableCaller)

	v.SetDefault("preferences.path", cfg.Preferences.Path)
	v.SetDefault("preferences.save_debounce", cfg.Preferences.SaveDebounce)

	v.SetDefault("appearance.default_theme", cfg.Appearance.DefaultTheme)

	v.SetDefault("analytics.enabled", cfg.Analytics.Enabled)
	v.SetDefault("analytics.database_path", cfg.Analytics.DatabasePath)
}

// loadConfigFile reads the config file. A missing file is only an error when
// one was set explicitly.
func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && l.configFile == "" {
			return nil
		}
		return err
	}
	return nil
}

// ConfigFileUsed returns the config file that was loaded.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetConfigFile(path)
	return loader.Load()
}

// bindEnvVars binds THEMEKIT_* variables for every scalar key.
func bindEnvVars(v *viper.Viper) {
	envBindings := []string{
		"logging.level",
		"logging.format",
		"logging.enable_caller",
		"preferences.path",
		"preferences.save_debounce",
		"appearance.default_theme",
		"analytics.enabled",
		"analytics.database_path",
	}

	for _, key := range envBindings {
		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		_ = v.BindEnv(key, envVar)
	}
}

// loadOverrides reads appearance.overrides from the config file. Nested maps
// become dotted keys, so brand: {red: ...} and brand.red: ... are equivalent.
func (l *Loader) loadOverrides(cfg *Config) error {
	raw := l.v.Get("appearance.overrides")
	if raw == nil {
		return nil
	}
	entries, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("appearance.overrides must be a map of role to color, got %T", raw)
	}

	flat := make(map[string]string, len(entries))
	flattenOverrides("", entries, flat)
	if cfg.Appearance.Overrides == nil {
		cfg.Appearance.Overrides = make(map[string]string, len(flat))
	}
	for k, v := range flat {
		cfg.Appearance.Overrides[k] = v
	}
	return nil
}

func flattenOverrides(prefix string, entries map[string]any, out map[string]string) {
	for k, v := range entries {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case nil:
		case map[string]any:
			flattenOverrides(key, value, out)
		case string:
			out[key] = value
		default:
			out[key] = fmt.Sprint(value)
		}
	}
}

// applyEnvOverrides merges THEMEKIT_APPEARANCE_OVERRIDES, a comma separated
// list of role=color pairs, over the file's overrides.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	raw := strings.TrimSpace(os.Getenv(envPrefix + "_APPEARANCE_OVERRIDES"))
	if raw == "" {
		return nil
	}

	pairs, err := ParseOverridePairs(strings.Split(raw, ","))
	if err != nil {
		return fmt.Errorf("%s_APPEARANCE_OVERRIDES: %w", envPrefix, err)
	}
	if cfg.Appearance.Overrides == nil {
		cfg.Appearance.Overrides = make(map[string]string, len(pairs))
	}
	for k, v := range pairs {
		cfg.Appearance.Overrides[k] = v
	}
	return nil
}

// ParseOverridePairs parses role=color entries. Blank entries are skipped.
func ParseOverridePairs(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !ok || key == "" || value == "" {
			return nil, fmt.Errorf("invalid override %q, want role=color", entry)
		}
		out[key] = value
	}
	return out, nil
}
