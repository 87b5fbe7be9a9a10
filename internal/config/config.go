// Package config provides configuration types, defaults, and persistence for uitheme.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mindtris/uitheme/internal/flags"
	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/theme"
	"github.com/mindtris/uitheme/internal/tracing"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// ThemeConfig is the startup selection. Preset may be a preset key or
// "custom:<slug>"; the persisted selection wins when one exists.
type ThemeConfig struct {
	Preset string `mapstructure:"preset"`
	Mode   string `mapstructure:"mode"` // light, dark or system
}

// StorageConfig selects where theme state is persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// DebounceConfig holds the debounce windows in milliseconds.
type DebounceConfig struct {
	ApplyMS       int `mapstructure:"apply_ms"`
	ColorChangeMS int `mapstructure:"color_change_ms"`
}

// Apply returns the theme switch window.
func (d DebounceConfig) Apply() time.Duration {
	return time.Duration(d.ApplyMS) * time.Millisecond
}

// ColorChange returns the per-variable edit window.
func (d DebounceConfig) ColorChange() time.Duration {
	return time.Duration(d.ColorChangeMS) * time.Millisecond
}

// LogConfig controls the file logger.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Level   string `mapstructure:"level"`
	Path    string `mapstructure:"path"`
}

// WatchConfig configures `uitheme watch`.
type WatchConfig struct {
	Path       string `mapstructure:"path"`
	DebounceMS int    `mapstructure:"debounce_ms"`
}

// Config holds all uitheme configuration.
type Config struct {
	Theme    ThemeConfig     `mapstructure:"theme"`
	Storage  StorageConfig   `mapstructure:"storage"`
	Debounce DebounceConfig  `mapstructure:"debounce"`
	Log      LogConfig       `mapstructure:"log"`
	Tracing  tracing.Config  `mapstructure:"tracing"`
	Watch    WatchConfig     `mapstructure:"watch"`
	Flags    map[string]bool `mapstructure:"flags"`
}

// DefaultDataDir returns the directory holding the store, log and traces.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".uitheme"
	}
	return filepath.Join(home, ".config", "uitheme")
}

// Defaults returns the default configuration.
func Defaults() Config {
	dir := DefaultDataDir()
	tc := tracing.DefaultConfig()
	tc.FilePath = filepath.Join(dir, "traces", "traces.jsonl")
	return Config{
		Theme: ThemeConfig{
			Preset: theme.DefaultPreset,
			Mode:   "system",
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dir, "theme.db"),
		},
		Debounce: DebounceConfig{
			ApplyMS:       100,
			ColorChangeMS: 150,
		},
		Log: LogConfig{
			Level: "info",
			Path:  filepath.Join(dir, "debug.log"),
		},
		Tracing: tc,
		Watch: WatchConfig{
			DebounceMS: 250,
		},
		Flags: flags.Defaults(),
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateStorage(c.Storage); err != nil {
		return err
	}
	if err := ValidateDebounce(c.Debounce); err != nil {
		return err
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return ValidateWatch(c.Watch)
}

// ValidateTheme checks the startup selection.
func ValidateTheme(t ThemeConfig) error {
	if t.Preset != "" {
		sel := theme.ParseSelection(t.Preset)
		if _, ok := theme.LookupPreset(sel.Preset); !sel.IsCustom() && !ok {
			return fmt.Errorf("theme.preset: unknown preset %q", t.Preset)
		}
	}
	switch t.Mode {
	case "", "light", "dark", "system":
		return nil
	default:
		return fmt.Errorf("theme.mode must be \"light\", \"dark\", or \"system\", got %q", t.Mode)
	}
}

// ValidateStorage checks the backend and its path.
func ValidateStorage(s StorageConfig) error {
	switch s.Backend {
	case "", BackendMemory:
		return nil
	case BackendSQLite:
		if s.Path == "" {
			return fmt.Errorf("storage.path is required when backend is %q", BackendSQLite)
		}
		return nil
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendMemory, BackendSQLite, s.Backend)
	}
}

// ValidateDebounce rejects negative windows. Zero uses the built-in default.
func ValidateDebounce(d DebounceConfig) error {
	if d.ApplyMS < 0 {
		return fmt.Errorf("debounce.apply_ms must be >= 0, got %d", d.ApplyMS)
	}
	if d.ColorChangeMS < 0 {
		return fmt.Errorf("debounce.color_change_ms must be >= 0, got %d", d.ColorChangeMS)
	}
	return nil
}

// ValidateLog checks the level name and the path when logging is enabled.
func ValidateLog(l LogConfig) error {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", l.Level)
	}
	if l.Enabled && l.Path == "" {
		return fmt.Errorf("log.path is required when logging is enabled")
	}
	return nil
}

// ValidateTracing validates tracing configuration.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}

	if t.Exporter != "" && !slices.Contains(tracing.Exporters(), t.Exporter) {
		return fmt.Errorf("tracing.exporter must be one of %s, got %q", strings.Join(tracing.Exporters(), ", "), t.Exporter)
	}

	// Path requirements only matter when tracing is on.
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is %q", tracing.ExporterFile)
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is %q", tracing.ExporterOTLP)
		}
	}
	return nil
}

// ValidateWatch rejects a negative debounce window.
func ValidateWatch(w WatchConfig) error {
	if w.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must be >= 0, got %d", w.DebounceMS)
	}
	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# uitheme configuration

# Startup theme. The persisted selection takes precedence once one exists.
theme:
  # Preset key (default, amber, blue, rose, violet) or custom:<slug>
  preset: default
  # light, dark, or system (follows the terminal background)
  mode: system

# Where the selection and custom theme are stored.
storage:
  # sqlite or memory
  backend: sqlite
  # path: ~/.config/uitheme/theme.db

# Debounce windows in milliseconds.
debounce:
  apply_ms: 100
  color_change_ms: 150

# Debug logging.
log:
  enabled: false
  level: info
  # path: ~/.config/uitheme/debug.log

# OpenTelemetry tracing of theme applications.
tracing:
  enabled: false
  # none, file, stdout, or otlp
  exporter: file
  # file_path: ~/.config/uitheme/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# ` + "`uitheme watch`" + ` settings.
watch:
  # path: ./theme.css
  debounce_ms: 250

# Feature flags.
flags:
  resolve-cache: true
  shadow-recompute: true
  sqlite-store: true
`
}

// WriteDefaultConfig creates a config file with default settings.
// Creates parent directories if they don't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
