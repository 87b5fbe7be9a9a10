package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/mindtris/uitheme/internal/flags"
	"github.com/mindtris/uitheme/internal/tracing"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "default", cfg.Theme.Preset)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, "theme.db", filepath.Base(cfg.Storage.Path))
	require.Equal(t, int64(100), cfg.Debounce.Apply().Milliseconds())
	require.Equal(t, int64(150), cfg.Debounce.ColorChange().Milliseconds())
	require.Equal(t, flags.Defaults(), cfg.Flags)
}

func TestValidateTheme(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ThemeConfig
		wantErr string
	}{
		{name: "empty", cfg: ThemeConfig{}},
		{name: "preset", cfg: ThemeConfig{Preset: "amber", Mode: "dark"}},
		{name: "custom", cfg: ThemeConfig{Preset: "custom:ocean-blue", Mode: "system"}},
		{name: "unknown preset", cfg: ThemeConfig{Preset: "plaid"}, wantErr: "unknown preset"},
		{name: "empty custom slug", cfg: ThemeConfig{Preset: "custom:"}, wantErr: "unknown preset"},
		{name: "bad mode", cfg: ThemeConfig{Mode: "dusk"}, wantErr: "theme.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTheme(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateStorage(t *testing.T) {
	require.NoError(t, ValidateStorage(StorageConfig{}))
	require.NoError(t, ValidateStorage(StorageConfig{Backend: BackendMemory}))
	require.NoError(t, ValidateStorage(StorageConfig{Backend: BackendSQLite, Path: "/tmp/x.db"}))
	require.ErrorContains(t, ValidateStorage(StorageConfig{Backend: BackendSQLite}), "storage.path is required")
	require.ErrorContains(t, ValidateStorage(StorageConfig{Backend: "redis"}), "storage.backend")
}

func TestValidateDebounceAndWatch(t *testing.T) {
	require.NoError(t, ValidateDebounce(DebounceConfig{}))
	require.ErrorContains(t, ValidateDebounce(DebounceConfig{ApplyMS: -1}), "debounce.apply_ms")
	require.ErrorContains(t, ValidateDebounce(DebounceConfig{ColorChangeMS: -5}), "debounce.color_change_ms")
	require.ErrorContains(t, ValidateWatch(WatchConfig{DebounceMS: -1}), "watch.debounce_ms")
}

func TestValidateLog(t *testing.T) {
	require.NoError(t, ValidateLog(LogConfig{Level: "debug"}))
	require.ErrorContains(t, ValidateLog(LogConfig{Level: "trace"}), "log.level")
	require.ErrorContains(t, ValidateLog(LogConfig{Enabled: true}), "log.path is required")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		cfg     tracing.Config
		wantErr string
	}{
		{name: "disabled defaults", cfg: tracing.DefaultConfig()},
		{name: "sample rate high", cfg: tracing.Config{SampleRate: 1.5}, wantErr: "sample_rate"},
		{name: "sample rate negative", cfg: tracing.Config{SampleRate: -0.1}, wantErr: "sample_rate"},
		{name: "bad exporter", cfg: tracing.Config{Exporter: "jaeger"}, wantErr: "tracing.exporter"},
		{name: "file without path", cfg: tracing.Config{Enabled: true, Exporter: "file"}, wantErr: "file_path"},
		{name: "file path ignored when disabled", cfg: tracing.Config{Exporter: "file"}},
		{name: "otlp without endpoint", cfg: tracing.Config{Enabled: true, Exporter: "otlp"}, wantErr: "otlp_endpoint"},
		{name: "stdout", cfg: tracing.Config{Enabled: true, Exporter: "stdout", SampleRate: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfigTemplate_LoadsWithViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.Equal(t, "default", cfg.Theme.Preset)
	require.Equal(t, "system", cfg.Theme.Mode)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, 150, cfg.Debounce.ColorChangeMS)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.InDelta(t, 1.0, cfg.Tracing.SampleRate, 1e-9)
	require.Equal(t, 250, cfg.Watch.DebounceMS)
	require.True(t, cfg.Flags[flags.FlagShadowRecompute])
	require.NoError(t, ValidateTheme(cfg.Theme))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".uitheme", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
