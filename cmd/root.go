package cmd

import (
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mindtris/uitheme/internal/config"
	"github.com/mindtris/uitheme/internal/log"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "uitheme",
	Short: "Apply, edit and persist UI color themes",
	Long: `uitheme resolves built-in presets, imported CSS and saved custom themes
into a complete set of CSS custom properties for light and dark mode.

The active selection and the saved custom theme are persisted between runs.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/uitheme/config.yaml)")
	rootCmd.PersistentFlags().String("mode", "",
		"mode override: light, dark or system")
	rootCmd.PersistentFlags().String("storage", "",
		"storage backend override: sqlite or memory")
	rootCmd.PersistentFlags().Bool("debug", false,
		"enable debug logging to the configured log path")

	_ = viper.BindPFlag("theme.mode", rootCmd.PersistentFlags().Lookup("mode"))
	_ = viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("storage"))
	_ = viper.BindPFlag("log.enabled", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("theme.preset", defaults.Theme.Preset)
	viper.SetDefault("theme.mode", defaults.Theme.Mode)
	viper.SetDefault("storage.backend", defaults.Storage.Backend)
	viper.SetDefault("storage.path", defaults.Storage.Path)
	viper.SetDefault("debounce.apply_ms", defaults.Debounce.ApplyMS)
	viper.SetDefault("debounce.color_change_ms", defaults.Debounce.ColorChangeMS)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
	viper.SetDefault("flags", defaults.Flags)

	viper.SetEnvPrefix("UITHEME")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .uitheme/config.yaml (current directory)
		// 2. ~/.config/uitheme/config.yaml (user config)
		if _, err := os.Stat(".uitheme/config.yaml"); err == nil {
			viper.SetConfigFile(".uitheme/config.yaml")
		} else {
			viper.AddConfigPath(config.DefaultDataDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere: create the user default.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := filepath.Join(config.DefaultDataDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
	log.Debug(log.CatConfig, "Loaded config", "path", viper.ConfigFileUsed())
}

// configFilePath is where config writes go: the loaded file, or the user
// default when none was loaded.
func configFilePath() string {
	if p := viper.ConfigFileUsed(); p != "" {
		return p
	}
	return filepath.Join(config.DefaultDataDir(), "config.yaml")
}

// prefersDark asks the terminal for its background. Called once before any
// output is written so the OSC 11 reply cannot interleave with it.
func prefersDark() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
