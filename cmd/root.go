package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/choicekit/internal/catalog"
	"github.com/zjrosen/choicekit/internal/config"
	"github.com/zjrosen/choicekit/internal/log"
	"github.com/zjrosen/choicekit/internal/presentation"
)

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply does not race the picker's input loop.
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const (
	localConfigPath = ".choicekit/config.yaml"
	envPrefix       = "CHOICEKIT"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// sets is the built-in catalog merged with the configured catalog files.
	sets *catalog.Catalog

	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "choicekit",
	Short: "Named choice sets and the profiles that use them",
	Long: `choicekit manages named choice sets (enumerations whose entries carry a
name, a stored value and a display label) and profile records whose fields
are constrained to those sets.

Sets are built in, or loaded from YAML files listed under catalog_files in
the config. Profiles are stored in a local SQLite database.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)
	// Finalizers run even when a command fails; post-run hooks do not.
	cobra.OnFinalize(teardown)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .choicekit/config.yaml, then ~/.config/choicekit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs (also CHOICEKIT_DEBUG=1)")
	rootCmd.PersistentFlags().String("db", "",
		"profile database path")
	rootCmd.PersistentFlags().StringP("format", "f", "",
		"output format: "+strings.Join(presentation.Formats(), ", "))

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("db_path", defaults.DBPath)
	viper.SetDefault("format", defaults.Format)
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("log_path", defaults.LogPath)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
			_ = config.WriteDefaultConfig(cfgFile)
		}
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .choicekit/config.yaml (current directory)
		// 2. ~/.config/choicekit/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "choicekit"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the user config
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if path := userConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
		}
		// If write fails, just continue with defaults (no config file)
	}

	cfg = config.Defaults()
	_ = viper.Unmarshal(&cfg)
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "choicekit", "config.yaml")
}

// configFileUsed returns the config file to write back to.
func configFileUsed() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return localConfigPath
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o750); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		cleanup, err := log.Init(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		logCleanup = cleanup
		log.Info(log.CatCLI, "choicekit starting", "command", cmd.CommandPath(), "version", version)
	}

	c, err := loadCatalog(cfg.CatalogFiles)
	if err != nil {
		return err
	}
	sets = c
	return nil
}

func teardown() {
	if logCleanup != nil {
		log.Reset()
		logCleanup()
		logCleanup = nil
	}
}

// loadCatalog merges catalog files over the built-in sets, in order.
func loadCatalog(files []string) (*catalog.Catalog, error) {
	c := catalog.Builtin()
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", file, err)
		}
		loaded, err := catalog.LoadYAML(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
		if err != nil {
			return nil, fmt.Errorf("catalog file: %w", err)
		}
		if err := c.Merge(loaded...); err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", file, err)
		}
	}
	return c, nil
}

func newFormatter(cmd *cobra.Command) (*presentation.Formatter, error) {
	format, err := presentation.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return presentation.NewFormatter(cmd.OutOrStdout(), format,
		presentation.WithMarkdownStyle(cfg.MarkdownStyle)), nil
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
