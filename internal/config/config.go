// Package config provides configuration types and defaults for choicekit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/choicekit/internal/log"
	"github.com/zjrosen/choicekit/internal/presentation"
	"github.com/zjrosen/choicekit/internal/tracing"
)

// Config holds all configuration options for choicekit.
type Config struct {
	// DBPath is the SQLite database file holding profiles.
	DBPath string `mapstructure:"db_path"`

	// Format is the default output format: text, table, json, yaml, markdown.
	Format string `mapstructure:"format"`

	// MarkdownStyle is a glamour style name; empty detects the terminal.
	MarkdownStyle string `mapstructure:"markdown_style"`

	Debug   bool   `mapstructure:"debug"`
	LogPath string `mapstructure:"log_path"`

	// CatalogFiles are YAML files with extra choice sets, merged over the
	// built-in catalog in order.
	CatalogFiles []string `mapstructure:"catalog_files"`

	Cache   CacheConfig    `mapstructure:"cache"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// CacheConfig holds the profile display cache settings.
type CacheConfig struct {
	// TTL is how long a rendered profile stays cached; 0 disables caching.
	TTL time.Duration `mapstructure:"ttl"`
}

// DefaultDBPath returns ~/.config/choicekit/choicekit.db, or a relative
// path if the home directory is unavailable.
func DefaultDBPath() string {
	return filepath.Join(configHome(), "choicekit.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	return filepath.Join(configHome(), "traces", "traces.jsonl")
}

// DefaultLogPath returns the debug log location.
func DefaultLogPath() string {
	return filepath.Join(configHome(), "debug.log")
}

func configHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".choicekit"
	}
	return filepath.Join(home, ".config", "choicekit")
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()
	return Config{
		DBPath:  DefaultDBPath(),
		Format:  string(presentation.FormatText),
		LogPath: DefaultLogPath(),
		Cache:   CacheConfig{TTL: 5 * time.Minute},
		Tracing: tc,
	}
}

// Validate checks every section and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path is required"))
	}
	if _, err := presentation.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}
	if c.Debug && c.LogPath == "" {
		errs = append(errs, errors.New("log_path is required when debug is enabled"))
	}
	for i, f := range c.CatalogFiles {
		if f == "" {
			errs = append(errs, fmt.Errorf("catalog_files[%d]: path is empty", i))
		}
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL))
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTracing checks the tracing section.
func ValidateTracing(tracing tracing.Config) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Path requirements only matter when tracing is on.
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the commented config file written on first
// run.
func DefaultConfigTemplate() string {
	return `# choicekit configuration

# SQLite database holding profiles (default: ~/.config/choicekit/choicekit.db)
# db_path: /path/to/choicekit.db

# Default output format: text, table, json, yaml, markdown
format: text

# Glamour style for markdown output: dark, light, notty, ascii (default: auto)
# markdown_style: dark

# Debug logging (also enabled by --debug or CHOICEKIT_DEBUG=1)
debug: false
# log_path: ~/.config/choicekit/debug.log

# Extra choice sets, merged over the built-in catalog in order.
# catalog_files:
#   - ./sets.yaml

# Profile display cache
cache:
  ttl: 5m   # 0 disables caching

# OpenTelemetry tracing
tracing:
  enabled: false
  exporter: file          # none, file, stdout, otlp
  # file_path: ~/.config/choicekit/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
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
