// Package config provides configuration types and defaults for the activities service.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mergington/activities/internal/log"
)

// Config holds all configuration options for the activities service.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Seed    SeedConfig    `mapstructure:"seed"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Host string `mapstructure:"host"` // Listen host (default: "localhost")
	Port int    `mapstructure:"port"` // Listen port, 0 picks a free port (default: 8000)
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logger options.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "text" (default) or "json"
	File   string `mapstructure:"file"`   // Optional log file, empty logs to stderr
}

// SeedConfig controls where the initial activity data comes from.
type SeedConfig struct {
	// File is an optional activities YAML loaded instead of the bundled
	// reference data.
	File string `mapstructure:"file"`
}

// CacheConfig holds activity listing snapshot cache options.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"` // Cache listing snapshots (default: true)
	TTL     time.Duration `mapstructure:"ttl"`     // Snapshot lifetime (default: 5s)
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/activities/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// MetricsConfig holds Prometheus metrics options.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"` // Serve GET /metrics (default: true)
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/activities/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "activities", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the full configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func Validate(cfg Config) error {
	if err := ValidateServer(cfg.Server); err != nil {
		return err
	}
	if err := ValidateLogging(cfg.Logging); err != nil {
		return err
	}
	if err := ValidateCache(cfg.Cache); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateServer checks server configuration for errors.
func ValidateServer(server ServerConfig) error {
	if server.Port < 0 || server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", server.Port)
	}
	return nil
}

// ValidateLogging checks logging configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateLogging(logging LoggingConfig) error {
	if logging.Level != "" {
		switch logging.Level {
		case "debug", "info", "warn", "error":
			// Valid
		default:
			return fmt.Errorf("logging.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", logging.Level)
		}
	}

	if logging.Format != "" {
		switch logging.Format {
		case "text", "json":
			// Valid
		default:
			return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", logging.Format)
		}
	}

	return nil
}

// ValidateCache checks cache configuration for errors.
func ValidateCache(cache CacheConfig) error {
	// Zero means "use the default TTL", so only reject negatives
	if cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cache.TTL)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// An empty file_path falls back to DefaultTracesFilePath at runtime, so
	// only the otlp exporter has a hard endpoint requirement
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Activities Service Configuration

# HTTP server settings
server:
  host: localhost   # Listen host
  port: 8000        # Listen port (0 picks a free port)

# Logging settings
logging:
  level: info       # debug, info, warn, or error
  format: text      # "text" (default) or "json"
  # file: /var/log/activities.log  # Optional log file (default: stderr)

# Seed data
# The server ships with the Mergington High School reference activities.
# Point seed.file at a YAML file to serve a different set:
# seed:
#   file: /etc/activities/activities.yaml
#
# Seed file format:
#   activities:
#     - name: Chess Club
#       description: Learn strategies and compete in chess tournaments
#       schedule: Fridays, 3:30 PM - 5:00 PM
#       max_participants: 12
#       participants:
#         - michael@mergington.edu

# Activity listing snapshot cache
cache:
  enabled: true     # Cache listing snapshots between roster changes
  ttl: 5s           # Snapshot lifetime

# Distributed tracing
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/activities/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
#
# Example: send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1  # Sample 10% of traces

# Prometheus metrics on GET /metrics
metrics:
  enabled: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
