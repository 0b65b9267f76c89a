// Package config provides configuration types and defaults for enroll.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/enroll/internal/log"
	"github.com/zjrosen/enroll/internal/tracing"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all configuration options for enroll.
type Config struct {
	DBPath     string           `mapstructure:"db_path"`
	LogFile    string           `mapstructure:"log_file"`
	LogLevel   string           `mapstructure:"log_level"`
	HTTP       HTTPConfig       `mapstructure:"http"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Mentors    []string         `mapstructure:"mentors"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig selects where mentor matches are cached.
type CacheConfig struct {
	Backend   string        `mapstructure:"backend"` // "memory" (default) or "redis"
	TTL       time.Duration `mapstructure:"ttl"`
	RedisAddr string        `mapstructure:"redis_addr"` // host:port or redis:// URL
}

// SchedulingConfig configures the produce training scheduler.
type SchedulingConfig struct {
	// LeadTime is how far ahead a new session is booked.
	LeadTime time.Duration `mapstructure:"lead_time"`
}

// ConfigDir returns ~/.config/enroll, or .enroll if the home directory is unknown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".enroll"
	}
	return filepath.Join(home, ".config", "enroll")
}

// DefaultDBPath returns the default SQLite database location.
func DefaultDBPath() string {
	return filepath.Join(ConfigDir(), "enroll.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	return filepath.Join(ConfigDir(), "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		DBPath:   DefaultDBPath(),
		LogLevel: "info",
		HTTP: HTTPConfig{
			Addr:            "127.0.0.1:8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Backend: CacheMemory,
			TTL:     10 * time.Minute,
		},
		Mentors: []string{"avery", "jordan", "morgan"},
		Scheduling: SchedulingConfig{
			LeadTime: 48 * time.Hour,
		},
		Tracing: tc,
	}
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if err := ValidateHTTP(c.HTTP); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	if err := ValidateMentors(c.Mentors); err != nil {
		return err
	}
	if c.Scheduling.LeadTime < 0 {
		return fmt.Errorf("scheduling.lead_time must not be negative, got %s", c.Scheduling.LeadTime)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateHTTP checks the http section.
func ValidateHTTP(h HTTPConfig) error {
	if strings.TrimSpace(h.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	if h.ReadTimeout < 0 || h.WriteTimeout < 0 || h.ShutdownTimeout < 0 {
		return fmt.Errorf("http timeouts must not be negative")
	}
	return nil
}

// ValidateCache checks the cache section.
func ValidateCache(c CacheConfig) error {
	switch c.Backend {
	case "", CacheMemory:
	case CacheRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("cache.redis_addr is required when cache.backend is %q", CacheRedis)
		}
	default:
		return fmt.Errorf("cache.backend must be %q or %q, got %q", CacheMemory, CacheRedis, c.Backend)
	}
	if c.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.TTL)
	}
	return nil
}

// ValidateMentors checks that mentor names are non-blank and unique.
// An empty pool is valid; inventory enrollments then fail.
func ValidateMentors(mentors []string) error {
	seen := make(map[string]bool, len(mentors))
	for i, m := range mentors {
		m = strings.TrimSpace(m)
		if m == "" {
			return fmt.Errorf("mentors[%d]: name is required", i)
		}
		if seen[m] {
			return fmt.Errorf("mentors[%d]: duplicate mentor %q", i, m)
		}
		seen[m] = true
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t tracing.Config) error {
	exporters := []string{"", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP}
	if !slices.Contains(exporters, t.Exporter) {
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	if t.Enabled && t.Exporter == tracing.ExporterFile && t.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required for the file exporter")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# enroll configuration

# SQLite database backing the local collaborator services
# db_path: ~/.config/enroll/enroll.db

# Debug log file (written when --debug or ENROLL_DEBUG is set; stderr otherwise)
# log_file: /tmp/enroll.log
log_level: info

# HTTP API served by 'enroll serve'
http:
  addr: 127.0.0.1:8080
  read_timeout: 10s
  write_timeout: 10s
  shutdown_timeout: 5s

# Mentor match cache
cache:
  backend: memory     # "memory" or "redis"
  ttl: 10m
  # redis_addr: localhost:6379

# Mentors available to inventory management trainees
mentors:
  - avery
  - jordan
  - morgan

# Produce training sessions are booked this far ahead
scheduling:
  lead_time: 48h

# OpenTelemetry tracing of enrollments
tracing:
  enabled: false
  exporter: file      # "none", "file", "stdout", or "otlp"
  # file_path: ~/.config/enroll/traces/traces.jsonl
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
