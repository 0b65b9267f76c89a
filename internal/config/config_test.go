package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enroll/internal/tracing"
)

func readWithViper(t *testing.T, path string) Config {
	t.Helper()
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return cfg
}

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))
	require.Equal(t, CacheMemory, cfg.Cache.Backend)
	require.Equal(t, 48*time.Hour, cfg.Scheduling.LeadTime)
	require.NotEmpty(t, cfg.Mentors)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, DefaultTracesFilePath(), cfg.Tracing.FilePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty db path", func(c *Config) { c.DBPath = " " }, "db_path is required"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"empty addr", func(c *Config) { c.HTTP.Addr = "" }, "http.addr is required"},
		{"negative timeout", func(c *Config) { c.HTTP.ReadTimeout = -time.Second }, "timeouts"},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis }, "cache.redis_addr"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Minute }, "cache.ttl"},
		{"blank mentor", func(c *Config) { c.Mentors = []string{"avery", " "} }, "mentors[1]"},
		{"duplicate mentor", func(c *Config) { c.Mentors = []string{"avery", "avery"} }, "duplicate mentor"},
		{"negative lead time", func(c *Config) { c.Scheduling.LeadTime = -time.Hour }, "lead_time"},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, "tracing.exporter"},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"file exporter without path", func(c *Config) {
			c.Tracing = tracing.Config{Enabled: true, Exporter: tracing.ExporterFile}
		}, "file_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AcceptsRedisAndEmptyPool(t *testing.T) {
	cfg := Defaults()
	cfg.Cache = CacheConfig{Backend: CacheRedis, RedisAddr: "localhost:6379", TTL: time.Minute}
	cfg.Mentors = nil
	require.NoError(t, Validate(cfg))
}

func TestWriteDefaultConfig_RoundTripsThroughViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".enroll", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg := readWithViper(t, path)
	defaults := Defaults()
	require.Equal(t, defaults.HTTP, cfg.HTTP)
	require.Equal(t, defaults.Cache, cfg.Cache)
	require.Equal(t, defaults.Mentors, cfg.Mentors)
	require.Equal(t, defaults.Scheduling, cfg.Scheduling)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, tracing.ExporterFile, cfg.Tracing.Exporter)
}
