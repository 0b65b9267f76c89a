package tracing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.False(t, cfg.Enabled)
	require.Equal(t, ExporterFile, cfg.Exporter)
	require.Equal(t, DefaultServiceName, cfg.ServiceName)
	require.InDelta(t, 1.0, cfg.SampleRate, 0)
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_Exporters(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none", Config{Enabled: true, Exporter: ExporterNone}, false},
		{"empty exporter", Config{Enabled: true}, false},
		{"stdout", Config{Enabled: true, Exporter: ExporterStdout}, false},
		{"file", Config{Enabled: true, Exporter: ExporterFile, FilePath: filepath.Join(t.TempDir(), "t.jsonl")}, false},
		{"file without path", Config{Enabled: true, Exporter: ExporterFile}, true},
		{"unknown", Config{Enabled: true, Exporter: "zipkin"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, p.Enabled())
			require.NoError(t, p.Shutdown(context.Background()))
		})
	}
}
