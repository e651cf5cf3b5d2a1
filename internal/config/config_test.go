package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, Validate(cfg))
	require.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	require.Zero(t, cfg.API.Timeout, "no timeout policy by default")
	require.Equal(t, "dot", cfg.UI.Spinner)
	require.Equal(t, 50, cfg.UI.Width)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.False(t, cfg.Tracing.Enabled)
}

func TestValidateAPI(t *testing.T) {
	tests := []struct {
		name    string
		api     APIConfig
		wantErr string
	}{
		{"valid http", APIConfig{BaseURL: "http://localhost:8080"}, ""},
		{"valid https with path", APIConfig{BaseURL: "https://example.com/backend"}, ""},
		{"missing", APIConfig{}, "api.base_url is required"},
		{"bad scheme", APIConfig{BaseURL: "ftp://example.com"}, "must use http or https"},
		{"no host", APIConfig{BaseURL: "http://"}, "must include a host"},
		{"negative timeout", APIConfig{BaseURL: "http://x", Timeout: -time.Second}, "api.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPI(tt.api)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateUI(t *testing.T) {
	require.NoError(t, ValidateUI(UIConfig{}))
	require.NoError(t, ValidateUI(UIConfig{Spinner: "points", Width: MinWidth}))

	err := ValidateUI(UIConfig{Width: 10})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.width must be at least 30")

	err = ValidateUI(UIConfig{Spinner: "globe"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.spinner")
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{}))
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "stdout", SampleRate: 0.5}))

	err := ValidateTracing(TracingConfig{SampleRate: 1.5})
	require.Error(t, err)
	require.Contains(t, err.Error(), "sample_rate")

	err = ValidateTracing(TracingConfig{Exporter: "jaeger"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "tracing.exporter")

	err = ValidateTracing(TracingConfig{Enabled: true, Exporter: "otlp"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "otlp_endpoint")
}

func TestValidate_NegativeLatency(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Latency = -time.Millisecond

	require.Error(t, Validate(cfg))
}

func TestDefaultConfigTemplate_ParsesAndMatchesDefaults(t *testing.T) {
	var doc struct {
		API struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"api"`
		UI struct {
			Spinner string `yaml:"spinner"`
			Width   int    `yaml:"width"`
		} `yaml:"ui"`
		Server struct {
			Addr string `yaml:"addr"`
		} `yaml:"server"`
		Tracing struct {
			Enabled  bool   `yaml:"enabled"`
			Exporter string `yaml:"exporter"`
		} `yaml:"tracing"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(DefaultConfigTemplate()), &doc))

	defaults := Defaults()
	require.Equal(t, defaults.API.BaseURL, doc.API.BaseURL)
	require.Equal(t, defaults.UI.Spinner, doc.UI.Spinner)
	require.Equal(t, defaults.UI.Width, doc.UI.Width)
	require.Equal(t, defaults.Server.Addr, doc.Server.Addr)
	require.Equal(t, defaults.Tracing.Enabled, doc.Tracing.Enabled)
	require.Equal(t, defaults.Tracing.Exporter, doc.Tracing.Exporter)
}

func TestWriteDefaultConfig_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".signup", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestRender_RoundTrips(t *testing.T) {
	cfg := Defaults()
	cfg.API.Timeout = 5 * time.Second
	cfg.Server.RejectUsernames = []string{"taken"}

	out, err := Render(cfg)
	require.NoError(t, err)
	require.Contains(t, out, "base_url: http://localhost:8080")
	require.Contains(t, out, "timeout: 5s")
	require.Contains(t, out, "latency: 0s")
	require.Contains(t, out, "reject_usernames: [taken]")

	var back map[string]map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	require.Equal(t, "dot", back["ui"]["spinner"])
	require.Equal(t, 50, back["ui"]["width"])
}

func TestDefaultTracesFilePath(t *testing.T) {
	path := DefaultTracesFilePath()
	if path == "" {
		t.Skip("no home directory")
	}
	require.Equal(t, "traces.jsonl", filepath.Base(path))
	require.Contains(t, path, filepath.Join(".config", "signup"))
}
