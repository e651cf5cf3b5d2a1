// Package config provides configuration types, defaults and validation for signup.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/signup/internal/log"
)

// Config holds all configuration options for signup.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Server  ServerConfig  `mapstructure:"server"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// APIConfig points the client at a registration backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"` // e.g. http://localhost:8080
	Timeout time.Duration `mapstructure:"timeout"`  // 0 = no timeout
}

// UIConfig holds user interface options.
type UIConfig struct {
	Spinner string `mapstructure:"spinner"` // "dot" (default), "line", "minidot", "points"
	Width   int    `mapstructure:"width"`   // form width in cells
}

// ServerConfig configures the development registration server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Latency         time.Duration `mapstructure:"latency"`          // artificial delay per request
	RejectUsernames []string      `mapstructure:"reject_usernames"` // always answered with 400
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // "none", "file" (default), "stdout", "otlp"
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
	ServiceName  string  `mapstructure:"service_name"`
}

// Spinner styles accepted in UIConfig.Spinner.
var Spinners = []string{"dot", "line", "minidot", "points"}

// MinWidth is the narrowest form that still fits the button row.
const MinWidth = 30

// DefaultTracesFilePath returns ~/.config/signup/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "signup", "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
		},
		UI: UIConfig{
			Spinner: "dot",
			Width:   50,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "signup",
		},
	}
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	if err := ValidateAPI(c.API); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if c.Server.Latency < 0 {
		return fmt.Errorf("server.latency must not be negative, got %s", c.Server.Latency)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateAPI checks the backend settings.
func ValidateAPI(api APIConfig) error {
	if api.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(api.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", api.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url must include a host, got %q", api.BaseURL)
	}
	if api.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative, got %s", api.Timeout)
	}
	return nil
}

// ValidateUI checks the presentation settings. Empty values use defaults.
func ValidateUI(ui UIConfig) error {
	if ui.Width != 0 && ui.Width < MinWidth {
		return fmt.Errorf("ui.width must be at least %d, got %d", MinWidth, ui.Width)
	}
	if ui.Spinner == "" {
		return nil
	}
	for _, s := range Spinners {
		if ui.Spinner == s {
			return nil
		}
	}
	return fmt.Errorf("ui.spinner must be one of %v, got %q", Spinners, ui.Spinner)
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
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

	// OTLPEndpoint is only required when it would be used
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# signup configuration

# Registration backend
api:
  base_url: http://localhost:8080   # POST {base_url}/api/1.0/users
  # timeout: 10s                    # per-request timeout (default: none)

# UI settings
ui:
  spinner: dot   # dot, line, minidot, points
  width: 50      # form width (minimum 30)

# Development server ('signup serve')
server:
  addr: ":8080"
  # latency: 750ms           # delay every response so the spinner is visible
  # reject_usernames:        # always answer these with 400
  #   - taken

# Distributed tracing of registration calls
tracing:
  enabled: false
  exporter: file             # none, file, stdout, otlp
  # file_path: ~/.config/signup/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file with default settings.
// Creates parent directories if needed.
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
