package config

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// rendered mirrors Config with YAML tags and human-readable durations.
type rendered struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	UI struct {
		Spinner string `yaml:"spinner"`
		Width   int    `yaml:"width"`
	} `yaml:"ui"`
	Server struct {
		Addr            string   `yaml:"addr"`
		Latency         string   `yaml:"latency"`
		RejectUsernames []string `yaml:"reject_usernames,flow"`
	} `yaml:"server"`
	Tracing struct {
		Enabled      bool    `yaml:"enabled"`
		Exporter     string  `yaml:"exporter"`
		FilePath     string  `yaml:"file_path,omitempty"`
		OTLPEndpoint string  `yaml:"otlp_endpoint"`
		SampleRate   float64 `yaml:"sample_rate"`
		ServiceName  string  `yaml:"service_name"`
	} `yaml:"tracing"`
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return d.String()
}

// Render returns the effective configuration as YAML.
func Render(c Config) (string, error) {
	var r rendered
	r.API.BaseURL = c.API.BaseURL
	r.API.Timeout = formatDuration(c.API.Timeout)
	r.UI.Spinner = c.UI.Spinner
	r.UI.Width = c.UI.Width
	r.Server.Addr = c.Server.Addr
	r.Server.Latency = formatDuration(c.Server.Latency)
	r.Server.RejectUsernames = c.Server.RejectUsernames
	if r.Server.RejectUsernames == nil {
		r.Server.RejectUsernames = []string{}
	}
	r.Tracing.Enabled = c.Tracing.Enabled
	r.Tracing.Exporter = c.Tracing.Exporter
	r.Tracing.FilePath = c.Tracing.FilePath
	r.Tracing.OTLPEndpoint = c.Tracing.OTLPEndpoint
	r.Tracing.SampleRate = c.Tracing.SampleRate
	r.Tracing.ServiceName = c.Tracing.ServiceName

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&r); err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return buf.String(), nil
}
