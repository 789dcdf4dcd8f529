// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Taskify terminal client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend API (scheme://host:port).
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabaseFile: path of the local SQLite file holding session data.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabaseFile   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseFile = "taskify.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
