package config

import "time"

// Config holds runtime settings for the FitFlow CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the FitFlow REST backend.
//   - DatabasePath: local SQLite file holding throttle state and the session.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: debug, info, warn or error. Logs go to stderr.
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.DatabasePath = "fitflow.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
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
