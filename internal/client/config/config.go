// Package config loads runtime settings for the bookstore CLI: built-in
// defaults, then an optional JSON file (-c/-config or BOOKSTORE_CLI_CONFIG),
// then command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerBaseURL: scheme://host[:port][/prefix] of the catalog HTTP API.
//   - RequestTimeout: per-request timeout of the HTTP client.
//   - CacheDSN: SQLite DSN of the local session cache.
//   - OnlineCheckInterval: how often the CLI probes /healthz.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	CacheDSN            string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.CacheDSN = "bookstore-cli.db"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig builds a Config from defaults, the JSON file and flags. Later
// sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
