package config

import "time"

// Config holds runtime settings for the portal CLI.
//
// Fields:
//   - BaseURL: root URL of the portal backend API.
//   - RequestTimeout: upper bound for one backend round trip.
//   - StorageDriver: key/value backend for the session token (sqlite, redis, memory).
//   - StorageDSN: SQLite file or Redis URL, depending on StorageDriver.
//   - LogLevel, LogFormat: debug|info|warn|error and text|json.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StorageDriver  string
	StorageDSN     string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.StorageDriver = "sqlite"
	c.StorageDSN = "ican.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
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
