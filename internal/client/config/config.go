package config

import "time"

// Config holds runtime settings for the replaycoach CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request timeout on the API client; zero keeps
//     the transport default.
//   - DatabasePath: location of the local session database.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 0
	c.DatabasePath = "session.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (optionally seeded from a .env file), a JSON config
// file, and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
