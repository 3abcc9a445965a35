package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win over the file.
//
// Recognized variables:
//
//	REPLAYCOACH_SERVER_URL       backend base URL
//	REPLAYCOACH_REQUEST_TIMEOUT  per-request timeout, e.g. "30s"
//	REPLAYCOACH_DB_PATH          session database path
//	REPLAYCOACH_LOG_LEVEL        debug|info|warn|error
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("REPLAYCOACH_SERVER_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("REPLAYCOACH_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("REPLAYCOACH_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("REPLAYCOACH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
