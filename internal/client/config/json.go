package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/replaycoach/internal/flagx"
	"github.com/dmitrijs2005/replaycoach/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds. Empty fields leave the current value
// untouched.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabasePath   string         `json:"database_path"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; without them no JSON is loaded.
// Read or unmarshal errors panic, matching the config loading contract
// (a broken explicit config file is not recoverable).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
