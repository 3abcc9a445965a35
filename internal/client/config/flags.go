package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/replaycoach/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   backend base URL (default from Config)
//	-t int      request timeout in seconds, 0 keeps the transport default
//	-d string   session database path
//	-l string   log level (debug|info|warn|error)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "s", cfg.ServerBaseURL, "backend base URL")
	timeoutSec := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSec) * time.Second
}
