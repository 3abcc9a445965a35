// Package config loads the CLI runtime settings in layers:
// defaults, then environment (with optional .env file), then an optional
// JSON file given via -c/-config, then command-line flags. Each later
// layer overrides the previous one.
package config
