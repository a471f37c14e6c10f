// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the process settings. Command line flags override these.
type Config struct {
	WorldDir  string     `env:"ROOMSCRIPT_WORLD_DIR" envDefault:"assets"`
	Start     string     `env:"ROOMSCRIPT_START" envDefault:"start"`
	LogLevel  slog.Level `env:"ROOMSCRIPT_LOG_LEVEL" envDefault:"info"`
	LogFormat string     `env:"ROOMSCRIPT_LOG_FORMAT" envDefault:"text"`
	Plain     bool       `env:"ROOMSCRIPT_PLAIN"`
	// LogFile receives logs while the terminal UI is running. Empty drops them.
	LogFile   string     `env:"ROOMSCRIPT_LOG_FILE"`
}

// Load parses Config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.LogFormat != FormatText && cfg.LogFormat != FormatJSON {
		return nil, fmt.Errorf("parse env: ROOMSCRIPT_LOG_FORMAT must be %q or %q, got %q",
			FormatText, FormatJSON, cfg.LogFormat)
	}
	return cfg, nil
}
