// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nathoo/roomscript/config"
)

// Setup configures the default slog logger from cfg. Logs go to stderr so
// they never mix with game output on stdout.
func Setup(cfg *config.Config) *slog.Logger {
	return setup(cfg, os.Stderr)
}

// SetupTUI configures logging for the terminal UI, which owns stdout and
// stderr. Logs are appended to cfg.LogFile, or discarded when it is empty.
// The returned func closes the file.
func SetupTUI(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" {
		logger := slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return logger, func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return setup(cfg, f), f.Close, nil
}

func setup(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == config.FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithError adds err to the logger context.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
