// Package log wraps log/slog with the demo's level and format knobs.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a thin wrapper so packages depend on this instead of slog
// directly.
type Logger struct {
	*slog.Logger
}

// Config selects level and handler format.
type Config struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // text | json
}

// New creates a Logger writing to stderr; the console report owns stdout.
// A nil cfg yields info-level text output.
func New(cfg *Config) *Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a Logger against an arbitrary writer, mostly for
// tests.
func NewWithWriter(w io.Writer, cfg *Config) *Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if cfg != nil && cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	}
	return &Logger{Logger: slog.New(h)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
