// Package logger builds the zerolog logger shared by the API, services and CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // json or console
	Output io.Writer // defaults to stdout
}

// New creates a logger with a timestamp on every event.
func New(cfg Config) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}

// MustNew is New for process startup, where a bad level is fatal.
func MustNew(cfg Config) zerolog.Logger {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}
