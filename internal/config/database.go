package config

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDatabase opens the configured database. DATABASE_DRIVER=sqlite takes a
// file path or ":memory:" in DATABASE_URL.
func NewDatabase(cfg *Config, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "", "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	logLevel := gormlogger.Silent
	if cfg.LogLevel == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(zerologWriter{log: log}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("driver", dialector.Name()).Msg("database connection established")
	return db, nil
}

// zerologWriter adapts gorm's printf-style logger to zerolog.
type zerologWriter struct {
	log zerolog.Logger
}

func (w zerologWriter) Printf(format string, args ...any) {
	w.log.Debug().Str("component", "gorm").Msgf(format, args...)
}
