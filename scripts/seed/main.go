package main

import (
	"fmt"
	"os"

	"github.com/blaisecz/health-journal/internal/config"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/seed"
	"github.com/blaisecz/health-journal/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.MustNew(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.DailyRecord{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	if err := seed.Run(db, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	fmt.Fprintln(os.Stdout, "\nSample user IDs for testing:")
	for _, u := range seed.Users {
		fmt.Fprintf(os.Stdout, "  %s (%s)\n", u.ID, u.Timezone)
	}
}
