// Health Journal API
//
// REST API for daily health journaling with analytics and cycle forecasts.
//
//	@title			Health Journal API
//	@version		1.0
//	@description	Daily health journal with analytics, cycle forecasts and LLM narratives.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User and cycle profile endpoints
//
//	@tag.name			records
//	@tag.description	Daily record endpoints
//
//	@tag.name			analytics
//	@tag.description	Computed analytics and health scores
//
//	@tag.name			insights
//	@tag.description	LLM narrative and feedback
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/internal/api"
	"github.com/blaisecz/health-journal/internal/api/handler"
	"github.com/blaisecz/health-journal/internal/cache"
	"github.com/blaisecz/health-journal/internal/config"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/langfuse"
	"github.com/blaisecz/health-journal/internal/llm"
	"github.com/blaisecz/health-journal/internal/metrics"
	"github.com/blaisecz/health-journal/internal/repository"
	"github.com/blaisecz/health-journal/internal/seed"
	"github.com/blaisecz/health-journal/internal/service"
	"github.com/blaisecz/health-journal/internal/telemetry"
	"github.com/blaisecz/health-journal/pkg/logger"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.MustNew(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "health-journal-api")
	if err != nil {
		log.Warn().Err(err).Msg("tracing disabled")
	} else {
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown failed")
			}
		}()
	}

	// Connect to database
	db, err := config.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.User{}, &domain.DailyRecord{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Msg("database migration completed")

	if cfg.Seed {
		log.Info().Msg("seeding database with sample data (SEED=true)")
		if err := seed.Run(db, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
	}

	analyticsCfg, err := analytics.LoadConfig(cfg.AnalyticsConfigPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.AnalyticsConfigPath).Msg("failed to load analytics config")
	}

	resultCache := newResultCache(ctx, cfg, log)
	defer resultCache.Close()

	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.MetricsEnabled {
		recorder = metrics.NewPrometheus()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo)
	recordService := service.NewRecordService(recordRepo, userRepo)
	analyticsService := service.NewAnalyticsService(
		analytics.NewEngine(analyticsCfg),
		recordRepo,
		userRepo,
		service.WithResultCache(resultCache, cfg.AnalyticsCacheTTL),
		service.WithRecorder(recorder),
		service.WithLogger(log.With().Str("component", "analytics").Logger()),
	)

	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Release:     cfg.Version,
		Logger:      &log,
	})

	narrativeService := service.NewNarrativeService(
		analyticsService,
		newNarrativeLLM(ctx, cfg, log),
		langfuseClient,
		log.With().Str("component", "narrative").Logger(),
	)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	recordHandler := handler.NewRecordHandler(recordService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	insightsHandler := handler.NewInsightsHandler(narrativeService)

	// Setup router
	router := api.NewRouter(userHandler, recordHandler, analyticsHandler, insightsHandler,
		api.WithLogger(log),
		api.WithMetrics(cfg.MetricsEnabled),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
}

// newResultCache prefers Redis and falls back to an in-process cache when
// Redis is not configured or unreachable.
func newResultCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) cache.Service {
	if cfg.RedisAddr == "" {
		log.Info().Msg("analytics cache: in memory")
		return cache.NewMemoryCache()
	}

	redisCache, err := cache.NewRedisCache(ctx,
		cache.WithRedisAddr(cfg.RedisAddr),
		cache.WithRedisPassword(cfg.RedisPassword),
		cache.WithRedisDB(cfg.RedisDB),
	)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory analytics cache")
		return cache.NewMemoryCache()
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("analytics cache: redis")
	return redisCache
}

// newNarrativeLLM returns nil when no OpenAI key is configured, which makes
// the narrative endpoint answer 503.
func newNarrativeLLM(ctx context.Context, cfg *config.Config, log zerolog.Logger) llm.NarrativeLLM {
	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("OpenAI API key not configured, narrative endpoint will be unavailable")
		return nil
	}

	systemPrompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.LangfusePromptName,
		PromptLabel: cfg.LangfusePromptLabel,
		SavePath:    cfg.PromptPath,
		Logger:      &log,
	})
	if err != nil || systemPrompt == "" {
		log.Info().Err(err).Msg("using built-in narrative prompt")
		systemPrompt = llm.DefaultSystemPrompt
	}

	return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIInsightsModel, systemPrompt)
}
