package config

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CFG_VALUE", "custom")
	if got := getEnv("CFG_VALUE", "default"); got != "custom" {
		t.Fatalf("getEnv returned %q, want custom", got)
	}

	// Empty environment value should fall back to default
	t.Setenv("CFG_EMPTY", "")
	if got := getEnv("CFG_EMPTY", "fallback"); got != "fallback" {
		t.Fatalf("getEnv returned %q, want fallback", got)
	}
}

func TestGetIntAndDuration(t *testing.T) {
	t.Setenv("CFG_INT", "3")
	t.Setenv("CFG_BAD_INT", "three")
	t.Setenv("CFG_DUR", "90s")
	t.Setenv("CFG_BAD_DUR", "soon")

	if got := getInt("CFG_INT", 0); got != 3 {
		t.Errorf("getInt = %d, want 3", got)
	}
	if got := getInt("CFG_BAD_INT", 7); got != 7 {
		t.Errorf("getInt fallback = %d, want 7", got)
	}
	if got := getDuration("CFG_DUR", 0); got != 90*time.Second {
		t.Errorf("getDuration = %v, want 90s", got)
	}
	if got := getDuration("CFG_BAD_DUR", time.Minute); got != time.Minute {
		t.Errorf("getDuration fallback = %v, want 1m", got)
	}
}

func TestLoad(t *testing.T) {
	// Ensure defaults when env vars are empty.
	for _, key := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "SEED",
		"ANALYTICS_CACHE_TTL", "REDIS_ADDR", "REDIS_DB", "METRICS_ENABLED",
		"OPENAI_API_KEY", "OPENAI_INSIGHTS_MODEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" || cfg.DatabaseURL == "" || cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Seed || cfg.DatabaseDriver != "postgres" || !cfg.MetricsEnabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AnalyticsCacheTTL != 10*time.Minute || cfg.RedisAddr != "" {
		t.Fatalf("unexpected cache defaults: %+v", cfg)
	}

	// Custom values override defaults
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "journal.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ANALYTICS_CACHE_TTL", "1m")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("OPENAI_API_KEY", "key")
	t.Setenv("OPENAI_INSIGHTS_MODEL", "model")

	cfg = Load()
	if cfg.Port != "9090" || cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "journal.db" || cfg.LogLevel != "debug" || !cfg.Seed {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 || cfg.AnalyticsCacheTTL != time.Minute || cfg.MetricsEnabled {
		t.Fatalf("cache/metrics overrides missing: %+v", cfg)
	}
	if cfg.OpenAIAPIKey != "key" || cfg.OpenAIInsightsModel != "model" {
		t.Fatalf("openai env overrides missing: %+v", cfg)
	}
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &Config{DatabaseDriver: "sqlite", DatabaseURL: ":memory:"}
	db, err := NewDatabase(cfg, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	if db.Dialector.Name() != "sqlite" {
		t.Errorf("dialector = %q, want sqlite", db.Dialector.Name())
	}
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	cfg := &Config{DatabaseDriver: "oracle"}
	if _, err := NewDatabase(cfg, zerolog.New(io.Discard)); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
