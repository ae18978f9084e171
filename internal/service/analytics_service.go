package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/internal/cache"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/metrics"
	"github.com/blaisecz/health-journal/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AnalyticsService fetches a user's snapshot and runs the analytics engine over it.
type AnalyticsService interface {
	ComputeAnalytics(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.AnalyticsResult, error)
	// ComputeHealthScore scores the record for date. A missing record yields the empty sentinel.
	ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (*domain.HealthScore, error)
}

// AnalyticsOption configures the analytics service.
type AnalyticsOption func(*analyticsService)

// WithResultCache stores computed results under a fingerprint of their inputs.
func WithResultCache(c cache.Service, ttl time.Duration) AnalyticsOption {
	return func(s *analyticsService) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithRecorder(r metrics.Recorder) AnalyticsOption {
	return func(s *analyticsService) {
		s.recorder = r
	}
}

func WithLogger(l zerolog.Logger) AnalyticsOption {
	return func(s *analyticsService) {
		s.log = l
	}
}

// WithClock overrides the source of "today" for cycle forecasts.
func WithClock(now func() time.Time) AnalyticsOption {
	return func(s *analyticsService) {
		s.now = now
	}
}

type analyticsService struct {
	engine     *analytics.Engine
	recordRepo repository.RecordRepository
	userRepo   repository.UserRepository
	cache      cache.Service
	cacheTTL   time.Duration
	recorder   metrics.Recorder
	log        zerolog.Logger
	now        func() time.Time
}

func NewAnalyticsService(
	engine *analytics.Engine,
	recordRepo repository.RecordRepository,
	userRepo repository.UserRepository,
	opts ...AnalyticsOption,
) AnalyticsService {
	s := &analyticsService{
		engine:     engine,
		recordRepo: recordRepo,
		userRepo:   userRepo,
		cache:      cache.Noop{},
		recorder:   metrics.Nop{},
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *analyticsService) ComputeAnalytics(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.AnalyticsResult, error) {
	tracer := otel.Tracer("health-journal-api/analytics")
	ctx, span := tracer.Start(ctx, "AnalyticsService.ComputeAnalytics",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("window.start", req.StartDate),
			attribute.String("window.end", req.EndDate),
			attribute.String("granularity", req.Granularity),
		),
	)
	defer span.End()

	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	granularity, err := parseGranularity(req.Granularity)
	if err != nil {
		return nil, err
	}

	// The profile lookup doubles as the user existence check.
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.recordRepo.ListAllByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list records")
		return nil, fmt.Errorf("list records: %w", err)
	}

	today := s.now().UTC()
	input := analytics.Input{
		Window:      analytics.Window{Start: req.StartDate, End: req.EndDate},
		History:     history,
		Profile:     profile,
		Granularity: granularity,
		Today:       today,
	}
	span.SetAttributes(attribute.Int("records.count", len(history)))

	key, keyErr := fingerprint("analytics", userID, req.StartDate, req.EndDate, string(granularity), today.Format(domain.DateLayout), profile, history)
	if keyErr == nil {
		var cached domain.AnalyticsResult
		switch err := s.cache.Get(ctx, key, &cached); {
		case err == nil:
			s.recorder.CacheLookup(metrics.CacheHit)
			span.SetAttributes(attribute.Bool("cache.hit", true))
			s.log.Debug().Str("user_id", userID.String()).Msg("analytics cache hit")
			return &cached, nil
		case errors.Is(err, cache.ErrCacheMiss):
			s.recorder.CacheLookup(metrics.CacheMiss)
		default:
			s.recorder.CacheLookup(metrics.CacheError)
			s.log.Warn().Err(err).Msg("analytics cache read failed")
		}
	}

	start := time.Now()
	result := s.engine.Compute(input)
	s.recorder.ObserveCompute("analytics", time.Since(start), len(history))

	if skipped := len(history) - countValidDates(history); skipped > 0 {
		s.log.Debug().Str("user_id", userID.String()).Int("skipped", skipped).Msg("skipped records with malformed dates")
	}

	if keyErr == nil {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("analytics cache write failed")
		}
	}

	span.SetAttributes(attribute.Int("insights.count", len(result.Insights)))
	return &result, nil
}

func (s *analyticsService) ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (*domain.HealthScore, error) {
	tracer := otel.Tracer("health-journal-api/analytics")
	ctx, span := tracer.Start(ctx, "AnalyticsService.ComputeHealthScore",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("date", date),
		),
	)
	defer span.End()

	if !analytics.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrInvalidInput, date)
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	var records []domain.DailyRecord
	record, err := s.recordRepo.GetByDate(ctx, userID, date)
	switch {
	case err == nil:
		records = append(records, *record)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get record: %w", err)
	}

	start := time.Now()
	score := s.engine.Score(records, date)
	s.recorder.ObserveCompute("health_score", time.Since(start), len(records))

	span.SetAttributes(attribute.Float64("score.total", score.Total))
	return &score, nil
}

func parseGranularity(value string) (domain.Granularity, error) {
	switch g := domain.Granularity(value); g {
	case "":
		return domain.GranularityDaily, nil
	case domain.GranularityDaily, domain.GranularityWeekly, domain.GranularityMonthly:
		return g, nil
	default:
		return "", fmt.Errorf("%w: granularity must be daily, weekly or monthly", domain.ErrInvalidInput)
	}
}

// fingerprint hashes every input of a computation, so equal keys mean equal results.
func fingerprint(kind string, parts ...any) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		if err := enc.Encode(p); err != nil {
			return "", err
		}
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil)), nil
}

func countValidDates(records []domain.DailyRecord) int {
	n := 0
	for i := range records {
		if analytics.ValidDate(records[i].Date) {
			n++
		}
	}
	return n
}
