package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/langfuse"
	"github.com/blaisecz/health-journal/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NarrativeService asks an LLM to summarize computed analytics and records the
// generation in Langfuse so users can rate it.
type NarrativeService interface {
	Generate(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.NarrativeResponse, error)
	SubmitFeedback(ctx context.Context, userID uuid.UUID, req *domain.FeedbackRequest) error
}

type narrativeService struct {
	analytics AnalyticsService
	llmClient llm.NarrativeLLM
	langfuse  langfuse.Client
	log       zerolog.Logger
	now       func() time.Time
}

// NewNarrativeService creates a new NarrativeService.
func NewNarrativeService(
	analyticsService AnalyticsService,
	llmClient llm.NarrativeLLM,
	langfuseClient langfuse.Client,
	log zerolog.Logger,
) NarrativeService {
	return &narrativeService{
		analytics: analyticsService,
		llmClient: llmClient,
		langfuse:  langfuseClient,
		log:       log,
		now:       time.Now,
	}
}

func (s *narrativeService) Generate(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.NarrativeResponse, error) {
	tracer := otel.Tracer("health-journal-api/narrative")
	ctx, span := tracer.Start(ctx, "NarrativeService.Generate",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	if s.llmClient == nil {
		return nil, llm.ErrOpenAIUnavailable
	}

	result, err := s.analytics.ComputeAnalytics(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	scoreDate := req.EndDate
	if scoreDate == "" {
		scoreDate = s.now().UTC().Format(domain.DateLayout)
	}
	score, err := s.analytics.ComputeHealthScore(ctx, userID, scoreDate)
	if err != nil {
		return nil, err
	}

	narrativeCtx := &domain.NarrativeContext{
		StartDate:                result.StartDate,
		EndDate:                  result.EndDate,
		Insights:                 result.Insights,
		FoodDigestiveCorrelation: result.FoodDigestiveCorrelation,
		SymptomsData:             result.SymptomsData,
		CyclePrediction:          result.CyclePrediction,
	}
	if !score.IsEmpty() {
		narrativeCtx.HealthScore = score
	}

	output, err := s.llmClient.GenerateNarrative(ctx, narrativeCtx)
	if err != nil {
		return nil, err
	}

	response := &domain.NarrativeResponse{
		Insights:  result.Insights,
		Narrative: *output,
	}

	// Reuse the OTEL trace ID so the Langfuse trace and the exported spans line up.
	var traceID string
	if sc := span.SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}
	id, err := s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
		ID:     traceID,
		UserID: userID.String(),
		Name:   "health-narrative",
		Input:  narrativeCtx,
		Output: output,
		Tags:   []string{"health-journal", "narrative"},
	})
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to record narrative trace")
	}
	if id != "" {
		traceID = id
	}
	response.TraceID = traceID

	return response, nil
}

func (s *narrativeService) SubmitFeedback(ctx context.Context, userID uuid.UUID, req *domain.FeedbackRequest) error {
	if req.TraceID == "" {
		return fmt.Errorf("%w: trace_id is required", domain.ErrInvalidInput)
	}
	if req.Score < 1 || req.Score > 5 {
		return fmt.Errorf("%w: score must be between 1 and 5", domain.ErrInvalidInput)
	}

	if !s.langfuse.IsEnabled() {
		s.log.Debug().Str("user_id", userID.String()).Int("score", req.Score).Msg("feedback accepted without langfuse")
		return nil
	}

	// Feedback is best effort; ingestion failures are logged, not surfaced.
	if err := s.langfuse.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    "user_rating",
		Value:   float64(req.Score),
		Comment: req.Comment,
	}); err != nil {
		s.log.Warn().Err(err).Str("trace_id", req.TraceID).Msg("failed to record feedback score")
	}
	return nil
}
