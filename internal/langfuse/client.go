// Package langfuse records narrative generations and user feedback in
// Langfuse through its public HTTP API, and loads managed prompts. Without
// credentials every operation is a no-op.
package langfuse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ingestionPath = "/api/public/ingestion"
	// sendTimeout bounds one ingestion call.
	sendTimeout = 5 * time.Second
)

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured and enabled.
	IsEnabled() bool
	// CreateTrace creates a new trace and returns its ID.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore attaches a score to an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
}

// TraceInput describes one narrative generation.
type TraceInput struct {
	// ID overrides the generated trace ID, e.g. to reuse the OpenTelemetry trace ID
	ID        string
	UserID    string
	SessionID string
	Name      string
	Input     any
	Output    any
	Tags      []string
	Metadata  map[string]any
}

// ScoreInput is a rating attached to a trace.
type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
	Release     string
	// Logger defaults to a no-op logger
	Logger *zerolog.Logger
}

type client struct {
	api         *api
	environment string
	release     string
	log         zerolog.Logger
	now         func() time.Time
}

// NewClient creates a client. Missing credentials or an unusable base URL
// yield a disabled client; the reason is logged.
func NewClient(cfg Config) Client {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "langfuse").Logger()
	}

	c := &client{
		environment: cfg.Environment,
		release:     cfg.Release,
		log:         log,
		now:         time.Now,
	}

	transport, err := newAPI(cfg.BaseURL, cfg.PublicKey, cfg.SecretKey, 10*time.Second)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("langfuse disabled")
	case transport == nil:
		log.Info().Strs("missing", missingSettings(cfg)).Msg("langfuse disabled")
	default:
		c.api = transport
		log.Info().Str("base_url", cfg.BaseURL).Str("env", cfg.Environment).Msg("langfuse enabled")
	}
	return c
}

func missingSettings(cfg Config) []string {
	var missing []string
	if cfg.BaseURL == "" {
		missing = append(missing, "LANGFUSE_BASE_URL")
	}
	if cfg.PublicKey == "" {
		missing = append(missing, "LANGFUSE_PUBLIC_KEY")
	}
	if cfg.SecretKey == "" {
		missing = append(missing, "LANGFUSE_SECRET_KEY")
	}
	return missing
}

func (c *client) IsEnabled() bool {
	return c.api != nil
}

// CreateTrace returns the trace ID even when ingestion fails, so callers can
// still hand it out for feedback.
func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if c.api == nil {
		return "", nil
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.environment != "" {
		metadata["environment"] = c.environment
	}

	return id, c.ingest(ctx, c.event("trace-create", traceBody{
		ID:          id,
		Name:        in.Name,
		UserID:      in.UserID,
		SessionID:   in.SessionID,
		Release:     c.release,
		Environment: c.environment,
		Input:       in.Input,
		Output:      in.Output,
		Tags:        in.Tags,
		Metadata:    metadata,
	}))
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if c.api == nil {
		return nil
	}
	if in.TraceID == "" {
		return fmt.Errorf("langfuse score %q: trace ID is required", in.Name)
	}

	return c.ingest(ctx, c.event("score-create", scoreBody{
		ID:       uuid.NewString(),
		TraceID:  in.TraceID,
		Name:     in.Name,
		Value:    in.Value,
		DataType: "NUMERIC",
		Comment:  in.Comment,
	}))
}

func (c *client) event(kind string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}
}

// ingest posts events in one batch. The request context only contributes
// values, so a disconnected HTTP client does not drop the event.
func (c *client) ingest(ctx context.Context, events ...ingestionEvent) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	var resp ingestionResponse
	if err := c.api.do(ctx, http.MethodPost, ingestionPath, nil, batchPayload{Batch: events}, &resp); err != nil {
		c.log.Warn().Err(err).Str("event", events[0].Type).Msg("langfuse ingestion failed")
		return err
	}

	// The endpoint answers 207 and lists rejected events individually.
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %d %s", e.ID, e.Status, e.Message))
		}
		err := fmt.Errorf("langfuse rejected %d event(s): %s", len(resp.Errors), strings.Join(msgs, "; "))
		c.log.Warn().Err(err).Str("event", events[0].Type).Msg("langfuse ingestion partially failed")
		return err
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type ingestionResponse struct {
	Successes []struct {
		ID     string `json:"id"`
		Status int    `json:"status"`
	} `json:"successes"`
	Errors []struct {
		ID      string `json:"id"`
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"errors"`
}

type traceBody struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	UserID      string         `json:"userId,omitempty"`
	SessionID   string         `json:"sessionId,omitempty"`
	Release     string         `json:"release,omitempty"`
	Environment string         `json:"environment,omitempty"`
	Input       any            `json:"input,omitempty"`
	Output      any            `json:"output,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID       string  `json:"id"`
	TraceID  string  `json:"traceId"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	DataType string  `json:"dataType"`
	Comment  string  `json:"comment,omitempty"`
}
