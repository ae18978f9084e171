package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts an OpenTelemetry span for each HTTP request and
// propagates the context to downstream handlers and services.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("health-journal-api/http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			),
		)
		defer span.End()

		// Attach generic HTTP request metadata as Langfuse input
		inputPayload := map[string]any{
			"method": r.Method,
			"path":   r.URL.Path,
		}
		if r.URL.RawQuery != "" {
			inputPayload["query"] = r.URL.RawQuery
		}
		if inJSON, err := json.Marshal(inputPayload); err == nil {
			span.SetAttributes(attribute.String("langfuse.observation.input", string(inJSON)))
		}

		sr := newStatusRecorder(w)
		start := time.Now()

		next.ServeHTTP(sr, r.WithContext(ctx))

		// chi fills the route pattern while routing, so it is only known afterwards.
		if pattern := chi.RouteContext(r.Context()); pattern != nil && pattern.RoutePattern() != "" {
			span.SetName(r.Method + " " + pattern.RoutePattern())
			span.SetAttributes(attribute.String("http.route", pattern.RoutePattern()))
		}
		span.SetAttributes(attribute.Int("http.status_code", sr.statusCode))
		if sr.statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(sr.statusCode))
		}

		outputPayload := map[string]any{
			"status_code": sr.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if outJSON, err := json.Marshal(outputPayload); err == nil {
			span.SetAttributes(attribute.String("langfuse.observation.output", string(outJSON)))
		}
	})
}
