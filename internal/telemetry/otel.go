// Package telemetry configures OpenTelemetry tracing. Spans are exported to
// the Langfuse OTLP endpoint, where HTTP requests, analytics computations and
// narrative generations show up as one trace.
package telemetry

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/blaisecz/health-journal/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const otlpTracesPath = "/api/public/otel/v1/traces"

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

// Enabled reports whether cfg carries Langfuse credentials.
func Enabled(cfg *config.Config) bool {
	return cfg.LangfuseBaseURL != "" && cfg.LangfusePublicKey != "" && cfg.LangfuseSecretKey != ""
}

// InitTracer installs the global tracer provider and propagator. Without
// Langfuse credentials the default no-op provider stays in place.
func InitTracer(ctx context.Context, cfg *config.Config, serviceName string) (ShutdownFunc, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if !Enabled(cfg) {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSuffix(cfg.LangfuseBaseURL, "/")+otlpTracesPath),
		otlptracehttp.WithHeaders(map[string]string{
			"Authorization": basicAuth(cfg.LangfusePublicKey, cfg.LangfuseSecretKey),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(cfg, serviceName)...))
	if err != nil {
		return nil, fmt.Errorf("build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg.TraceSampleRatio)),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Sampler samples root spans at ratio and follows the parent decision otherwise.
// Ratios outside [0,1] are clamped.
func Sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case ratio <= 0:
		return sdktrace.ParentBased(sdktrace.NeverSample())
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}

func resourceAttributes(cfg *config.Config, serviceName string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", cfg.LangfuseEnv),
		attribute.String("langfuse.environment", cfg.LangfuseEnv),
	}
	if cfg.Version != "" {
		attrs = append(attrs,
			attribute.String("service.version", cfg.Version),
			attribute.String("langfuse.release", cfg.Version),
		)
	}
	return attrs
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}
