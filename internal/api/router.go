package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/health-journal/docs"
	"github.com/blaisecz/health-journal/internal/api/handler"
	"github.com/blaisecz/health-journal/internal/api/middleware"
	"github.com/blaisecz/health-journal/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler      *handler.UserHandler
	recordHandler    *handler.RecordHandler
	analyticsHandler *handler.AnalyticsHandler
	insightsHandler  *handler.InsightsHandler
	log              zerolog.Logger
	metricsEnabled   bool
}

// Option configures optional router behaviour.
type Option func(*Router)

// WithLogger sets the logger used by the access log and panic recovery.
func WithLogger(log zerolog.Logger) Option {
	return func(rt *Router) { rt.log = log }
}

// WithMetrics toggles the Prometheus middleware and the /metrics endpoint.
func WithMetrics(enabled bool) Option {
	return func(rt *Router) { rt.metricsEnabled = enabled }
}

func NewRouter(
	userHandler *handler.UserHandler,
	recordHandler *handler.RecordHandler,
	analyticsHandler *handler.AnalyticsHandler,
	insightsHandler *handler.InsightsHandler,
	opts ...Option,
) *Router {
	rt := &Router{
		userHandler:      userHandler,
		recordHandler:    recordHandler,
		analyticsHandler: analyticsHandler,
		insightsHandler:  insightsHandler,
		log:              zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(rt.log))
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(rt.log))
	if rt.metricsEnabled {
		r.Use(middleware.Metrics)
	}

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if rt.metricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetByID)
				r.Put("/profile", rt.userHandler.UpdateProfile)

				// Daily records, keyed by calendar date
				r.Route("/records", func(r chi.Router) {
					r.Get("/", rt.recordHandler.List)
					r.Put("/{date}", rt.recordHandler.Upsert)
					r.Get("/{date}", rt.recordHandler.Get)
					r.Delete("/{date}", rt.recordHandler.Delete)
				})

				r.Get("/analytics", rt.analyticsHandler.GetAnalytics)
				r.Get("/health-score", rt.analyticsHandler.GetHealthScore)

				r.Get("/insights/narrative", rt.insightsHandler.GetNarrative)
				r.Post("/insights/feedback", rt.insightsHandler.PostFeedback)
			})
		})
	})

	return r
}
