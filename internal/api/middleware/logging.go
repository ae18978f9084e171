package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logger writes one structured access log line per request.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := newStatusRecorder(w)
			start := time.Now()

			next.ServeHTTP(sr, r)

			var event *zerolog.Event
			switch {
			case sr.statusCode >= http.StatusInternalServerError:
				event = log.Error()
			case sr.statusCode >= http.StatusBadRequest:
				event = log.Warn()
			default:
				event = log.Info()
			}
			event.
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", sr.statusCode).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// routePattern returns the matched chi pattern, or "unmatched" for 404s.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
