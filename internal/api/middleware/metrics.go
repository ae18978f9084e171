package middleware

import (
	"net/http"
	"time"

	"github.com/blaisecz/health-journal/internal/metrics"
)

// Metrics records request counts and latency per route pattern, which keeps
// label cardinality bounded regardless of user IDs in paths.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := newStatusRecorder(w)
		start := time.Now()

		next.ServeHTTP(sr, r)

		metrics.ObserveHTTP(routePattern(r), r.Method, sr.statusCode, time.Since(start))
	})
}
