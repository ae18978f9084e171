package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/blaisecz/health-journal/pkg/problem"
	"github.com/rs/zerolog"
)

// Recovery recovers from panics and returns a 500 error
func Recovery(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")
					problem.InternalError("An unexpected error occurred").Render(w, r)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
