package middleware

import (
	"net/http"
	"time"

	"devsurvey/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency keyed by the matched chi route pattern
// so path parameters do not explode label cardinality
func Metrics() func(http.Handler) http.Handler {
	rec := metrics.Get()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(cw, r)

			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}
			rec.RecordRequest(route, r.Method, cw.status, time.Since(start))
		})
	}
}
