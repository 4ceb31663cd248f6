package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"devsurvey/internal/platform/net/middleware"
)

// slowRequest marks access log lines at warn level
const slowRequest = 500 * time.Millisecond

// CommonStack returns the baseline middleware for the versioned api
// origins feeds CORS, none means the cors package default of any origin
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: slowRequest}),
		middleware.Metrics(),

		// the dashboard renderer is served from another origin
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}
