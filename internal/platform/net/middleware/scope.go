package middleware

import (
	"net/http"

	"devsurvey/internal/platform/logger"
	pnet "devsurvey/internal/platform/net"
)

// RequestScope copies the chi request id and the serving dataset id onto the context so
// logger.C and pnet.DatasetID see them. Mount it after RequestID
func RequestScope(datasetID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = pnet.WithRequest(ctx, "", datasetID)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), datasetID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
