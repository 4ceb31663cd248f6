package httpkit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// URLParam returns the trimmed path parameter name from the matched route, "" when absent
func URLParam(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}
