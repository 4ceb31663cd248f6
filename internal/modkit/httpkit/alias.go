// Package httpkit is what modules use to mount handlers, so they never import
// internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "devsurvey/internal/platform/net/http"
	"devsurvey/internal/platform/net/http/bind"
)

type (
	// Response lets a handler pick its own status
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// bodyOpts lets POST handlers treat an absent body as the zero value of T
var bodyOpts = bind.JSONOptions{
	MaxBytes:        1 << 20,
	DisallowUnknown: true,
	AllowEmptyBody:  true,
}

// JSON decodes and validates the body into T before calling fn.
// an empty body yields the zero T, malformed or unknown fields are a 400
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.JSONHandler(bodyOpts, fn)
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.JSONHandlerNoBody(fn)
}
