// Package module defines the contract every API module satisfies
package module

import (
	phttp "devsurvey/internal/platform/net/http"
)

// Module mounts its routes and exposes ports other modules consume.
// it lives apart from modkit so a module can export its own ports type without an import knot
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
