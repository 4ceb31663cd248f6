// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"devsurvey/internal/core/version"
	modkit "devsurvey/internal/modkit"
	"devsurvey/internal/modkit/httpkit"
	str "devsurvey/internal/platform/strings"

	metahttp "devsurvey/internal/services/api/meta/http"
	surveydomain "devsurvey/internal/services/api/survey/domain"
)

// Ports are the cross module ports meta reads from, injected with modkit.WithPorts
type Ports struct {
	Dataset surveydomain.DatasetPort
}

// Module implements the modkit.Module interface
type Module struct {
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	in        Ports
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}
	if p, ok := b.Ports.(Ports); ok {
		m.in = p
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			Dataset:     m.in.Dataset,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface. meta exports nothing
func (m *Module) Ports() any { return nil }
