// Package module wires the survey dashboard into the API using modkit
package module

import (
	"net/http"

	modkit "devsurvey/internal/modkit"
	"devsurvey/internal/modkit/httpkit"
	"devsurvey/internal/modkit/swaggerkit"
	str "devsurvey/internal/platform/strings"
	surveyhttp "devsurvey/internal/services/api/survey/http"
	surveysvc "devsurvey/internal/services/api/survey/service"
)

// Module implements the survey module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports

	svc surveysvc.Service
}

// New constructs the survey module. deps.Survey must be loaded
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("survey"), modkit.WithPrefix("/survey")}, opts...)...)

	svc := surveysvc.New(deps.Survey, deps.Metrics)
	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Service: svc, Dataset: svc},
		svc:    svc,
	}

	if b.SwaggerOn {
		swaggerkit.Register(m.Name(), docs(m.Prefix()))
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, func(rr httpkit.Router) {
		surveyhttp.Register(rr, m.svc)
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
