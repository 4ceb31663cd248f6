// Package api provides the HTTP API for the application
package api

import (
	"devsurvey/internal/core/survey"
	"devsurvey/internal/platform/config"
	"devsurvey/internal/platform/logger"
	"devsurvey/internal/platform/metrics"
	phttp "devsurvey/internal/platform/net/http"
	"devsurvey/internal/platform/net/middleware"

	"devsurvey/internal/modkit"
	"devsurvey/internal/modkit/httpkit"
	"devsurvey/internal/modkit/module"
	"devsurvey/internal/modkit/swaggerkit"

	metamod "devsurvey/internal/services/api/meta/module"
	surveymod "devsurvey/internal/services/api/survey/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Survey         *survey.Table
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	CORSOrigins    []string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Survey:  opt.Survey,
		Metrics: metrics.Get(),
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if deps.Loaded() {
		deps.Metrics.SetDatasetRecords(opt.Survey.Len())
	}

	// survey owns the dataset port meta reports on
	// every survey route takes a JSON body or none
	surveyMod := surveymod.New(deps,
		modkit.WithSwagger(opt.EnableSwagger),
		modkit.WithMiddlewares(middleware.AllowContentType("application/json")),
	)
	ports := module.MustPortsOf[surveymod.Ports](surveyMod)

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Dataset: ports.Dataset})),
		surveyMod,
	}

	stack := httpkit.CommonStack(opt.CORSOrigins...)
	if deps.Loaded() {
		stack = append(stack, middleware.RequestScope(opt.Survey.Info().ID))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	// docs, profiler and metrics sit outside the versioned stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}
}
