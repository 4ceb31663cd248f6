// Package http provides http transport for the survey dashboard
package http

import (
	stdhttp "net/http"

	"devsurvey/internal/modkit/httpkit"
	"devsurvey/internal/services/api/survey/domain"
	svc "devsurvey/internal/services/api/survey/service"
)

// Register mounts survey endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// control vocabularies and defaults
	httpkit.Get(r, "/filters", h.filters)

	// tab catalog
	httpkit.Get(r, "/tabs", h.tabs)

	// one tab over the filtered records
	httpkit.PostJSON[domain.SpecInput](r, "/tabs/{tab}", h.tab)

	// several tabs over one filtered base
	httpkit.PostJSON[domain.DashboardInput](r, "/dashboard", h.dashboard)

	// ad hoc ranked count
	httpkit.PostJSON[domain.AggregateInput](r, "/aggregate", h.aggregate)

	// matching record count
	httpkit.PostJSON[domain.SpecInput](r, "/count", h.count)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /survey/filters Survey surveyFilters
// @Summary Filter vocabularies and default selections
// @Tags Survey
// @Produce json
// @Success 200 {object} domain.FiltersResult "ok"
// @Router /survey/filters [get]
func (h *handlers) filters(r *stdhttp.Request) (any, error) {
	return h.svc.Filters(r.Context()), nil
}

// swagger:route GET /survey/tabs Survey surveyTabs
// @Summary Dashboard tabs in display order
// @Tags Survey
// @Produce json
// @Success 200 {object} domain.TabsResult "ok"
// @Router /survey/tabs [get]
func (h *handlers) tabs(r *stdhttp.Request) (any, error) {
	return h.svc.Tabs(r.Context()), nil
}

// swagger:route POST /survey/tabs/{tab} Survey surveyTab
// @Summary Render one tab over the filtered records
// @Tags Survey
// @Accept json
// @Produce json
// @Param tab path string true "tech-used, tech-want or demographics"
// @Param payload body survey.FilterSpec false "Filters"
// @Success 200 {object} domain.TabResult "ok"
// @Router /survey/tabs/{tab} [post]
func (h *handlers) tab(r *stdhttp.Request, in domain.SpecInput) (any, error) {
	return h.svc.Tab(r.Context(), httpkit.URLParam(r, "tab"), in)
}

// swagger:route POST /survey/dashboard Survey surveyDashboard
// @Summary Render several tabs from one filtered base
// @Tags Survey
// @Accept json
// @Produce json
// @Param payload body domain.DashboardInput false "Filters and tabs"
// @Success 200 {object} domain.DashboardResult "ok"
// @Router /survey/dashboard [post]
func (h *handlers) dashboard(r *stdhttp.Request, in domain.DashboardInput) (any, error) {
	return h.svc.Dashboard(r.Context(), in)
}

// swagger:route POST /survey/aggregate Survey surveyAggregate
// @Summary Ranked counts for one column
// @Tags Survey
// @Accept json
// @Produce json
// @Param payload body domain.AggregateInput true "Query"
// @Success 200 {object} domain.AggregateResult "ok"
// @Router /survey/aggregate [post]
func (h *handlers) aggregate(r *stdhttp.Request, in domain.AggregateInput) (any, error) {
	return h.svc.Aggregate(r.Context(), in)
}

// swagger:route POST /survey/count Survey surveyCount
// @Summary Number of records passing the filters
// @Tags Survey
// @Accept json
// @Produce json
// @Param payload body survey.FilterSpec false "Filters"
// @Success 200 {object} domain.CountResult "ok"
// @Router /survey/count [post]
func (h *handlers) count(r *stdhttp.Request, in domain.SpecInput) (any, error) {
	return h.svc.Count(r.Context(), in)
}
