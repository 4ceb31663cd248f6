package survey

import (
	"maps"
	"strings"

	perr "devsurvey/internal/platform/errors"
)

// Tab is the active dashboard section. Exactly one is active, the user may switch freely
type Tab string

// Dashboard tabs
const (
	TabTechUsed     Tab = "tech-used"
	TabTechWant     Tab = "tech-want"
	TabDemographics Tab = "demographics"
)

// DefaultTab is active when the dashboard opens
const DefaultTab = TabTechUsed

// Tabs lists the tabs in display order
var Tabs = []Tab{TabTechUsed, TabTechWant, TabDemographics}

// ParseTab validates a tab id. Empty selects DefaultTab
func ParseTab(s string) (Tab, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTab, nil
	}
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown tab %q", s), "tab")
}

// Label is the tab caption
func (t Tab) Label() string {
	switch t {
	case TabTechUsed:
		return "Technologies Used"
	case TabTechWant:
		return "Technologies Desired"
	case TabDemographics:
		return "Survey Demographics"
	default:
		return string(t)
	}
}

// Chart tells the renderer which figure to draw
type Chart string

// Chart kinds
const (
	ChartBar        Chart = "bar"
	ChartHBar       Chart = "hbar" // horizontal, first row on top
	ChartPie        Chart = "pie"
	ChartChoropleth Chart = "choropleth" // labels are full country names
)

// MetricDef is one panel of a tab
type MetricDef struct {
	ID     string
	Header string
	Title  string
	Axis   string
	Chart  Chart
	Query  Query
}

// Metric is a computed panel handed to the renderer
type Metric struct {
	ID     string  `json:"id"     example:"languages"`
	Header string  `json:"header" example:"Programming Languages"`
	Title  string  `json:"title"  example:"Top 10 Languages Used"`
	Axis   string  `json:"axis"   example:"Languages"`
	Chart  Chart   `json:"chart"  example:"bar"`
	Column Column  `json:"column" example:"LanguageHaveWorkedWith"`
	Total  int     `json:"total"  example:"1200"`
	Rows   []Count `json:"rows"`
}

func techMetrics(verb string, lang, db, web, collab Column) []MetricDef {
	top := func(c Column) Query { return Query{Column: c, Split: true, Limit: TopN} }
	return []MetricDef{
		{ID: "languages", Header: "Programming Languages", Title: "Top 10 Languages " + verb, Axis: "Languages", Chart: ChartBar, Query: top(lang)},
		{ID: "databases", Header: "Databases", Title: "Top 10 Databases " + verb, Axis: "Databases", Chart: ChartBar, Query: top(db)},
		{ID: "webframes", Header: "Web Frameworks", Title: "Top 10 Web Frameworks " + verb, Axis: "Web Frameworks", Chart: ChartHBar, Query: top(web)},
		{ID: "collab_tools", Header: "Collaboration Tools", Title: "Top 10 Collaboration Tools " + verb, Axis: "Collaboration Tools", Chart: ChartHBar, Query: top(collab)},
	}
}

var tabMetrics = map[Tab][]MetricDef{
	TabTechUsed: techMetrics("Used", ColLanguageHave, ColDatabaseHave, ColWebframeHave, ColCollabHave),
	TabTechWant: techMetrics("Desired", ColLanguageWant, ColDatabaseWant, ColWebframeWant, ColCollabWant),
	TabDemographics: {
		{ID: "country_map", Header: "World Map", Title: "Country Distribution", Axis: "Country", Chart: ChartChoropleth,
			Query: Query{Column: ColCountry}},
		{ID: "top_countries", Header: "Countries", Title: "Top 10 Participating Countries", Axis: "Country", Chart: ChartBar,
			Query: Query{Column: ColCountry, Limit: TopN, Remap: countryDisplayNames}},
		{ID: "ed_level", Header: "Education Level", Title: "Education Level Distribution", Axis: "Education Level", Chart: ChartPie,
			Query: Query{Column: ColEdLevel}},
		{ID: "dev_status", Header: "Developer Status", Title: "Developer Status Distribution", Axis: "Dev Type", Chart: ChartPie,
			Query: Query{Column: ColMainBranch}},
		{ID: "employment", Header: "Employment Type", Title: "Employment Type Distribution", Axis: "Employment Type", Chart: ChartPie,
			Query: Query{Column: ColEmployment, Split: true}},
	},
}

// Metrics returns the panel definitions of a tab
func (t Tab) Metrics() []MetricDef {
	defs := tabMetrics[t]
	out := make([]MetricDef, len(defs))
	for i, d := range defs {
		d.Query.Remap = maps.Clone(d.Query.Remap)
		out[i] = d
	}
	return out
}

// Dispatch runs every panel of tab over one filtered view. Callers switching tabs with
// the same filters pass the same View so every tab sees the same record set
func Dispatch(v View, tab Tab) []Metric {
	defs := tabMetrics[tab]
	out := make([]Metric, 0, len(defs))
	for _, d := range defs {
		rows := Aggregate(v, d.Query)
		out = append(out, Metric{
			ID:     d.ID,
			Header: d.Header,
			Title:  d.Title,
			Axis:   d.Axis,
			Chart:  d.Chart,
			Column: d.Query.Column,
			Total:  Total(rows),
			Rows:   rows,
		})
	}
	return out
}
