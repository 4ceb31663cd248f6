package module

import (
	"devsurvey/internal/modkit/swaggerkit"
)

// docs describes the survey routes for the served OpenAPI document
func docs(prefix string) swaggerkit.SpecMutator {
	filters := map[string]any{
		"ages":       []any{"25-34 years old"},
		"employment": []any{"Employed, full-time"},
		"years":      map[string]any{"min": 0, "max": 50},
	}
	return func(spec map[string]any) {
		swaggerkit.Path(spec, prefix+"/filters", "GET",
			swaggerkit.Op("Survey", "Filter vocabularies and default selections", nil))
		swaggerkit.Path(spec, prefix+"/tabs", "GET",
			swaggerkit.Op("Survey", "Dashboard tabs in display order", nil))

		tab := swaggerkit.Op("Survey", "Render one tab over the filtered records", filters)
		tab["parameters"] = []any{map[string]any{
			"name":     "tab",
			"in":       "path",
			"required": true,
			"schema": map[string]any{
				"type": "string",
				"enum": []any{"tech-used", "tech-want", "demographics"},
			},
		}}
		swaggerkit.Path(spec, prefix+"/tabs/{tab}", "POST", tab)

		swaggerkit.Path(spec, prefix+"/dashboard", "POST",
			swaggerkit.Op("Survey", "Render several tabs from one filtered base", map[string]any{
				"filters": filters,
				"tabs":    []any{"tech-used", "demographics"},
			}))
		swaggerkit.Path(spec, prefix+"/aggregate", "POST",
			swaggerkit.Op("Survey", "Ranked counts for one column", map[string]any{
				"filters": filters,
				"column":  "LanguageHaveWorkedWith",
				"split":   true,
				"limit":   10,
			}))
		swaggerkit.Path(spec, prefix+"/count", "POST",
			swaggerkit.Op("Survey", "Number of records passing the filters", filters))
	}
}
