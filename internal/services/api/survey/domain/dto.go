// Package domain holds DTOs for survey http and service contracts
package domain

import (
	"devsurvey/internal/core/survey"
)

// Filter controls travel as survey.FilterSpec:
// {"ages":[...],"ed_levels":[...],"employment":[...],"dev_status":[...],"years":{"min":0,"max":50}}
// an omitted list accepts everything, an empty list accepts nothing

// SpecInput is a bare filter spec body
type SpecInput = survey.FilterSpec

// FiltersResult is what the filter controls are populated from
type FiltersResult struct {
	DatasetID  string            `json:"dataset_id" example:"6f1c3a52-6a55-4bd4-9a34-0f1f3c1e7a10"`
	Vocabulary survey.Vocabulary `json:"vocabulary"`
	Defaults   survey.FilterSpec `json:"defaults"`
}

// TabInfo describes one dashboard tab
type TabInfo struct {
	ID      survey.Tab `json:"id"      example:"tech-used"`
	Label   string     `json:"label"   example:"Technologies Used"`
	Metrics []string   `json:"metrics" example:"languages,databases,webframes,collab_tools"`
}

// TabsResult lists the tabs in display order
type TabsResult struct {
	Default survey.Tab `json:"default" example:"tech-used"`
	Tabs    []TabInfo  `json:"tabs"`
}

// TabResult is one rendered tab
type TabResult struct {
	Tab     survey.Tab      `json:"tab"     example:"demographics"`
	Label   string          `json:"label"   example:"Survey Demographics"`
	Records int             `json:"records" example:"1200"`
	Metrics []survey.Metric `json:"metrics"`
}

// DashboardInput renders several tabs from one filtered base
type DashboardInput struct {
	Filters survey.FilterSpec `json:"filters"`
	Tabs    []string          `json:"tabs,omitempty" validate:"omitempty,max=3,dive,required" example:"tech-used,demographics"`
}

// DashboardResult carries every requested tab over the same record set
type DashboardResult struct {
	DatasetID string      `json:"dataset_id" example:"6f1c3a52-6a55-4bd4-9a34-0f1f3c1e7a10"`
	Records   int         `json:"records"    example:"1200"`
	Tabs      []TabResult `json:"tabs"`
}

// AggregateInput asks for a ranked count over any categorical column
// limit omitted means top 10, 0 keeps every value
type AggregateInput struct {
	Filters      survey.FilterSpec `json:"filters"`
	Column       string            `json:"column" validate:"required" example:"LanguageHaveWorkedWith"`
	Split        bool              `json:"split,omitempty" example:"true"`
	Limit        *int              `json:"limit,omitempty" validate:"omitnil,min=0,max=1000" example:"10"`
	DisplayNames bool              `json:"display_names,omitempty" example:"false"`
}

// AggregateResult is a single ranked count
type AggregateResult struct {
	Column  survey.Column  `json:"column"  example:"LanguageHaveWorkedWith"`
	Split   bool           `json:"split"   example:"true"`
	Records int            `json:"records" example:"1200"`
	Total   int            `json:"total"   example:"3400"`
	Rows    []survey.Count `json:"rows"`
}

// CountResult reports how many records pass the filters
type CountResult struct {
	Records     int `json:"records"      example:"1200"`
	DatasetRows int `json:"dataset_rows" example:"65437"`
}

// DatasetResult describes the loaded table
type DatasetResult struct {
	survey.Info
	Ages       int `json:"ages"        example:"8"`
	EdLevels   int `json:"ed_levels"   example:"8"`
	Employment int `json:"employment"  example:"9"`
	DevStatus  int `json:"dev_status"  example:"5"`
}
