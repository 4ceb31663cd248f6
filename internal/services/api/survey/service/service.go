// Package service contains survey workflows
package service

import (
	"context"
	"time"

	"devsurvey/internal/core/survey"
	perr "devsurvey/internal/platform/errors"
	"devsurvey/internal/platform/logger"
	"devsurvey/internal/platform/metrics"
	"devsurvey/internal/services/api/survey/domain"
)

// Service defines the survey service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the survey service over one loaded table
type Svc struct {
	table   *survey.Table
	vocab   survey.Vocabulary
	metrics *metrics.Metrics
}

// New constructs a survey service
func New(table *survey.Table, m *metrics.Metrics) *Svc {
	if table == nil {
		panic("survey.Service requires a non nil Table")
	}
	if m == nil {
		m = metrics.Get()
	}
	return &Svc{table: table, vocab: table.Vocabulary(), metrics: m}
}

// Filters returns the control vocabularies and the selections a fresh dashboard starts from
func (s *Svc) Filters(_ context.Context) domain.FiltersResult {
	return domain.FiltersResult{
		DatasetID:  s.table.Info().ID,
		Vocabulary: s.table.Vocabulary(),
		Defaults:   survey.Defaults(s.vocab),
	}
}

// Tabs lists the dashboard tabs and their panels
func (s *Svc) Tabs(_ context.Context) domain.TabsResult {
	out := domain.TabsResult{Default: survey.DefaultTab, Tabs: make([]domain.TabInfo, 0, len(survey.Tabs))}
	for _, t := range survey.Tabs {
		defs := t.Metrics()
		ids := make([]string, 0, len(defs))
		for _, d := range defs {
			ids = append(ids, d.ID)
		}
		out.Tabs = append(out.Tabs, domain.TabInfo{ID: t, Label: t.Label(), Metrics: ids})
	}
	return out
}

// Tab filters once and renders one tab
func (s *Svc) Tab(ctx context.Context, tab string, in domain.SpecInput) (domain.TabResult, error) {
	t, err := survey.ParseTab(tab)
	if err != nil {
		return domain.TabResult{}, err
	}
	v, err := s.view(in)
	if err != nil {
		return domain.TabResult{}, err
	}

	start := time.Now()
	res := render(v, t)
	s.observe(ctx, string(t), v.Len(), time.Since(start))
	return res, nil
}

// Dashboard renders every requested tab from one filtered view so a tab switch with
// unchanged filters sees the same records
func (s *Svc) Dashboard(ctx context.Context, in domain.DashboardInput) (domain.DashboardResult, error) {
	tabs, err := parseTabs(in.Tabs)
	if err != nil {
		return domain.DashboardResult{}, err
	}
	v, err := s.view(in.Filters)
	if err != nil {
		return domain.DashboardResult{}, err
	}

	out := domain.DashboardResult{
		DatasetID: s.table.Info().ID,
		Records:   v.Len(),
		Tabs:      make([]domain.TabResult, 0, len(tabs)),
	}
	for _, t := range tabs {
		start := time.Now()
		out.Tabs = append(out.Tabs, render(v, t))
		s.observe(ctx, string(t), v.Len(), time.Since(start))
	}
	return out, nil
}

// Aggregate runs one ranked count over any categorical column
func (s *Svc) Aggregate(ctx context.Context, in domain.AggregateInput) (domain.AggregateResult, error) {
	col, err := survey.ParseColumn(in.Column)
	if err != nil {
		return domain.AggregateResult{}, err
	}
	if !col.Categorical() {
		return domain.AggregateResult{}, perr.WithField(perr.InvalidArgf("column %s is not categorical", col), "column")
	}
	if in.Split && !col.Multi() {
		return domain.AggregateResult{}, perr.WithField(perr.InvalidArgf("column %s holds single values", col), "split")
	}
	v, err := s.view(in.Filters)
	if err != nil {
		return domain.AggregateResult{}, err
	}

	q := survey.Query{Column: col, Split: in.Split, Limit: survey.TopN}
	if in.Limit != nil {
		q.Limit = *in.Limit
	}
	if in.DisplayNames && col == survey.ColCountry {
		q.Remap = survey.CountryDisplayNames()
	}

	start := time.Now()
	rows := survey.Aggregate(v, q)
	s.observe(ctx, "aggregate", v.Len(), time.Since(start))

	return domain.AggregateResult{
		Column:  col,
		Split:   in.Split,
		Records: v.Len(),
		Total:   survey.Total(rows),
		Rows:    rows,
	}, nil
}

// Count reports how many records pass the filters
func (s *Svc) Count(_ context.Context, in domain.SpecInput) (domain.CountResult, error) {
	v, err := s.view(in)
	if err != nil {
		return domain.CountResult{}, err
	}
	return domain.CountResult{Records: v.Len(), DatasetRows: s.table.Len()}, nil
}

// Dataset describes the loaded table
func (s *Svc) Dataset(_ context.Context) domain.DatasetResult {
	return domain.DatasetResult{
		Info:       s.table.Info(),
		Ages:       len(s.vocab.Ages),
		EdLevels:   len(s.vocab.EdLevels),
		Employment: len(s.vocab.Employment),
		DevStatus:  len(s.vocab.DevStatus),
	}
}

func (s *Svc) view(spec survey.FilterSpec) (survey.View, error) {
	if err := spec.Check(s.vocab); err != nil {
		return survey.View{}, err
	}
	return survey.Filter(s.table, spec), nil
}

func (s *Svc) observe(ctx context.Context, tab string, records int, elapsed time.Duration) {
	s.metrics.RecordPipeline(tab, records, elapsed)
	logger.C(ctx).Debug().
		Str("tab", tab).
		Int("records", records).
		Dur("elapsed", elapsed).
		Msg("survey rendered")
}

func render(v survey.View, t survey.Tab) domain.TabResult {
	return domain.TabResult{
		Tab:     t,
		Label:   t.Label(),
		Records: v.Len(),
		Metrics: survey.Dispatch(v, t),
	}
}

// parseTabs defaults to the opening tab and drops repeats
func parseTabs(in []string) ([]survey.Tab, error) {
	if len(in) == 0 {
		return []survey.Tab{survey.DefaultTab}, nil
	}
	out := make([]survey.Tab, 0, len(in))
	seen := map[survey.Tab]bool{}
	for _, raw := range in {
		t, err := survey.ParseTab(raw)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
