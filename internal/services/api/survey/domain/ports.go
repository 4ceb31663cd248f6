package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Filters(ctx context.Context) FiltersResult
	Tabs(ctx context.Context) TabsResult
	Tab(ctx context.Context, tab string, in SpecInput) (TabResult, error)
	Dashboard(ctx context.Context, in DashboardInput) (DashboardResult, error)
	Aggregate(ctx context.Context, in AggregateInput) (AggregateResult, error)
	Count(ctx context.Context, in SpecInput) (CountResult, error)
	DatasetPort
}

// DatasetPort exposes the loaded table to meta endpoints
type DatasetPort interface {
	Dataset(ctx context.Context) DatasetResult
}
