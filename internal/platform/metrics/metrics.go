// Package metrics holds the prometheus collectors shared by the api and the survey pipeline
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prefix is prepended to every collector name
const Prefix = "devsurvey_"

var httpRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: Prefix + "http_requests_total",
		Help: "Number of HTTP requests by route, method and status",
	},
	[]string{"route", "method", "status"},
)

var httpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    Prefix + "http_request_duration_seconds",
		Help:    "HTTP request latency by route and method",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

var pipelineDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    Prefix + "pipeline_duration_seconds",
		Help:    "Time spent filtering and aggregating one request, by tab",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"tab"},
)

var filteredRecords = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    Prefix + "filtered_records",
		Help:    "Records left after applying the filter controls",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	},
)

var datasetRecords = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: Prefix + "dataset_records",
		Help: "Records in the loaded survey table",
	},
)

// Metrics records observations into the package collectors
type Metrics struct{}

var m = &Metrics{}

// Get returns the process wide recorder
func Get() *Metrics {
	return m
}

// RecordRequest counts one served request. route is the matched pattern, not the raw path
func (m *Metrics) RecordRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.With(prometheus.Labels{"route": route, "method": method, "status": strconv.Itoa(status)}).Inc()
	httpDuration.With(prometheus.Labels{"route": route, "method": method}).Observe(elapsed.Seconds())
}

// RecordPipeline observes one filter and aggregate pass
func (m *Metrics) RecordPipeline(tab string, records int, elapsed time.Duration) {
	pipelineDuration.With(prometheus.Labels{"tab": tab}).Observe(elapsed.Seconds())
	filteredRecords.Observe(float64(records))
}

// SetDatasetRecords publishes the size of the loaded table
func (m *Metrics) SetDatasetRecords(n int) {
	datasetRecords.Set(float64(n))
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
