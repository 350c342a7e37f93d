package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	DatasetsIngested prometheus.Counter
	CleaningRuns     prometheus.Counter
	AnalysisRequests *prometheus.CounterVec
	ExportRuns       *prometheus.CounterVec
	IngestedRows     prometheus.Histogram
}

// NewMetrics registers the service collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DatasetsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "datalens_datasets_ingested_total",
			Help: "Number of datasets accepted for assessment.",
		}),
		CleaningRuns: factory.NewCounter(prometheus.CounterOpts{
			Name: "datalens_cleaning_runs_total",
			Help: "Number of cleaning runs performed.",
		}),
		AnalysisRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datalens_analysis_requests_total",
			Help: "Analysis requests forwarded to the analytics engine, by outcome.",
		}, []string{"outcome"}),
		ExportRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datalens_export_runs_total",
			Help: "Dataset exports, by format.",
		}, []string{"format"}),
		IngestedRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "datalens_ingested_rows",
			Help:    "Row counts of ingested datasets.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
	}
}
