package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline Prometheus metrics: ingestion, AI providers, search.
var (
	IngestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "ingest_total",
			Help:      "Total number of photo ingestions",
		},
		[]string{"status"}, // "success" / "error"
	)

	DetectorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "detector_requests_total",
			Help:      "Total number of label detection requests",
		},
		[]string{"model", "status"},
	)

	DetectorRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "photodex",
			Name:      "detector_request_duration_seconds",
			Help:      "Label detection request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"},
	)

	ResolverRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "resolver_requests_total",
			Help:      "Total number of intent resolution requests",
		},
		[]string{"model", "status"},
	)

	ResolverRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "photodex",
			Name:      "resolver_request_duration_seconds",
			Help:      "Intent resolution request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "photodex",
			Name:      "search_queries_total",
			Help:      "Total number of search queries",
		},
		[]string{"outcome"}, // "results" / "empty" / "degraded"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(IngestTotal)
	prometheus.MustRegister(DetectorRequestsTotal)
	prometheus.MustRegister(DetectorRequestDuration)
	prometheus.MustRegister(ResolverRequestsTotal)
	prometheus.MustRegister(ResolverRequestDuration)
	prometheus.MustRegister(SearchQueriesTotal)
	pipelineMetricsRegistered = true
}
