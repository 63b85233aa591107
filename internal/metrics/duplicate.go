package metrics

import "github.com/prometheus/client_golang/prometheus"

// Duplicate detection Prometheus metrics.
var (
	DuplicateRetrievalDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duplicate_retrieval_duration_seconds",
			Help:      "Candidate retrieval duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"backend"},
	)

	DuplicateRetrievalErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_retrieval_errors_total",
			Help:      "Total candidate retrieval errors",
		},
		[]string{"backend"},
	)

	DuplicateCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duplicate_candidates",
			Help:      "Candidates returned by retrieval per request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 35, 50},
		},
		[]string{"backend"},
	)

	DuplicateMatches = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duplicate_matches",
			Help:      "Matches returned per request after thresholding",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"type"},
	)
)

var dupMetricsRegistered bool

// RegisterDuplicateMetrics registers duplicate detection metrics. Must be called once from main.
func RegisterDuplicateMetrics() {
	if dupMetricsRegistered {
		return
	}
	prometheus.MustRegister(DuplicateRetrievalDuration)
	prometheus.MustRegister(DuplicateRetrievalErrorsTotal)
	prometheus.MustRegister(DuplicateCandidates)
	prometheus.MustRegister(DuplicateMatches)
	dupMetricsRegistered = true
}
