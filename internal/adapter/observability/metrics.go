package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total number of analyses by knowledge origin and classification",
		},
		[]string{"origin", "classification"},
	)
	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Analysis duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"origin"},
	)

	ExternalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Total number of external requests by provider and operation",
		},
		[]string{"provider", "operation"},
	)
	ExternalRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "External request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"provider", "operation"},
	)

	SimilarityFallbackTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "similarity_fallback_total",
			Help: "Times the lexical similarity fallback served in place of the remote service",
		},
	)

	// Score distributions
	CoverageScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_coverage_score",
			Help:    "Distribution of coverage_score ([0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
	CorrectnessScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_correctness_score",
			Help:    "Distribution of correctness_score ([0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers all metrics once per process.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(AnalysesTotal)
		prometheus.MustRegister(AnalysisDuration)
		prometheus.MustRegister(ExternalRequestsTotal)
		prometheus.MustRegister(ExternalRequestDuration)
		prometheus.MustRegister(SimilarityFallbackTotal)
		prometheus.MustRegister(CoverageScoreHistogram)
		prometheus.MustRegister(CorrectnessScoreHistogram)
	})
}
