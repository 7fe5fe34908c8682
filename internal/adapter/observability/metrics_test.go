package observability

import "testing"

func TestMetricsUsable(t *testing.T) {
	InitMetrics()
	AnalysesTotal.WithLabelValues("catalog", "understood").Inc()
	AnalysisDuration.WithLabelValues("catalog").Observe(0.01)
	ExternalRequestsTotal.WithLabelValues("wikipedia", "search").Inc()
	ExternalRequestDuration.WithLabelValues("wikipedia", "search").Observe(0.2)
	SimilarityFallbackTotal.Inc()
	CoverageScoreHistogram.Observe(0.5)
	CorrectnessScoreHistogram.Observe(0.5)
}

func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	InitMetrics()
}
