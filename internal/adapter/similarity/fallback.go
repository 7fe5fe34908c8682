// Package similarity wires similarity services together.
package similarity

import (
	"log/slog"

	"github.com/explainwell/concept-evaluator/internal/adapter/observability"
	"github.com/explainwell/concept-evaluator/internal/domain"
)

// Fallback tries the primary service and degrades to the secondary when
// the primary fails. The secondary is expected to be local and
// infallible in practice (the lexical service).
type Fallback struct {
	Primary   domain.SimilarityService
	Secondary domain.SimilarityService
}

// NewFallback wraps primary with secondary as the degradation target.
func NewFallback(primary, secondary domain.SimilarityService) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary}
}

// Similarity delegates to the primary service, falling back to the
// secondary on error.
func (f *Fallback) Similarity(ctx domain.Context, a, b string) (float64, error) {
	sim, err := f.Primary.Similarity(ctx, a, b)
	if err == nil {
		return sim, nil
	}
	slog.Warn("primary similarity service failed, using lexical fallback", slog.Any("error", err))
	observability.SimilarityFallbackTotal.Inc()
	return f.Secondary.Similarity(ctx, a, b)
}
