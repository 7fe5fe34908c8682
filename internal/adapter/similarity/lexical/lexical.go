// Package lexical implements a deterministic, offline similarity measure:
// cosine similarity over term-frequency vectors of lemmatized content
// tokens. It is the degradation target when the embeddings service is
// unreachable, and the sole measure when none is configured.
package lexical

import (
	"math"

	"github.com/explainwell/concept-evaluator/internal/domain"
	"github.com/explainwell/concept-evaluator/internal/textproc"
)

// Service computes lexical-overlap similarity. Stateless.
type Service struct{}

// New returns a lexical similarity service.
func New() *Service { return &Service{} }

// Similarity returns the cosine of the two texts' term-frequency vectors
// in [0,1]. Texts with no content terms in common score 0.
func (s *Service) Similarity(_ domain.Context, a, b string) (float64, error) {
	va := termVector(a)
	vb := termVector(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0, nil
	}

	var dot, na, nb float64
	for term, fa := range va {
		na += fa * fa
		if fb, ok := vb[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range vb {
		nb += fb * fb
	}
	if dot == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

func termVector(text string) map[string]float64 {
	vocab := map[string]bool{}
	for _, term := range textproc.ExtractKeyConcepts(text) {
		vocab[term] = true
	}
	vec := map[string]float64{}
	for _, tok := range textproc.Tokenize(text) {
		lemma := textproc.Lemma(tok)
		if vocab[lemma] {
			vec[lemma]++
		}
	}
	return vec
}
