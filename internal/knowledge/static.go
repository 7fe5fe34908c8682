package knowledge

import (
	"fmt"
	"strings"

	"github.com/explainwell/concept-evaluator/internal/domain"
)

// StaticProvider serves knowledge records straight from the catalog.
type StaticProvider struct {
	catalog *Catalog
}

// NewStaticProvider wraps a loaded catalog.
func NewStaticProvider(c *Catalog) *StaticProvider {
	return &StaticProvider{catalog: c}
}

// Resolve looks the concept up in the catalog. An absent concept returns
// ErrConceptUnknown; callers are expected to fall back to DegradedRecord
// rather than abort the analysis.
func (p *StaticProvider) Resolve(_ domain.Context, conceptID, _ string) (domain.KnowledgeRecord, error) {
	def, ok := p.catalog.Get(conceptID)
	if !ok {
		return domain.KnowledgeRecord{}, fmt.Errorf("%w: %q", domain.ErrConceptUnknown, conceptID)
	}
	rec := domain.KnowledgeRecord{
		ConceptID:      def.ID,
		Origin:         domain.OriginCatalog,
		Title:          def.Name,
		Summary:        def.Description,
		KeyTerms:       def.KeyTerms,
		Prerequisites:  def.Prerequisites,
		Applications:   def.Applications,
		Misconceptions: def.CommonMisconceptions,
		Difficulty:     def.DifficultyLevel,
	}
	for _, id := range p.catalog.Related(def.ID) {
		rec.Related = append(rec.Related, domain.RelatedDocument{
			Title: strings.ReplaceAll(id, "_", " "),
		})
	}
	return rec, nil
}

// Related exposes the catalog's concept graph for the aggregate analysis.
func (p *StaticProvider) Related(conceptID string) []string {
	return p.catalog.Related(conceptID)
}

// Definition returns the raw catalog entry, if present.
func (p *StaticProvider) Definition(conceptID string) (domain.ConceptDefinition, bool) {
	return p.catalog.Get(conceptID)
}

// DegradedRecord is the fixed fallback substituted when a static concept
// is unknown. Scoring over it yields a usable, low-confidence result.
func DegradedRecord(conceptID string) domain.KnowledgeRecord {
	return domain.KnowledgeRecord{
		ConceptID: NormalizeID(conceptID),
		Origin:    domain.OriginCatalog,
		Title:     conceptID,
		Degraded:  true,
	}
}
