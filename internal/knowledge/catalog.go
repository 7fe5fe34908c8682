// Package knowledge provides the two knowledge providers the scoring
// engine draws reference records from: the embedded static catalog and
// the documentary provider backed by a reference fetcher.
package knowledge

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/explainwell/concept-evaluator/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Concepts     map[string]conceptYAML `yaml:"concepts"`
	Dependencies map[string][]string    `yaml:"dependencies"`
	Subjects     map[string][]string    `yaml:"subjects"`
}

type conceptYAML struct {
	Name                 string   `yaml:"name"`
	Description          string   `yaml:"description"`
	KeyTerms             []string `yaml:"key_terms"`
	Prerequisites        []string `yaml:"prerequisites"`
	Applications         []string `yaml:"applications"`
	CommonMisconceptions []string `yaml:"common_misconceptions"`
	DifficultyLevel      int      `yaml:"difficulty_level"`
}

// Catalog is the immutable, process-wide concept table. Safe for
// concurrent reads; there is no mutation path after LoadCatalog.
type Catalog struct {
	concepts     map[string]domain.ConceptDefinition
	dependencies map[string][]string
	subjects     map[string][]string
}

// LoadCatalog parses the embedded catalog file.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse catalog: %v", domain.ErrInternal, err)
	}
	if len(f.Concepts) == 0 {
		return nil, fmt.Errorf("%w: catalog has no concepts", domain.ErrInternal)
	}
	c := &Catalog{
		concepts:     make(map[string]domain.ConceptDefinition, len(f.Concepts)),
		dependencies: f.Dependencies,
		subjects:     f.Subjects,
	}
	for id, cy := range f.Concepts {
		id = NormalizeID(id)
		if cy.DifficultyLevel < 1 || cy.DifficultyLevel > 5 {
			return nil, fmt.Errorf("%w: concept %q: difficulty %d out of range", domain.ErrInternal, id, cy.DifficultyLevel)
		}
		c.concepts[id] = domain.ConceptDefinition{
			ID:                   id,
			Name:                 cy.Name,
			Description:          cy.Description,
			KeyTerms:             cy.KeyTerms,
			Prerequisites:        cy.Prerequisites,
			Applications:         cy.Applications,
			CommonMisconceptions: cy.CommonMisconceptions,
			DifficultyLevel:      cy.DifficultyLevel,
		}
	}
	return c, nil
}

// NormalizeID canonicalizes a concept identifier: lower-case, with
// spaces and hyphens collapsed to underscores.
func NormalizeID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "-", "_")
	return id
}

// Get looks up a concept by normalized identifier.
func (c *Catalog) Get(id string) (domain.ConceptDefinition, bool) {
	def, ok := c.concepts[NormalizeID(id)]
	return def, ok
}

// IDs returns all concept identifiers in sorted order.
func (c *Catalog) IDs() []string {
	ids := lo.Keys(c.concepts)
	sort.Strings(ids)
	return ids
}

// Related returns the prerequisites of a concept plus the concepts that
// depend on it, deduplicated.
func (c *Catalog) Related(id string) []string {
	id = NormalizeID(id)
	var related []string
	related = append(related, c.dependencies[id]...)
	for concept, deps := range c.dependencies {
		if lo.Contains(deps, id) {
			related = append(related, concept)
		}
	}
	related = lo.Uniq(related)
	sort.Strings(related)
	return related
}

// BySubject returns the concept identifiers grouped under a subject.
func (c *Catalog) BySubject(subject string) []string {
	return c.subjects[NormalizeID(subject)]
}
