package knowledge

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/explainwell/concept-evaluator/internal/domain"
	"github.com/explainwell/concept-evaluator/internal/textproc"
	"github.com/explainwell/concept-evaluator/pkg/textx"
)

// maxBodyChars bounds how much of a fetched document body participates
// in concept extraction. Full articles are long; the lead plus this much
// body is enough signal for term frequency ranking.
const maxBodyChars = 2000

// searchLimit is how many search hits to consider for the main document.
const searchLimit = 5

// DocumentaryProvider synthesizes knowledge records from freshly fetched
// reference documents instead of the curated catalog.
type DocumentaryProvider struct {
	fetcher domain.ReferenceFetcher
}

// NewDocumentaryProvider wraps a reference fetcher.
func NewDocumentaryProvider(f domain.ReferenceFetcher) *DocumentaryProvider {
	return &DocumentaryProvider{fetcher: f}
}

// Resolve searches for the topic, fetches the best match, and reduces it
// to a KnowledgeRecord. When a subject is given, one extra lookup finds a
// related document for the feedback composer. A topic with no matching
// document is an analysis-level failure: there is no structural knowledge
// to degrade to.
func (p *DocumentaryProvider) Resolve(ctx domain.Context, topic, subject string) (domain.KnowledgeRecord, error) {
	titles, err := p.fetcher.Search(ctx, topic, searchLimit)
	if err != nil {
		return domain.KnowledgeRecord{}, fmt.Errorf("search %q: %w", topic, err)
	}
	if len(titles) == 0 {
		return domain.KnowledgeRecord{}, fmt.Errorf("%w: no articles for %q", domain.ErrReferenceNotFound, topic)
	}

	// The fetcher's own error taxonomy passes through: a missing page is
	// ErrReferenceNotFound, an outage stays ErrServiceUnavailable.
	doc, err := p.fetcher.Fetch(ctx, titles[0])
	if err != nil {
		return domain.KnowledgeRecord{}, fmt.Errorf("fetch %q: %w", titles[0], err)
	}

	body := textx.Truncate(doc.Body, maxBodyChars)

	rec := domain.KnowledgeRecord{
		ConceptID:   NormalizeID(topic),
		Origin:      domain.OriginReference,
		Title:       doc.Title,
		Summary:     doc.Summary,
		Body:        body,
		SourceURL:   doc.URL,
		KeyConcepts: textproc.ExtractKeyConcepts(doc.Summary + "\n" + body),
		Sections:    SplitSections(doc.Body),
	}
	// Documentary records have no curated term list; the extracted
	// concept set plays that role for coverage scoring.
	rec.KeyTerms = rec.KeyConcepts

	if subject != "" {
		rec.Related = p.relatedDocuments(ctx, topic, subject)
	}
	return rec, nil
}

// relatedDocuments performs the single optional related-document lookup.
// Failures here never fail the analysis; the record just has no related
// entries.
func (p *DocumentaryProvider) relatedDocuments(ctx domain.Context, topic, subject string) []domain.RelatedDocument {
	titles, err := p.fetcher.Search(ctx, topic+" "+subject, 3)
	if err != nil {
		slog.Warn("related document search failed", slog.String("topic", topic), slog.String("subject", subject), slog.Any("error", err))
		return nil
	}
	for _, title := range titles {
		// Skip the main article itself.
		if strings.EqualFold(title, topic) {
			continue
		}
		// At most one extra fetch per analysis; a failed candidate is
		// not retried against the remaining titles.
		doc, err := p.fetcher.Fetch(ctx, title)
		if err != nil {
			slog.Warn("related document fetch failed", slog.String("title", title), slog.Any("error", err))
			return nil
		}
		return []domain.RelatedDocument{{Title: doc.Title, URL: doc.URL}}
	}
	return nil
}

// Overview fetches a topic and returns its quick summary shape.
func (p *DocumentaryProvider) Overview(ctx domain.Context, topic string) (domain.TopicOverview, error) {
	rec, err := p.Resolve(ctx, topic, "")
	if err != nil {
		return domain.TopicOverview{}, err
	}
	concepts := rec.KeyConcepts
	if len(concepts) > 10 {
		concepts = concepts[:10]
	}
	sections := make([]string, 0, len(rec.Sections))
	for _, s := range rec.Sections {
		sections = append(sections, s.Title)
	}
	if len(sections) > 5 {
		sections = sections[:5]
	}
	return domain.TopicOverview{
		Title:       rec.Title,
		Summary:     rec.Summary,
		URL:         rec.SourceURL,
		KeyConcepts: concepts,
		Sections:    sections,
	}, nil
}
