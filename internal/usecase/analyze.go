// Package usecase contains application business logic services.
package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"log/slog"

	"github.com/explainwell/concept-evaluator/internal/adapter/observability"
	"github.com/explainwell/concept-evaluator/internal/domain"
	"github.com/explainwell/concept-evaluator/internal/feedback"
	"github.com/explainwell/concept-evaluator/internal/knowledge"
	"github.com/explainwell/concept-evaluator/internal/scoring"
	"github.com/explainwell/concept-evaluator/internal/textproc"
	"github.com/explainwell/concept-evaluator/pkg/textx"
)

// AnalyzeRequest carries one explanation to evaluate.
type AnalyzeRequest struct {
	Text      string `validate:"required,min=1,max=5000"`
	ConceptID string `validate:"required"`
	Subject   string
}

// TopicOverviewer is the optional documentary-mode port for topic
// overviews. Static deployments leave it nil.
type TopicOverviewer interface {
	Overview(ctx domain.Context, topic string) (domain.TopicOverview, error)
}

// Analyzer orchestrates one analysis: resolve the reference, extract
// text features, score, compare, and compose feedback.
type Analyzer struct {
	Knowledge domain.KnowledgeProvider
	Engine    *scoring.Engine
	Overviews TopicOverviewer

	validate *validator.Validate
}

// NewAnalyzer constructs an Analyzer with its dependencies. overviews
// may be nil when the deployment has no documentary provider.
func NewAnalyzer(k domain.KnowledgeProvider, e *scoring.Engine, overviews TopicOverviewer) Analyzer {
	return Analyzer{Knowledge: k, Engine: e, Overviews: overviews, validate: validator.New()}
}

// Analyze evaluates one explanation against its concept's reference
// record. An unknown catalog concept degrades to a neutral analysis
// rather than failing; reference lookups that cannot complete fail with
// the fetcher's error.
func (a Analyzer) Analyze(ctx domain.Context, req AnalyzeRequest) (domain.Analysis, error) {
	req.Text = textx.SanitizeText(req.Text)
	if err := a.validate.Struct(req); err != nil {
		return domain.Analysis{}, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	start := time.Now()

	rec, err := a.Knowledge.Resolve(ctx, req.ConceptID, req.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrConceptUnknown) {
			return domain.Analysis{}, fmt.Errorf("resolve %q: %w", req.ConceptID, err)
		}
		slog.Warn("concept not in catalog, producing degraded analysis", slog.String("concept_id", req.ConceptID))
		rec = knowledge.DegradedRecord(req.ConceptID)
	}

	feats := textproc.Extract(req.Text)
	scores := a.Engine.Evaluate(req.Text, feats, rec)

	var cmp *domain.ConceptComparison
	if rec.Origin == domain.OriginReference {
		comparison, err := a.Engine.CompareConcepts(ctx, req.Text, rec)
		if err != nil {
			return domain.Analysis{}, fmt.Errorf("compare concepts for %q: %w", req.ConceptID, err)
		}
		cmp = &comparison
	}

	var missingPrereqs []string
	if rec.Origin == domain.OriginCatalog && !rec.Degraded {
		missingPrereqs = missingPrerequisites(req.Text, rec.Prerequisites)
	}

	topic := strings.ReplaceAll(strings.TrimSpace(req.ConceptID), "_", " ")
	fb, suggestions := feedback.Compose(topic, rec, scores, cmp)

	observability.AnalysesTotal.WithLabelValues(rec.Origin, string(scores.Classification)).Inc()
	observability.AnalysisDuration.WithLabelValues(rec.Origin).Observe(time.Since(start).Seconds())
	observability.CoverageScoreHistogram.Observe(scores.CoverageScore)
	observability.CorrectnessScoreHistogram.Observe(scores.CorrectnessScore)

	return domain.Analysis{
		ID:                   ulid.Make().String(),
		Topic:                topic,
		Subject:              req.Subject,
		ReferenceTitle:       rec.Title,
		ReferenceURL:         rec.SourceURL,
		Scores:               scores,
		Comparison:           cmp,
		Feedback:             fb,
		Suggestions:          suggestions,
		MissingPrerequisites: missingPrereqs,
		KeyTerms:             feats.KeyTerms,
		WordCount:            feats.WordCount,
		SentenceCount:        feats.SentenceCount,
	}, nil
}

// missingPrerequisites returns up to three prerequisite concepts the
// explanation never mentions, most fundamental first.
func missingPrerequisites(text string, prerequisites []string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, prereq := range prerequisites {
		phrase := strings.ReplaceAll(strings.ToLower(prereq), "_", " ")
		if strings.Contains(lower, phrase) {
			continue
		}
		out = append(out, phrase)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// Overview returns a quick topic overview. Only available when a
// documentary provider is configured.
func (a Analyzer) Overview(ctx domain.Context, topic string) (domain.TopicOverview, error) {
	if strings.TrimSpace(topic) == "" {
		return domain.TopicOverview{}, fmt.Errorf("%w: topic required", domain.ErrInvalidArgument)
	}
	if a.Overviews == nil {
		return domain.TopicOverview{}, fmt.Errorf("%w: overview requires documentary mode", domain.ErrInvalidArgument)
	}
	return a.Overviews.Overview(ctx, topic)
}
