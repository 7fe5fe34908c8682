// Package scoring implements the multi-factor heuristic pipeline that
// turns extracted text features plus a knowledge record into the five
// calibrated sub-scores, the concept comparison sets, and the final
// classification.
package scoring

import (
	"strings"

	"github.com/samber/lo"

	"github.com/explainwell/concept-evaluator/internal/domain"
	"github.com/explainwell/concept-evaluator/internal/textproc"
)

// displayCap bounds the comparison lists returned to callers.
const displayCap = 10

// Classification thresholds. Branch order matters: the understood branch
// is checked before misconception severity, so a text meeting both the
// correctness and coverage bars is never labeled misunderstood.
const (
	understoodCorrectness = 0.7
	understoodCoverage    = 0.6
	misunderstoodSeverity = 0.3
)

// Engine computes scores for one (text, concept) pair at a time. It has
// no mutable state; a single Engine is safe for concurrent use.
type Engine struct {
	similarity domain.SimilarityService
}

// NewEngine builds an engine around a similarity service. The service is
// only consulted for documentary-mode concept comparison.
func NewEngine(sim domain.SimilarityService) *Engine {
	return &Engine{similarity: sim}
}

// Evaluate produces the full sub-score set for a text against a
// knowledge record. Pure: no I/O, no randomness.
func (e *Engine) Evaluate(text string, feats domain.TextFeatures, rec domain.KnowledgeRecord) domain.ScoreResult {
	if rec.Degraded {
		return degradedResult()
	}

	lower := strings.ToLower(text)
	extracted := make([]string, 0, len(feats.KeyTerms)+len(feats.TechnicalPhrases))
	extracted = append(extracted, feats.KeyTerms...)
	extracted = append(extracted, feats.TechnicalPhrases...)

	coverage, matched, missing := termCoverage(extracted, rec.KeyTerms)
	quality, causal, examples := understandingQuality(lower, feats.Tokens, rec)
	severity, found, uncertainty := misconceptionSeverity(lower, feats.Tokens, rec)
	completeness, missingAspects := completenessScore(feats)

	// Misconceptions discount quality multiplicatively: a confident but
	// wrong explanation must score low even with strong surface quality.
	correctness := clamp01(quality * (1 - severity))

	return domain.ScoreResult{
		CoverageScore:         coverage,
		QualityScore:          quality,
		CorrectnessScore:      correctness,
		CompletenessScore:     completeness,
		MisconceptionSeverity: severity,
		ConfidenceScore:       confidenceScore(causal, examples, severity, uncertainty),
		MatchedTerms:          matched,
		MissingTerms:          missing,
		MisconceptionsFound:   found,
		MissingAspects:        missingAspects,
		HasCausalReasoning:    causal,
		HasExamples:           examples,
		UncertaintyCount:      uncertainty,
		HighUncertainty:       uncertainty > 2,
		Classification:        Classify(correctness, coverage, severity),
	}
}

// CompareConcepts builds the symmetric-difference view of the student's
// extracted concepts against the reference's, with one similarity call
// over (student text, reference summary).
func (e *Engine) CompareConcepts(ctx domain.Context, studentText string, rec domain.KnowledgeRecord) (domain.ConceptComparison, error) {
	student := textproc.ExtractKeyConcepts(studentText)
	reference := rec.KeyConcepts

	correct := lo.Intersect(student, reference)
	missing := lo.Without(reference, student...)
	extra := lo.Without(student, reference...)

	sim, err := e.textSimilarity(ctx, studentText, rec.Summary)
	if err != nil {
		return domain.ConceptComparison{}, err
	}
	return domain.ConceptComparison{
		CorrectConcepts: capList(correct),
		MissingConcepts: capList(missing),
		ExtraConcepts:   capList(extra),
		SimilarityScore: sim,
	}, nil
}

// textSimilarity short-circuits blank inputs to 0.0 without invoking the
// service.
func (e *Engine) textSimilarity(ctx domain.Context, a, b string) (float64, error) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0.0, nil
	}
	sim, err := e.similarity.Similarity(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return clamp01(sim), nil
}

// Classify applies the three-way priority order. First matching branch
// wins; missing is the default.
func Classify(correctness, coverage, severity float64) domain.Classification {
	switch {
	case correctness >= understoodCorrectness && coverage >= understoodCoverage:
		return domain.ClassUnderstood
	case severity > misunderstoodSeverity:
		return domain.ClassMisunderstood
	default:
		return domain.ClassMissing
	}
}

// termCoverage matches each record key term against the extracted terms
// by case-insensitive substring in either direction, and partitions the
// key terms into matched and missing.
func termCoverage(extracted, keyTerms []string) (float64, []string, []string) {
	keys := lo.Uniq(lo.Map(keyTerms, func(t string, _ int) string { return strings.ToLower(t) }))
	if len(keys) == 0 {
		return 0, nil, nil
	}
	lowerExtracted := lo.Map(extracted, func(t string, _ int) string { return strings.ToLower(t) })

	var matched, missing []string
	for _, key := range keys {
		hit := false
		for _, ext := range lowerExtracted {
			if strings.Contains(ext, key) || strings.Contains(key, ext) {
				hit = true
				break
			}
		}
		if hit {
			matched = append(matched, key)
		} else {
			missing = append(missing, key)
		}
	}
	return float64(len(matched)) / float64(len(keys)), matched, missing
}

// understandingQuality scores the strongest reasoning tier present, then
// adds flat bonuses for mentioned applications and prerequisites.
func understandingQuality(lower string, tokens []string, rec domain.KnowledgeRecord) (float64, bool, bool) {
	score := 0.0
	if anyIndicator(lower, tokens, strongIndicators) {
		score = strongTierScore
	} else if anyIndicator(lower, tokens, mediumIndicators) {
		score = mediumTierScore
	} else if anyIndicator(lower, tokens, weakIndicators) {
		score = weakTierScore
	}

	for _, app := range rec.Applications {
		if strings.Contains(lower, strings.ToLower(app)) {
			score += 0.1
			break
		}
	}
	for _, prereq := range rec.Prerequisites {
		phrase := strings.ReplaceAll(strings.ToLower(prereq), "_", " ")
		if strings.Contains(lower, phrase) {
			score += 0.1
			break
		}
	}

	causal := anyIndicator(lower, tokens, causalIndicators)
	examples := anyIndicator(lower, tokens, exampleIndicators)
	return clamp01(score), causal, examples
}

// misconceptionSeverity accumulates penalties from absolutist language,
// matched known misconceptions, and heavy hedging. Capped at 1.0.
func misconceptionSeverity(lower string, tokens []string, rec domain.KnowledgeRecord) (float64, []string, int) {
	severity := 0.0
	var found []string

	for _, ind := range absolutistIndicators {
		if matchIndicator(lower, tokens, ind) {
			found = append(found, ind)
			severity += 0.1
		}
	}

	// A misconception fires on any of its distinctive words. Function
	// words and the concept's own key-term vocabulary are excluded so a
	// correct explanation cannot trip a misconception merely by naming
	// the concept.
	ownVocabulary := keyTermWords(rec.KeyTerms)
	for _, misconception := range rec.Misconceptions {
		for _, word := range strings.Fields(strings.ToLower(misconception)) {
			if len(word) <= 3 {
				continue
			}
			if _, ok := functionWords[word]; ok {
				continue
			}
			if _, ok := ownVocabulary[word]; ok {
				continue
			}
			if !matchIndicator(lower, tokens, word) {
				continue
			}
			found = append(found, misconception)
			severity += 0.3
			break
		}
	}

	uncertainty := 0
	for _, ind := range uncertaintyIndicators {
		if matchIndicator(lower, tokens, ind) {
			uncertainty++
		}
	}
	if uncertainty > 2 {
		severity += 0.2
		found = append(found, "high_uncertainty")
	}

	if severity > 1.0 {
		severity = 1.0
	}
	return severity, found, uncertainty
}

// completenessScore is a weighted sum over the structural criteria plus
// the length threshold; each absent criterion becomes a named aspect for
// the feedback composer.
func completenessScore(feats domain.TextFeatures) (float64, []string) {
	score := 0.0
	var missing []string
	if feats.HasDefinition {
		score += 0.3
	} else {
		missing = append(missing, "definition")
	}
	if feats.HasExamples {
		score += 0.2
	} else {
		missing = append(missing, "examples")
	}
	if feats.HasProcess {
		score += 0.2
	} else {
		missing = append(missing, "process_description")
	}
	if feats.HasComparisons {
		score += 0.1
	} else {
		missing = append(missing, "comparisons")
	}
	if feats.WordCount >= 50 {
		score += 0.2
	} else {
		missing = append(missing, "sufficient_detail")
	}
	return clamp01(score), missing
}

// confidenceScore is the engine's self-assessed reliability, never 0 and
// never exactly 1.
func confidenceScore(causal, examples bool, severity float64, uncertainty int) float64 {
	confidence := 0.7
	if causal {
		confidence += 0.1
	}
	if examples {
		confidence += 0.1
	}
	confidence -= severity * 0.3
	if uncertainty > 1 {
		confidence -= 0.2
	}
	if confidence < 0.1 {
		return 0.1
	}
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}

// degradedResult is the fixed midpoint analysis for an unknown concept.
func degradedResult() domain.ScoreResult {
	return domain.ScoreResult{
		CoverageScore:     0.5,
		QualityScore:      0.5,
		CorrectnessScore:  0.5,
		CompletenessScore: 0.5,
		ConfidenceScore:   0.3,
		Classification:    Classify(0.5, 0.5, 0),
		Degraded:          true,
	}
}

// keyTermWords flattens a record's key terms into the set of individual
// lowercased words they contain.
func keyTermWords(keyTerms []string) map[string]struct{} {
	words := map[string]struct{}{}
	for _, term := range keyTerms {
		for _, w := range strings.Fields(strings.ToLower(term)) {
			words[w] = struct{}{}
		}
	}
	return words
}

func anyIndicator(lower string, tokens []string, indicators []string) bool {
	for _, ind := range indicators {
		if matchIndicator(lower, tokens, ind) {
			return true
		}
	}
	return false
}

// matchIndicator matches multi-word indicators by substring and single
// words by token membership, so "is" cannot fire inside "this".
func matchIndicator(lower string, tokens []string, indicator string) bool {
	if strings.ContainsRune(indicator, ' ') {
		return strings.Contains(lower, indicator)
	}
	for _, tok := range tokens {
		if tok == indicator {
			return true
		}
	}
	return false
}

func capList(list []string) []string {
	if len(list) > displayCap {
		return list[:displayCap]
	}
	return list
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
