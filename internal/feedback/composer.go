// Package feedback renders score results into the four narrative fields
// and the ranked suggestion list. Pure and deterministic: identical
// inputs always produce identical strings, so outputs are golden-testable.
package feedback

import (
	"fmt"
	"strings"

	"github.com/explainwell/concept-evaluator/internal/domain"
)

const maxSuggestions = 5

// Similarity thresholds for suggestion selection.
const (
	lowSimilarity  = 0.3
	highSimilarity = 0.6
)

// sectionKeywords mark document sections worth pointing the student at.
var sectionKeywords = []string{"example", "application", "implementation", "algorithm"}

// Compose builds the narrative feedback and ranked suggestions for one
// analysis. cmp is nil in static (aggregate) mode.
func Compose(topic string, rec domain.KnowledgeRecord, scores domain.ScoreResult, cmp *domain.ConceptComparison) (domain.Feedback, []string) {
	if cmp != nil {
		return composeDocumentary(rec, scores, cmp)
	}
	return composeAggregate(topic, rec, scores)
}

func composeDocumentary(rec domain.KnowledgeRecord, scores domain.ScoreResult, cmp *domain.ConceptComparison) (domain.Feedback, []string) {
	var fb domain.Feedback

	if len(cmp.CorrectConcepts) > 0 {
		fb.WhatYouGotRight = fmt.Sprintf(
			"You correctly mentioned these key concepts: %s. Your explanation has %.1f%% similarity to the reference article.",
			joinTop(cmp.CorrectConcepts, 5), cmp.SimilarityScore*100)
	} else {
		fb.WhatYouGotRight = "Your explanation shows basic understanding, but didn't match key technical concepts from the reference material."
	}

	if len(cmp.MissingConcepts) > 0 {
		fb.WhatYouMissed = fmt.Sprintf(
			"Important concepts not mentioned: %s. These are key terms that appear in the reference article on this topic.",
			joinTop(cmp.MissingConcepts, 5))
	} else {
		fb.WhatYouMissed = "You covered most of the important concepts mentioned in the reference material."
	}

	if len(cmp.ExtraConcepts) > 0 {
		fb.PossibleConfusion = fmt.Sprintf(
			"You mentioned some concepts that aren't central to this topic: %s. These might be related but aren't the main focus of the reference.",
			joinTop(cmp.ExtraConcepts, 3))
	} else {
		fb.PossibleConfusion = "No major conceptual confusion detected in your explanation."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Study the reference article: %s (%s).", rec.Title, rec.SourceURL)
	if len(cmp.MissingConcepts) > 0 {
		fmt.Fprintf(&sb, " Focus on understanding: %s.", joinTop(cmp.MissingConcepts, 3))
	}
	fb.Suggestions = sb.String()

	return fb, documentarySuggestions(rec, cmp)
}

// documentarySuggestions ranks up to five concrete next steps: missing
// concepts first, then a similarity-calibrated nudge, then pointers into
// the reference itself.
func documentarySuggestions(rec domain.KnowledgeRecord, cmp *domain.ConceptComparison) []string {
	var out []string

	if len(cmp.MissingConcepts) > 0 {
		out = append(out, fmt.Sprintf("Study these key concepts: %s", joinTop(cmp.MissingConcepts, 3)))
	}

	switch {
	case cmp.SimilarityScore < lowSimilarity:
		out = append(out, "Your explanation differs significantly from the reference. Review the basic concepts.")
	case cmp.SimilarityScore < highSimilarity:
		out = append(out, "Good start! Try to include more technical details to improve accuracy.")
	default:
		out = append(out, "Excellent understanding! Consider exploring advanced aspects of this topic.")
	}

	if rec.Title != "" {
		out = append(out, fmt.Sprintf("Read the full reference article: %s", rec.Title))
	}

	if sections := interestingSections(rec.Sections); len(sections) > 0 {
		out = append(out, fmt.Sprintf("Focus on these sections: %s", strings.Join(sections, ", ")))
	}

	if len(rec.Related) > 0 {
		titles := make([]string, 0, 2)
		for _, r := range rec.Related {
			titles = append(titles, r.Title)
			if len(titles) == 2 {
				break
			}
		}
		out = append(out, fmt.Sprintf("Explore related topics: %s", strings.Join(titles, ", ")))
	}

	return capSuggestions(out)
}

func composeAggregate(topic string, rec domain.KnowledgeRecord, scores domain.ScoreResult) (domain.Feedback, []string) {
	if scores.Degraded {
		return domain.Feedback{
			WhatYouGotRight:   "Your explanation was analyzed without a curated reference for this concept, so only general signals were assessed.",
			WhatYouMissed:     fmt.Sprintf("No curated key terms are available for %q; term-level gaps could not be identified.", topic),
			PossibleConfusion: "No misconception analysis was possible without a curated reference.",
			Suggestions:       "Verify the concept identifier, or try a topic from the supported catalog.",
		}, []string{fmt.Sprintf("Verify the concept identifier %q and retry", topic)}
	}

	var fb domain.Feedback
	fb.WhatYouGotRight = rightText(scores)
	fb.WhatYouMissed = missedText(scores)
	fb.PossibleConfusion = confusionText(scores)

	suggestions := aggregateSuggestions(topic, rec, scores)
	fb.Suggestions = strings.Join(suggestions, " ")
	return fb, suggestions
}

func rightText(scores domain.ScoreResult) string {
	var parts []string
	if scores.HasCausalReasoning {
		parts = append(parts, "You demonstrate good causal reasoning")
	}
	if scores.HasExamples {
		parts = append(parts, "Your use of examples shows practical understanding")
	}
	if scores.CoverageScore > 0.7 {
		parts = append(parts, "You use appropriate technical terminology")
	}
	if len(scores.MatchedTerms) > 0 {
		parts = append(parts, fmt.Sprintf("You correctly used these key terms: %s", joinTop(scores.MatchedTerms, 5)))
	}
	if len(parts) == 0 {
		return "Good basic understanding demonstrated."
	}
	return strings.Join(parts, ". ") + "."
}

func missedText(scores domain.ScoreResult) string {
	if len(scores.MissingTerms) == 0 {
		return "You covered all the expected key terms for this concept."
	}
	return fmt.Sprintf("Key terms not covered: %s.", joinTop(scores.MissingTerms, 5))
}

func confusionText(scores domain.ScoreResult) string {
	if len(scores.MisconceptionsFound) == 0 {
		return "No major conceptual confusion detected in your explanation."
	}
	return fmt.Sprintf("Review the concept carefully - some statements suggest misconceptions: %s.", joinTop(scores.MisconceptionsFound, 2))
}

// aggregateSuggestions derives next steps from missing structural
// aspects, then missing terms, then the classification itself.
func aggregateSuggestions(topic string, rec domain.KnowledgeRecord, scores domain.ScoreResult) []string {
	var out []string
	for _, aspect := range scores.MissingAspects {
		switch aspect {
		case "definition":
			out = append(out, fmt.Sprintf("Start by clearly defining what %s means and its key characteristics", topic))
		case "examples":
			out = append(out, fmt.Sprintf("Practice with concrete examples of %s to solidify your understanding", topic))
		case "process_description":
			out = append(out, fmt.Sprintf("Study the step-by-step process of how %s works", topic))
		case "sufficient_detail":
			out = append(out, "Provide a more detailed explanation to better demonstrate your understanding")
		}
	}

	if len(scores.MissingTerms) > 0 {
		out = append(out, fmt.Sprintf("Review these key terms: %s", joinTop(scores.MissingTerms, 3)))
	}

	if len(rec.Prerequisites) > 0 && scores.Classification == domain.ClassMissing {
		prereq := strings.ReplaceAll(rec.Prerequisites[0], "_", " ")
		out = append(out, fmt.Sprintf("Review %s as it's fundamental to understanding %s", prereq, topic))
	}

	if scores.Classification == domain.ClassUnderstood && len(rec.Related) > 0 {
		titles := make([]string, 0, len(rec.Related))
		for _, r := range rec.Related {
			titles = append(titles, r.Title)
		}
		out = append(out, fmt.Sprintf("Explore related concepts: %s", joinTop(titles, 3)))
	}

	if len(out) == 0 {
		out = append(out, fmt.Sprintf("Explore advanced aspects of %s to deepen your understanding", topic))
	}
	return capSuggestions(out)
}

// interestingSections returns up to two section titles matching the
// section keyword list.
func interestingSections(sections []domain.Section) []string {
	var out []string
	for _, s := range sections {
		lower := strings.ToLower(s.Title)
		for _, kw := range sectionKeywords {
			if strings.Contains(lower, kw) {
				out = append(out, s.Title)
				break
			}
		}
		if len(out) == 2 {
			break
		}
	}
	return out
}

func joinTop(list []string, n int) string {
	if len(list) > n {
		list = list[:n]
	}
	return strings.Join(list, ", ")
}

func capSuggestions(list []string) []string {
	if len(list) > maxSuggestions {
		return list[:maxSuggestions]
	}
	return list
}
