package main

import "github.com/explainwell/concept-evaluator/internal/domain"

// Output DTOs keep the CLI's JSON shape stable independent of the
// domain types.

type scoresDTO struct {
	Coverage              float64  `json:"coverage"`
	Quality               float64  `json:"quality"`
	Correctness           float64  `json:"correctness"`
	Completeness          float64  `json:"completeness"`
	MisconceptionSeverity float64  `json:"misconception_severity"`
	Confidence            float64  `json:"confidence"`
	MatchedTerms          []string `json:"matched_terms"`
	MissingTerms          []string `json:"missing_terms"`
	MisconceptionsFound   []string `json:"misconceptions_found,omitempty"`
	MissingAspects        []string `json:"missing_aspects,omitempty"`
	Classification        string   `json:"classification"`
	Degraded              bool     `json:"degraded,omitempty"`
}

type comparisonDTO struct {
	CorrectConcepts []string `json:"correct_concepts"`
	MissingConcepts []string `json:"missing_concepts"`
	ExtraConcepts   []string `json:"extra_concepts"`
	SimilarityScore float64  `json:"similarity_score"`
}

type feedbackDTO struct {
	WhatYouGotRight   string `json:"what_you_got_right"`
	WhatYouMissed     string `json:"what_you_missed"`
	PossibleConfusion string `json:"possible_confusion"`
	Suggestions       string `json:"suggestions"`
}

type analysisDTO struct {
	ID             string         `json:"id"`
	Topic          string         `json:"topic"`
	Subject        string         `json:"subject,omitempty"`
	ReferenceTitle string         `json:"reference_title,omitempty"`
	ReferenceURL   string         `json:"reference_url,omitempty"`
	Scores         scoresDTO      `json:"scores"`
	Comparison     *comparisonDTO `json:"comparison,omitempty"`
	Feedback       feedbackDTO    `json:"feedback"`
	Suggestions    []string       `json:"suggestions"`
	MissingPrereqs []string       `json:"missing_prerequisites,omitempty"`
	KeyTerms       []string       `json:"key_terms"`
	WordCount      int            `json:"word_count"`
	SentenceCount  int            `json:"sentence_count"`
}

type overviewDTO struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	URL         string   `json:"url,omitempty"`
	KeyConcepts []string `json:"key_concepts"`
	Sections    []string `json:"sections,omitempty"`
}

func toAnalysisDTO(a domain.Analysis) analysisDTO {
	out := analysisDTO{
		ID:             a.ID,
		Topic:          a.Topic,
		Subject:        a.Subject,
		ReferenceTitle: a.ReferenceTitle,
		ReferenceURL:   a.ReferenceURL,
		Scores: scoresDTO{
			Coverage:              a.Scores.CoverageScore,
			Quality:               a.Scores.QualityScore,
			Correctness:           a.Scores.CorrectnessScore,
			Completeness:          a.Scores.CompletenessScore,
			MisconceptionSeverity: a.Scores.MisconceptionSeverity,
			Confidence:            a.Scores.ConfidenceScore,
			MatchedTerms:          a.Scores.MatchedTerms,
			MissingTerms:          a.Scores.MissingTerms,
			MisconceptionsFound:   a.Scores.MisconceptionsFound,
			MissingAspects:        a.Scores.MissingAspects,
			Classification:        string(a.Scores.Classification),
			Degraded:              a.Scores.Degraded,
		},
		Feedback: feedbackDTO{
			WhatYouGotRight:   a.Feedback.WhatYouGotRight,
			WhatYouMissed:     a.Feedback.WhatYouMissed,
			PossibleConfusion: a.Feedback.PossibleConfusion,
			Suggestions:       a.Feedback.Suggestions,
		},
		Suggestions:    a.Suggestions,
		MissingPrereqs: a.MissingPrerequisites,
		KeyTerms:       a.KeyTerms,
		WordCount:      a.WordCount,
		SentenceCount:  a.SentenceCount,
	}
	if a.Comparison != nil {
		out.Comparison = &comparisonDTO{
			CorrectConcepts: a.Comparison.CorrectConcepts,
			MissingConcepts: a.Comparison.MissingConcepts,
			ExtraConcepts:   a.Comparison.ExtraConcepts,
			SimilarityScore: a.Comparison.SimilarityScore,
		}
	}
	return out
}

func toOverviewDTO(ov domain.TopicOverview) overviewDTO {
	return overviewDTO{
		Title:       ov.Title,
		Summary:     ov.Summary,
		URL:         ov.URL,
		KeyConcepts: ov.KeyConcepts,
		Sections:    ov.Sections,
	}
}
