// Package domain holds the core entities, ports, and error taxonomy of the
// concept evaluator. It has no dependencies on adapters or transport.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrConceptUnknown     = errors.New("concept unknown")
	ErrReferenceNotFound  = errors.New("reference not found")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInternal           = errors.New("internal error")
)

// KnowledgeOrigin identifies which provider produced a KnowledgeRecord.
const (
	OriginCatalog   = "catalog"
	OriginReference = "reference"
)

// ConceptDefinition is a curated catalog entry for a single concept.
// Immutable once loaded; lookups are by normalized identifier.
type ConceptDefinition struct {
	ID                   string
	Name                 string
	Description          string
	KeyTerms             []string
	Prerequisites        []string
	Applications         []string
	CommonMisconceptions []string
	DifficultyLevel      int // 1-5
}

// Section is a titled slice of a fetched reference document body.
type Section struct {
	Title   string
	Content string
}

// RelatedDocument points at a secondary reference found during lookup.
type RelatedDocument struct {
	Title string
	URL   string
}

// KnowledgeRecord is the reference shape the scoring engine consumes,
// regardless of whether it came from the static catalog or a fetched
// document. Origin tells the two apart; Degraded marks the fallback
// record substituted for an unknown catalog concept.
type KnowledgeRecord struct {
	ConceptID      string
	Origin         string
	Title          string
	Summary        string
	Body           string
	SourceURL      string
	KeyTerms       []string
	KeyConcepts    []string
	Prerequisites  []string
	Applications   []string
	Misconceptions []string
	Sections       []Section
	Related        []RelatedDocument
	Difficulty     int
	Degraded       bool
}

// TextFeatures is the read-only output of the text feature extractor.
type TextFeatures struct {
	Tokens            []string
	KeyTerms          []string
	TechnicalPhrases  []string
	Sentences         []string
	WordCount         int
	SentenceCount     int
	AvgSentenceLength float64
	ComplexityRatio   float64
	HasDefinition     bool
	HasExamples       bool
	HasProcess        bool
	HasComparisons    bool
}

// Classification labels the overall outcome of an analysis.
type Classification string

const (
	ClassUnderstood    Classification = "understood"
	ClassMisunderstood Classification = "misunderstood"
	ClassMissing       Classification = "missing"
)

// ScoreResult holds the five sub-scores and supporting detail for one
// (text, concept) pair. Ephemeral; recomputed per request, never stored.
// All scores are clamped to [0,1]; MatchedTerms and MissingTerms
// partition the record's key terms.
type ScoreResult struct {
	CoverageScore         float64
	QualityScore          float64
	CorrectnessScore      float64
	CompletenessScore     float64
	MisconceptionSeverity float64
	ConfidenceScore       float64
	MatchedTerms          []string
	MissingTerms          []string
	MisconceptionsFound   []string
	MissingAspects        []string
	HasCausalReasoning    bool
	HasExamples           bool
	UncertaintyCount      int
	HighUncertainty       bool
	Classification        Classification
	Degraded              bool
}

// ConceptComparison is the documentary-mode symmetric-difference view of
// the student's extracted concepts against the reference's. The three
// lists are pairwise disjoint and together cover both concept sets,
// capped to the top 10 each for display.
type ConceptComparison struct {
	CorrectConcepts []string
	MissingConcepts []string
	ExtraConcepts   []string
	SimilarityScore float64
}

// Feedback is the composed narrative output.
type Feedback struct {
	WhatYouGotRight   string
	WhatYouMissed     string
	PossibleConfusion string
	Suggestions       string
}

// Analysis is the full result returned to callers.
// MissingPrerequisites lists up to three catalog prerequisites the
// explanation never mentions; empty in documentary and degraded analyses.
type Analysis struct {
	ID                   string
	Topic                string
	Subject              string
	ReferenceTitle       string
	ReferenceURL         string
	Scores               ScoreResult
	Comparison           *ConceptComparison
	Feedback             Feedback
	Suggestions          []string
	MissingPrerequisites []string
	KeyTerms             []string
	WordCount            int
	SentenceCount        int
}

// TopicOverview is a quick documentary-mode summary of a topic.
type TopicOverview struct {
	Title       string
	Summary     string
	URL         string
	KeyConcepts []string
	Sections    []string
}

// ReferenceDocument is the raw shape returned by a reference fetcher.
type ReferenceDocument struct {
	Title   string
	Summary string
	Body    string
	URL     string
}

// Ports

// KnowledgeProvider resolves a concept to the record scoring runs against.
// Static implementations return ErrConceptUnknown for absent concepts;
// documentary implementations return ErrReferenceNotFound when no
// matching document exists.
type KnowledgeProvider interface {
	Resolve(ctx Context, conceptID, subject string) (KnowledgeRecord, error)
}

// ReferenceFetcher retrieves reference documents by topic. Implementations
// may call external services; calls must honor the context.
type ReferenceFetcher interface {
	Search(ctx Context, query string, limit int) ([]string, error)
	Fetch(ctx Context, title string) (ReferenceDocument, error)
}

// SimilarityService returns a semantic similarity in [0,1] for two texts.
type SimilarityService interface {
	Similarity(ctx Context, a, b string) (float64, error)
}

// Context aliases context.Context so domain signatures stay terse.
type Context = context.Context
