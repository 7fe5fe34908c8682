// Package textproc turns raw explanation text into normalized tokens, key
// terms, technical phrases, and structural signals. Everything here is a
// pure function of the input text and the fixed lexicons.
package textproc

import (
	"sort"
	"strings"
	"unicode"

	"github.com/explainwell/concept-evaluator/internal/domain"
)

const maxKeyTerms = 20

// Extract runs the full feature pipeline over one input text.
func Extract(text string) domain.TextFeatures {
	tokens := Tokenize(text)
	sentences := SplitSentences(text)
	words := alphaTokens(tokens)

	wordCount := len(words)
	sentenceCount := len(sentences)
	avgLen := 0.0
	if sentenceCount > 0 {
		avgLen = float64(wordCount) / float64(sentenceCount)
	}
	complex := 0
	for _, w := range words {
		if len(w) > 6 {
			complex++
		}
	}
	ratio := 0.0
	if wordCount > 0 {
		ratio = float64(complex) / float64(wordCount)
	}

	lower := strings.ToLower(text)
	return domain.TextFeatures{
		Tokens:            tokens,
		KeyTerms:          KeyTerms(text),
		TechnicalPhrases:  TechnicalPhrases(text),
		Sentences:         sentences,
		WordCount:         wordCount,
		SentenceCount:     sentenceCount,
		AvgSentenceLength: avgLen,
		ComplexityRatio:   ratio,
		HasDefinition:     hasCue(lower, tokens, definitionCues),
		HasExamples:       hasCue(lower, tokens, exampleCues),
		HasProcess:        hasCue(lower, tokens, processCues),
		HasComparisons:    hasCue(lower, tokens, comparisonCues),
	}
}

// Tokenize lowercases and splits text on non-word runes. Apostrophes and
// hyphens are kept inside tokens so "dijkstra's" and "in-place" survive.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SplitSentences breaks text on terminal punctuation.
func SplitSentences(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

// KeyTerms extracts a frequency-ranked, deduplicated term list: lemmatized
// content tokens plus technical phrases, top 20, ties broken by first
// occurrence.
func KeyTerms(text string) []string {
	tokens := Tokenize(text)

	counts := map[string]int{}
	firstSeen := map[string]int{}
	pos := 0
	add := func(term string) {
		if counts[term] == 0 {
			firstSeen[term] = pos
		}
		counts[term]++
		pos++
	}

	for _, tok := range tokens {
		if !keepToken(tok) {
			continue
		}
		add(Lemma(tok))
	}
	for _, phrase := range TechnicalPhrases(text) {
		add(phrase)
	}

	return rankTerms(counts, firstSeen, maxKeyTerms)
}

// ExtractKeyConcepts reduces arbitrary document or explanation text to its
// frequency-ranked concept set (single content words only), top 20. Used
// both for student text and fetched reference documents.
func ExtractKeyConcepts(text string) []string {
	counts := map[string]int{}
	firstSeen := map[string]int{}
	pos := 0
	for _, tok := range Tokenize(text) {
		if !keepToken(tok) {
			continue
		}
		lemma := Lemma(tok)
		if counts[lemma] == 0 {
			firstSeen[lemma] = pos
		}
		counts[lemma]++
		pos++
	}
	return rankTerms(counts, firstSeen, maxKeyTerms)
}

// TechnicalPhrases returns contiguous content-word runs of length >= 2.
func TechnicalPhrases(text string) []string {
	tokens := Tokenize(text)
	var phrases []string
	var run []string
	flush := func() {
		if len(run) >= 2 {
			phrase := strings.Join(run, " ")
			if len(phrase) > 3 {
				phrases = append(phrases, phrase)
			}
		}
		run = nil
	}
	for _, tok := range tokens {
		if keepToken(tok) {
			run = append(run, tok)
			continue
		}
		flush()
	}
	flush()
	return phrases
}

// Lemma applies a small plural-stripping ruleset. It is deliberately
// conservative: wrong merges hurt coverage more than missed ones.
func Lemma(tok string) string {
	switch {
	case len(tok) > 4 && strings.HasSuffix(tok, "ies"):
		return tok[:len(tok)-3] + "y"
	case len(tok) > 4 && (strings.HasSuffix(tok, "xes") || strings.HasSuffix(tok, "ches") || strings.HasSuffix(tok, "shes") || strings.HasSuffix(tok, "sses")):
		return tok[:len(tok)-2]
	case len(tok) > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss") && !strings.HasSuffix(tok, "us") && !strings.HasSuffix(tok, "is"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}

// keepToken reports whether a token survives stop-word filtering. The
// preserve list wins over both the stop list and the length floor.
func keepToken(tok string) bool {
	if _, ok := preserveWords[tok]; ok {
		return true
	}
	if _, ok := stopWords[tok]; ok {
		return false
	}
	return len(tok) > 2 && isAlpha(tok)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func alphaTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if isAlpha(t) {
			out = append(out, t)
		}
	}
	return out
}

// rankTerms orders terms by frequency, ties by first occurrence.
func rankTerms(counts map[string]int, firstSeen map[string]int, limit int) []string {
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// hasCue checks cue presence: multi-word cues by substring over the
// lowercased text, single-word cues by exact token membership so "is"
// does not fire inside "this".
func hasCue(lowerText string, tokens []string, cues []string) bool {
	for _, cue := range cues {
		if strings.ContainsRune(cue, ' ') || strings.ContainsRune(cue, '.') {
			if strings.Contains(lowerText, cue) {
				return true
			}
			continue
		}
		for _, tok := range tokens {
			if tok == cue {
				return true
			}
		}
	}
	return false
}
