package textproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explainwell/concept-evaluator/internal/textproc"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "A Binary Tree", []string{"a", "binary", "tree"}},
		{"punctuation", "nodes, edges; weights!", []string{"nodes", "edges", "weights"}},
		{"hyphen and apostrophe kept", "in-place dijkstra's algorithm", []string{"in-place", "dijkstra's", "algorithm"}},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textproc.Tokenize(tt.in))
		})
	}
}

func TestLemma(t *testing.T) {
	t.Parallel()
	tests := []struct{ in, want string }{
		{"trees", "tree"},
		{"nodes", "node"},
		{"queries", "query"},
		{"classes", "class"},
		{"boxes", "box"},
		{"class", "class"},
		{"status", "status"},
		{"analysis", "analysis"},
		{"is", "is"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, textproc.Lemma(tt.in), "lemma(%q)", tt.in)
	}
}

func TestKeyTerms_RankedByFrequencyThenFirstOccurrence(t *testing.T) {
	t.Parallel()
	// "tree" appears three times, "node" twice, the rest once.
	text := "A tree has a root node. Each node of the tree links the tree downward."
	terms := textproc.KeyTerms(text)
	require.NotEmpty(t, terms)
	assert.Equal(t, "tree", terms[0])
	assert.Equal(t, "node", terms[1])
	// Singletons keep input order.
	rootIdx, linkIdx := index(terms, "root"), index(terms, "link")
	require.GreaterOrEqual(t, rootIdx, 0)
	require.GreaterOrEqual(t, linkIdx, 0)
	assert.Less(t, rootIdx, linkIdx)
}

func TestKeyTerms_PreservesDomainStopwordCollisions(t *testing.T) {
	t.Parallel()
	// "process" and "tcp" are on the preserve list; "the"/"a" are not.
	terms := textproc.KeyTerms("the tcp process sends a packet")
	assert.Contains(t, terms, "process")
	assert.Contains(t, terms, "tcp")
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "a")
}

func TestKeyTerms_CapsAtTwenty(t *testing.T) {
	t.Parallel()
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa " +
		"lambda omicron sigma upsilon omega proton neutron electron quark gluon " +
		"photon lepton boson fermion hadron"
	terms := textproc.KeyTerms(text)
	assert.Len(t, terms, 20)
}

func TestTechnicalPhrases(t *testing.T) {
	t.Parallel()
	phrases := textproc.TechnicalPhrases("a binary search tree which stores the sorted keys")
	assert.Contains(t, phrases, "binary search tree")
	// "which" and "the" break the runs; "sorted keys" forms its own.
	assert.Contains(t, phrases, "sorted keys")
}

func TestTechnicalPhrases_NoRuns(t *testing.T) {
	t.Parallel()
	assert.Empty(t, textproc.TechnicalPhrases("it is a thing"))
}

func TestExtract_StructuralFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		def  bool
		ex   bool
		proc bool
		cmp  bool
	}{
		{
			name: "definition via copula token",
			text: "A stack is a LIFO structure",
			def:  true,
		},
		{
			name: "no definition from embedded is",
			text: "this mismatch existed",
		},
		{
			name: "examples",
			text: "Caches help, for example browser caches",
			ex:   true,
		},
		{
			name: "process",
			text: "First partition the array, then recurse on both halves",
			proc: true,
		},
		{
			name: "comparison",
			text: "Quicksort sorts in place, unlike merge sort",
			cmp:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := textproc.Extract(tt.text)
			assert.Equal(t, tt.def, f.HasDefinition, "definition")
			assert.Equal(t, tt.ex, f.HasExamples, "examples")
			assert.Equal(t, tt.proc, f.HasProcess, "process")
			assert.Equal(t, tt.cmp, f.HasComparisons, "comparisons")
		})
	}
}

func TestExtract_Stats(t *testing.T) {
	t.Parallel()
	f := textproc.Extract("Short one. A considerably longer second sentence follows here!")
	assert.Equal(t, 2, f.SentenceCount)
	assert.Equal(t, 9, f.WordCount)
	assert.InDelta(t, 4.5, f.AvgSentenceLength, 1e-9)
	assert.Greater(t, f.ComplexityRatio, 0.0)
}

func TestExtract_EmptyInputCollapsesNotPanics(t *testing.T) {
	t.Parallel()
	f := textproc.Extract("")
	assert.Zero(t, f.WordCount)
	assert.Zero(t, f.SentenceCount)
	assert.Empty(t, f.KeyTerms)
	assert.Zero(t, f.ComplexityRatio)
}

func TestExtractKeyConcepts_Deterministic(t *testing.T) {
	t.Parallel()
	text := "Packets travel between routers. Routers forward packets using routing tables."
	a := textproc.ExtractKeyConcepts(text)
	b := textproc.ExtractKeyConcepts(text)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "packet")
	assert.Contains(t, a, "router")
}

func index(ss []string, s string) int {
	for i, v := range ss {
		if v == s {
			return i
		}
	}
	return -1
}
