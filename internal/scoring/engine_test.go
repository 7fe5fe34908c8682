package scoring_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explainwell/concept-evaluator/internal/domain"
	"github.com/explainwell/concept-evaluator/internal/scoring"
	"github.com/explainwell/concept-evaluator/internal/textproc"
)

// fixedSimilarity returns a constant score and records invocations.
type fixedSimilarity struct {
	score float64
	err   error
	calls int
}

func (f *fixedSimilarity) Similarity(_ domain.Context, _, _ string) (float64, error) {
	f.calls++
	return f.score, f.err
}

func bstRecord() domain.KnowledgeRecord {
	return domain.KnowledgeRecord{
		ConceptID: "binary_search_tree",
		Origin:    domain.OriginCatalog,
		Title:     "Binary Search Tree",
		Summary:   "A hierarchical data structure where each node has at most two children",
		KeyTerms: []string{
			"tree", "node", "left child", "right child", "root", "leaf",
			"binary", "search", "hierarchy", "parent", "traversal",
			"inorder", "preorder", "postorder",
		},
		Prerequisites: []string{"binary_tree", "recursion", "tree_traversal"},
		Applications:  []string{"searching", "sorting", "database indexing", "expression parsing"},
		Misconceptions: []string{
			"thinking BST is always balanced",
			"confusing with binary heap",
			"not understanding worst-case O(n) complexity",
		},
		Difficulty: 3,
	}
}

func evaluate(t *testing.T, text string, rec domain.KnowledgeRecord) domain.ScoreResult {
	t.Helper()
	engine := scoring.NewEngine(&fixedSimilarity{})
	return engine.Evaluate(text, textproc.Extract(text), rec)
}

func TestEvaluate_CorrectBSTExplanation(t *testing.T) {
	t.Parallel()
	text := "A binary search tree is a tree where left nodes are smaller and right nodes are bigger"
	res := evaluate(t, text, bstRecord())

	assert.Greater(t, res.CoverageScore, 0.0)
	assert.Contains(t, res.MatchedTerms, "tree")
	assert.Contains(t, res.MatchedTerms, "binary")
	assert.Zero(t, res.MisconceptionSeverity)
	assert.Empty(t, res.MisconceptionsFound)
	assert.NotEqual(t, domain.ClassMisunderstood, res.Classification)
}

func TestEvaluate_AbsolutistLanguage(t *testing.T) {
	t.Parallel()
	text := "Binary search trees always have O(1) lookup and never fail"
	res := evaluate(t, text, bstRecord())

	assert.Greater(t, res.MisconceptionSeverity, 0.0)
	assert.Contains(t, res.MisconceptionsFound, "always")
	assert.Contains(t, res.MisconceptionsFound, "never")
	// The multiplicative discount: correctness strictly below raw quality.
	assert.Less(t, res.CorrectnessScore, res.QualityScore)
}

func TestEvaluate_CoveragePartition(t *testing.T) {
	t.Parallel()
	rec := bstRecord()
	texts := []string{
		"A binary search tree is a tree where left nodes are smaller",
		"I have no idea",
		"root leaf parent hierarchy traversal inorder preorder postorder node tree binary search left child right child",
		"",
	}
	for _, text := range texts {
		res := evaluate(t, text, rec)
		assert.GreaterOrEqual(t, res.CoverageScore, 0.0)
		assert.LessOrEqual(t, res.CoverageScore, 1.0)
		// Matched and missing partition the key-term set exactly.
		assert.Len(t, append(res.MatchedTerms, res.MissingTerms...), len(rec.KeyTerms))
		for _, m := range res.MatchedTerms {
			assert.NotContains(t, res.MissingTerms, m)
		}
	}
}

func TestEvaluate_CoverageEmptyKeyTerms(t *testing.T) {
	t.Parallel()
	rec := bstRecord()
	rec.KeyTerms = nil
	res := evaluate(t, "anything at all", rec)
	assert.Zero(t, res.CoverageScore)
	assert.Empty(t, res.MatchedTerms)
	assert.Empty(t, res.MissingTerms)
}

func TestEvaluate_QualityTiersMaxNotSum(t *testing.T) {
	t.Parallel()
	rec := domain.KnowledgeRecord{KeyTerms: []string{"swap"}}
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"strong wins over medium and weak", "It works by swapping because swapping is cheap", 0.8},
		{"medium alone", "It works by swapping elements around the pivot", 0.6},
		{"weak alone", "A pivot is an element", 0.4},
		{"no indicators", "Pivot element selection", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.text, rec)
			assert.InDelta(t, tt.want, res.QualityScore, 1e-9)
		})
	}
}

func TestEvaluate_QualityBonuses(t *testing.T) {
	t.Parallel()
	rec := bstRecord()
	// Weak tier (0.4) + application ("sorting") + prerequisite ("recursion").
	text := "A tree is useful for sorting and uses recursion"
	res := evaluate(t, text, rec)
	assert.InDelta(t, 0.6, res.QualityScore, 1e-9)
}

func TestEvaluate_KnownMisconception(t *testing.T) {
	t.Parallel()
	// "balanced" is a distinctive word of a known BST misconception.
	res := evaluate(t, "A binary search tree is balanced by definition", bstRecord())
	assert.Contains(t, res.MisconceptionsFound, "thinking BST is always balanced")
	assert.GreaterOrEqual(t, res.MisconceptionSeverity, 0.3)
}

func TestEvaluate_OwnVocabularyDoesNotTripMisconceptions(t *testing.T) {
	t.Parallel()
	// "binary" appears in the "confusing with binary heap" phrasing but is
	// the concept's own vocabulary; it must not count as a misconception.
	res := evaluate(t, "A binary search tree stores keys in order", bstRecord())
	assert.Zero(t, res.MisconceptionSeverity)
}

func TestEvaluate_HighUncertainty(t *testing.T) {
	t.Parallel()
	text := "I think a tree is maybe a structure, but I guess I am not sure"
	res := evaluate(t, text, bstRecord())
	assert.True(t, res.HighUncertainty)
	assert.GreaterOrEqual(t, res.UncertaintyCount, 3)
	assert.Contains(t, res.MisconceptionsFound, "high_uncertainty")
	assert.InDelta(t, 0.2, res.MisconceptionSeverity, 1e-9)
}

func TestEvaluate_SeverityCapped(t *testing.T) {
	t.Parallel()
	text := "It is always never impossible, cannot work, must be the only way, " +
		"the best way and the worst way, the fastest and the slowest, " +
		"i think maybe i guess not sure probably"
	res := evaluate(t, text, bstRecord())
	assert.LessOrEqual(t, res.MisconceptionSeverity, 1.0)
	assert.GreaterOrEqual(t, res.ConfidenceScore, 0.1)
}

func TestEvaluate_Completeness(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		text    string
		want    float64
		missing []string
	}{
		{
			name: "definition only",
			text: "A deadlock is a standstill",
			want: 0.3,
			missing: []string{
				"examples", "process_description", "comparisons", "sufficient_detail",
			},
		},
		{
			name: "definition and example",
			text: "A cache is fast storage, for example a CPU cache",
			want: 0.5,
			missing: []string{
				"process_description", "comparisons", "sufficient_detail",
			},
		},
		{
			name:    "nothing",
			text:    "words words words",
			want:    0.0,
			missing: []string{"definition", "examples", "process_description", "comparisons", "sufficient_detail"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.text, bstRecord())
			assert.InDelta(t, tt.want, res.CompletenessScore, 1e-9)
			assert.Equal(t, tt.missing, res.MissingAspects)
		})
	}
}

func TestEvaluate_ConfidenceBounds(t *testing.T) {
	t.Parallel()
	texts := []string{
		"",
		"I think maybe probably not sure I guess it could be might be uncertain",
		"It works because therefore for example such as everything always never",
		"A binary search tree is a tree because ordering helps, for example in databases",
	}
	for _, text := range texts {
		res := evaluate(t, text, bstRecord())
		assert.GreaterOrEqual(t, res.ConfidenceScore, 0.1, "text %q", text)
		assert.LessOrEqual(t, res.ConfidenceScore, 1.0, "text %q", text)
	}
}

func TestClassify_BranchOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		correctness float64
		coverage    float64
		severity    float64
		want        domain.Classification
	}{
		{"understood at thresholds", 0.7, 0.6, 0.0, domain.ClassUnderstood},
		{"understood wins despite severity below bar", 0.8, 0.9, 0.25, domain.ClassUnderstood},
		{"understood wins even over high severity", 0.9, 0.9, 0.9, domain.ClassUnderstood},
		{"misunderstood", 0.5, 0.5, 0.31, domain.ClassMisunderstood},
		{"severity at threshold is not misunderstood", 0.5, 0.5, 0.3, domain.ClassMissing},
		{"low coverage blocks understood", 0.9, 0.5, 0.0, domain.ClassMissing},
		{"low correctness blocks understood", 0.6, 0.9, 0.0, domain.ClassMissing},
		{"default missing", 0.0, 0.0, 0.0, domain.ClassMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoring.Classify(tt.correctness, tt.coverage, tt.severity))
		})
	}
}

func TestEvaluate_DegradedRecord(t *testing.T) {
	t.Parallel()
	rec := domain.KnowledgeRecord{ConceptID: "mystery", Degraded: true}
	res := evaluate(t, "whatever text", rec)
	assert.True(t, res.Degraded)
	assert.InDelta(t, 0.5, res.CoverageScore, 1e-9)
	assert.InDelta(t, 0.5, res.CorrectnessScore, 1e-9)
	assert.InDelta(t, 0.3, res.ConfidenceScore, 1e-9)
	assert.Equal(t, domain.ClassMissing, res.Classification)
}

func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()
	text := "A hash table maps keys to values because a hash function picks the bucket, for example in caches"
	rec := bstRecord()
	a := evaluate(t, text, rec)
	b := evaluate(t, text, rec)
	assert.Equal(t, a, b)
}

func TestCompareConcepts_Partition(t *testing.T) {
	t.Parallel()
	sim := &fixedSimilarity{score: 0.42}
	engine := scoring.NewEngine(sim)
	rec := domain.KnowledgeRecord{
		Summary:     "Routers forward packets across networks",
		KeyConcepts: []string{"router", "packet", "network", "protocol", "routing"},
	}

	cmp, err := engine.CompareConcepts(context.Background(), "Packets hop between routers through cables", rec)
	require.NoError(t, err)
	assert.Equal(t, 1, sim.calls)
	assert.InDelta(t, 0.42, cmp.SimilarityScore, 1e-9)

	seen := map[string]int{}
	for _, list := range [][]string{cmp.CorrectConcepts, cmp.MissingConcepts, cmp.ExtraConcepts} {
		for _, c := range list {
			seen[c]++
		}
	}
	// Pairwise disjoint: nothing appears in two lists.
	for c, n := range seen {
		assert.Equal(t, 1, n, "concept %q appears %d times", c, n)
	}
	assert.Contains(t, cmp.CorrectConcepts, "packet")
	assert.Contains(t, cmp.CorrectConcepts, "router")
	assert.Contains(t, cmp.MissingConcepts, "protocol")
	assert.Contains(t, cmp.ExtraConcepts, "cable")
}

func TestCompareConcepts_DisplayCap(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(&fixedSimilarity{score: 0.5})
	rec := domain.KnowledgeRecord{
		Summary: "s",
		KeyConcepts: []string{
			"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta",
			"theta", "iota", "kappa", "lambda", "sigma",
		},
	}
	cmp, err := engine.CompareConcepts(context.Background(), "unrelated words entirely", rec)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(cmp.MissingConcepts), 10)
}

func TestCompareConcepts_BlankInputSkipsSimilarity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		student string
		summary string
	}{
		{"blank student", "   ", "real summary"},
		{"blank summary", "real student text", " \n\t"},
		{"both blank", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := &fixedSimilarity{score: 0.9}
			engine := scoring.NewEngine(sim)
			cmp, err := engine.CompareConcepts(context.Background(), tt.student, domain.KnowledgeRecord{Summary: tt.summary})
			require.NoError(t, err)
			assert.Zero(t, cmp.SimilarityScore)
			assert.Zero(t, sim.calls)
		})
	}
}

func TestCompareConcepts_SimilarityError(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(&fixedSimilarity{err: domain.ErrServiceUnavailable})
	_, err := engine.CompareConcepts(context.Background(), "text", domain.KnowledgeRecord{Summary: "summary"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestCompareConcepts_SimilarityClamped(t *testing.T) {
	t.Parallel()
	engine := scoring.NewEngine(&fixedSimilarity{score: 1.7})
	cmp, err := engine.CompareConcepts(context.Background(), "text", domain.KnowledgeRecord{Summary: "summary"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, cmp.SimilarityScore, 1e-9)
}
