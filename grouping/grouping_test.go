package grouping

import (
	"errors"
	"math"
	"testing"

	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/strategy"
)

func res() *langres.Resources {
	return langres.New(false, langres.Overrides{})
}

func TestDeduplicateExactWithCaseFolding(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Exact}
	s.CaseSensitive = false
	s.IgnorePunctuation = false
	s.MinLength = 1

	corpus := []string{"Hello World", "hello world", "goodbye"}
	result, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}
	g := result.Groups[0]
	if g.Representative != 0 || len(g.Members) != 2 || g.Members[1] != 1 {
		t.Errorf("expected group {0,1}, got %+v", g)
	}
	if g.Similarity != 1.0 {
		t.Errorf("expected similarity 1.0, got %v", g.Similarity)
	}
	if result.Stats != (Stats{TotalItems: 3, UniqueItems: 2, DuplicateGroups: 1}) {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
}

func TestDeduplicateLevenshteinNearMatch(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Levenshtein}
	s.SimilarityThreshold = 0.8
	s.MinLength = 1

	corpus := []string{"color", "colour", "flavor"}
	result, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}
	g := result.Groups[0]
	if g.Representative != 0 || len(g.Members) != 2 || g.Members[1] != 1 {
		t.Errorf("expected group {0,1}, got %+v", g)
	}
	want := 1.0 - 1.0/6.0
	if math.Abs(g.Similarity-want) > 1e-9 {
		t.Errorf("expected similarity %v, got %v", want, g.Similarity)
	}
}

func TestDeduplicateNGramJaccard(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Fuzzy, Fuzzy: strategy.NGram}
	s.NgramSize = 3
	s.SimilarityThreshold = 0.5
	s.MinLength = 1

	corpus := []string{"the quick brown fox", "the quick brown dog", "lorem ipsum"}
	result, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}
	if result.Groups[0].Representative != 0 {
		t.Errorf("expected representative 0, got %d", result.Groups[0].Representative)
	}
}

func TestDeduplicateMinLengthFilterExcludesAllPairs(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Exact}
	s.MinLength = 5

	corpus := []string{"hi", "hi", "hello world"}
	result, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(result.Groups))
	}
	if result.Stats != (Stats{TotalItems: 3, UniqueItems: 3, DuplicateGroups: 0}) {
		t.Errorf("unexpected stats: %+v", result.Stats)
	}
}

func TestDeduplicateAdaptiveThresholdingShortensTextsExcludeMatch(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Levenshtein}
	s.SimilarityThreshold = 0.45
	s.AdaptiveThresholding = true
	s.MinLength = 1

	corpus := []string{"ab", "ac"}
	result, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 0 {
		t.Fatalf("expected no groups under the stricter adaptive threshold, got %d", len(result.Groups))
	}
}

func TestDeduplicateSoundexScenario(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Fuzzy, Fuzzy: strategy.Soundex}
	s.MinLength = 1

	corpus := []string{"Robert", "Rupert", "Ashcraft"}
	result, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(result.Groups))
	}
	g := result.Groups[0]
	if g.Representative != 0 || len(g.Members) != 2 || g.Members[1] != 1 {
		t.Errorf("expected group {0,1}, got %+v", g)
	}
}

func TestDeduplicateNoGroupsForEmptyCorpus(t *testing.T) {
	s := strategy.Default()
	result, err := Deduplicate(nil, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 0 {
		t.Errorf("expected no groups for empty corpus")
	}
	if result.Stats.TotalItems != 0 {
		t.Errorf("expected TotalItems 0, got %d", result.Stats.TotalItems)
	}
}

func TestDeduplicateMonotoneThresholdNeverAddsMembers(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Levenshtein}
	s.MinLength = 1

	corpus := []string{"color", "colour", "colouring", "flavor"}

	s.SimilarityThreshold = 0.5
	loose, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}

	s.SimilarityThreshold = 0.95
	strict, err := Deduplicate(corpus, s, res())
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}

	looseMembers := 0
	for _, g := range loose.Groups {
		looseMembers += len(g.Members)
	}
	strictMembers := 0
	for _, g := range strict.Groups {
		strictMembers += len(g.Members)
	}
	if strictMembers > looseMembers {
		t.Errorf("raising threshold added members: loose=%d strict=%d", looseMembers, strictMembers)
	}
}

func TestGroupUnitsLocalScopeContainment(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Levenshtein}
	s.SplitStrategy = strategy.Sentences
	s.ComparisonScope = strategy.Local
	s.SimilarityThreshold = 0.6
	s.MinLength = 1

	// Two paragraphs; within the first, two near-identical sentences.
	// A similar-looking sentence lives in the second paragraph and must
	// not be grouped with the first paragraph's pair under Local scope.
	text := "The cat sat on the mat. The cat sat on the rug.\n\nThe cat sat on the log."

	result, err := GroupUnits(text, s, res())
	if err != nil {
		t.Fatalf("GroupUnits: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group confined to the first paragraph, got %+v", result.Groups)
	}
	g := result.Groups[0]
	if g.Representative != 0 || len(g.Members) != 2 || g.Members[1] != 1 {
		t.Errorf("expected group {0,1}, got %+v", g)
	}
}

func TestRunGreedyWithInjectedScorer(t *testing.T) {
	// A synthetic scorer where item i and item i+1 are always "similar"
	// lets us verify RunGreedy's chaining/determinism without going
	// through package similarity at all — exercising the same injection
	// surface the engine façade uses for its cached Semantic path.
	scoreFn := func(i, j int) (float64, error) {
		if j == i+1 {
			return 1.0, nil
		}
		return 0.0, nil
	}
	thresholdFn := func(i, j int) float64 { return 0.5 }

	result, err := RunGreedy(4, GlobalCandidates, scoreFn, thresholdFn, false)
	if err != nil {
		t.Fatalf("RunGreedy: %v", err)
	}
	if len(result.Groups) != 2 {
		t.Fatalf("expected 2 groups ({0,1} and {2,3}), got %+v", result.Groups)
	}
	g := result.Groups[0]
	if g.Representative != 0 || len(g.Members) != 2 || g.Members[1] != 1 {
		t.Errorf("expected group {0,1}, got %+v", g)
	}
	// index 2 and 3 chain into their own group.
	if result.Stats.DuplicateGroups != 2 {
		t.Errorf("expected 2 groups total ({0,1} and {2,3}), got stats %+v groups %+v", result.Stats, result.Groups)
	}
}

func TestRunGreedyPropagatesScorerError(t *testing.T) {
	boom := errors.New("boom")
	scoreFn := func(i, j int) (float64, error) { return 0, boom }
	thresholdFn := func(i, j int) float64 { return 0.5 }

	if _, err := RunGreedy(3, GlobalCandidates, scoreFn, thresholdFn, false); err == nil {
		t.Error("expected scorer error to propagate")
	}
}

func TestGroupUnitsGlobalScopeIgnoresContainment(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Levenshtein}
	s.SplitStrategy = strategy.Sentences
	s.ComparisonScope = strategy.Global
	s.SimilarityThreshold = 0.6
	s.MinLength = 1

	text := "The cat sat on the mat.\n\nThe cat sat on the rug."

	result, err := GroupUnits(text, s, res())
	if err != nil {
		t.Fatalf("GroupUnits: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected cross-paragraph match under Global scope, got %+v", result.Groups)
	}
}
