package similarity

import (
	"math"
	"testing"

	"github.com/loomtext/dedupweave/strategy"
)

func methodExact() strategy.Method      { return strategy.Method{Kind: strategy.Exact} }
func methodLevenshtein() strategy.Method { return strategy.Method{Kind: strategy.Levenshtein} }
func methodFuzzy(v strategy.FuzzyAlgorithm) strategy.Method {
	return strategy.Method{Kind: strategy.Fuzzy, Fuzzy: v}
}

func TestScoreExact(t *testing.T) {
	got, err := Score("hello", "hello", methodExact(), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for equal strings, got %v", got)
	}

	got, err = Score("hello", "world", methodExact(), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 for different strings, got %v", got)
	}
}

func TestScoreLevenshteinBothEmpty(t *testing.T) {
	got, err := Score("", "", methodLevenshtein(), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for two empty strings, got %v", got)
	}
}

func TestScoreDamerauLevenshteinIdentical(t *testing.T) {
	got, err := Score("kitten", "kitten", methodFuzzy(strategy.DamerauLevenshtein), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for identical strings, got %v", got)
	}
}

func TestScoreDamerauLevenshteinTransposition(t *testing.T) {
	// "ab" -> "ba" is a single adjacent transposition under Damerau, cost 1.
	got, err := Score("ab", "ba", methodFuzzy(strategy.DamerauLevenshtein), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := 1.0 - 1.0/2.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScoreJaroWinklerIdentical(t *testing.T) {
	got, err := Score("martha", "martha", methodFuzzy(strategy.JaroWinkler), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for identical strings, got %v", got)
	}
}

func TestScoreSoundexIsBinary(t *testing.T) {
	// "Robert" and "Rupert" share the Soundex code R163.
	got, err := Score("Robert", "Rupert", methodFuzzy(strategy.Soundex), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for phonetically equal strings, got %v", got)
	}

	got, err = Score("Robert", "Ashcraft", methodFuzzy(strategy.Soundex), 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 for phonetically distinct strings, got %v", got)
	}
}

func TestScoreNGramJaccard(t *testing.T) {
	// "night" and "nacht" share trigrams {nig,igh,ght} vs {nac,ach,cht}: none in common.
	got, err := Score("night", "nacht", methodFuzzy(strategy.NGram), 3, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 disjoint trigram sets, got %v", got)
	}

	got, err = Score("night", "night", methodFuzzy(strategy.NGram), 3, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for identical strings, got %v", got)
	}
}

func TestScoreNGramShorterThanSizeFallsBackToEquality(t *testing.T) {
	got, err := Score("ab", "ab", methodFuzzy(strategy.NGram), 3, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 1.0 {
		t.Errorf("expected 1.0 for equal short strings, got %v", got)
	}

	got, err = Score("ab", "cd", methodFuzzy(strategy.NGram), 3, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got != 0.0 {
		t.Errorf("expected 0.0 for unequal short strings, got %v", got)
	}
}

func TestScoreSemanticAppliesCrossLanguagePenalty(t *testing.T) {
	withSame, err := Score("the quick fox", "the quick fox", strategy.Method{Kind: strategy.Semantic}, 0, false)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	withPenalty, err := Score("the quick fox", "the quick fox", strategy.Method{Kind: strategy.Semantic}, 0, true)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(withPenalty-withSame*crossLanguagePenalty) > 1e-9 {
		t.Errorf("expected penalty applied score %v, got %v", withSame*crossLanguagePenalty, withPenalty)
	}
}

func TestScoreUnknownMethodErrors(t *testing.T) {
	if _, err := Score("a", "b", strategy.Method{Kind: "Bogus"}, 0, false); err == nil {
		t.Error("expected error for unknown method kind")
	}
}
