// Package similarity implements C4: comparing two normalized, split
// comparison units under a strategy's similarity_method and returning a
// score in [0.0, 1.0], plus the adaptive thresholding and language gate
// that wrap the raw score before grouping consumes it.
package similarity

import (
	"fmt"

	"github.com/antzucaro/matchr"

	"github.com/loomtext/dedupweave/strategy"
	"github.com/loomtext/dedupweave/telemetry"
	"github.com/loomtext/dedupweave/telemetry/metrics"
)

// Score compares a and b under method and returns a normalized
// similarity in [0.0, 1.0]. ngramSize only matters for Fuzzy.NGram;
// languagesDiffer only matters for Semantic, where a detected-language
// mismatch applies the cross-language penalty multiplier.
func Score(a, b string, method strategy.Method, ngramSize uint, languagesDiffer bool) (float64, error) {
	tags := map[string]string{metrics.TagMethod: method.String()}
	defer telemetry.EmitCounter(metrics.SimilarityCallsTotal, 1, tags)

	switch method.Kind {
	case strategy.Exact:
		if a == b {
			return 1.0, nil
		}
		return 0.0, nil

	case strategy.Levenshtein:
		return levenshteinScore(a, b), nil

	case strategy.Semantic:
		score, err := semanticScore(a, b)
		if err != nil {
			return 0, err
		}
		return ApplyCrossLanguagePenalty(score, languagesDiffer), nil

	case strategy.Fuzzy:
		return fuzzyScore(a, b, method.Fuzzy, ngramSize)

	default:
		return 0, fmt.Errorf("similarity: unknown method %q", method.String())
	}
}

// crossLanguagePenalty is applied to a Semantic score when the two
// inputs are detected as different languages, per spec.md's Semantic
// method row.
const crossLanguagePenalty = 0.8

// ApplyCrossLanguagePenalty multiplies score by the Semantic method's
// cross-language penalty when languagesDiffer, otherwise returns score
// unchanged. Exported so callers scoring pre-computed embeddings (the
// engine façade's cache-aware Semantic path) apply the same penalty
// Score does internally.
func ApplyCrossLanguagePenalty(score float64, languagesDiffer bool) float64 {
	if languagesDiffer {
		return score * crossLanguagePenalty
	}
	return score
}

func fuzzyScore(a, b string, variant strategy.FuzzyAlgorithm, ngramSize uint) (float64, error) {
	switch variant {
	case strategy.DamerauLevenshtein:
		if a == b {
			return 1.0, nil
		}
		maxLen := runeLen(a)
		if l := runeLen(b); l > maxLen {
			maxLen = l
		}
		if maxLen == 0 {
			return 1.0, nil
		}
		distance := matchr.DamerauLevenshtein(a, b)
		score := 1.0 - float64(distance)/float64(maxLen)
		if score < 0 {
			score = 0
		}
		return score, nil

	case strategy.JaroWinkler:
		return matchr.JaroWinkler(a, b, false), nil

	case strategy.Soundex:
		return soundexScore(a, b), nil

	case strategy.NGram:
		return ngramScore(a, b, ngramSize), nil

	default:
		return 0, fmt.Errorf("similarity: unknown fuzzy variant %q", variant)
	}
}

// soundexScore returns 1.0 iff a and b phonetically encode to the same
// Soundex code after matchr's own ASCII-folding, else 0.0 — a binary
// match, not a distance.
func soundexScore(a, b string) float64 {
	codeA, errA := matchr.Soundex(a)
	codeB, errB := matchr.Soundex(b)
	if errA != nil || errB != nil {
		return 0
	}
	if codeA == codeB {
		return 1.0
	}
	return 0
}

// ngramScore computes Jaccard similarity over character n-gram sets of
// size n, per spec.md's Fuzzy.NGram definition. If either string is
// shorter than n (no n-grams can be formed), it falls back to exact
// equality rather than an empty-set Jaccard comparison.
func ngramScore(a, b string, n uint) float64 {
	if n == 0 {
		n = 1
	}
	runesA, runesB := []rune(a), []rune(b)
	if len(runesA) < int(n) || len(runesB) < int(n) {
		if a == b {
			return 1.0
		}
		return 0.0
	}

	setA := charNgramSet(runesA, int(n))
	setB := charNgramSet(runesB, int(n))

	intersection := 0
	for gram := range setA {
		if _, ok := setB[gram]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

func charNgramSet(runes []rune, n int) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i+n <= len(runes); i++ {
		set[string(runes[i:i+n])] = struct{}{}
	}
	return set
}

func runeLen(s string) int {
	return len([]rune(s))
}
