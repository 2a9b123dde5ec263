package similarity

import (
	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/normalize"
	"github.com/loomtext/dedupweave/strategy"
	"github.com/loomtext/dedupweave/telemetry"
	"github.com/loomtext/dedupweave/telemetry/metrics"
)

// Compare is the C4 entrypoint the grouping engine calls for every
// candidate pair: it applies the short-circuit and language gate
// pre-checks, normalizes both inputs, and dispatches to Score. a and b
// are the original (pre-normalization) comparison units.
func Compare(a, b string, s strategy.Strategy, resources *langres.Resources) (float64, error) {
	if len(a) < int(s.MinLength) || len(b) < int(s.MinLength) {
		telemetry.EmitCounter(metrics.SimilarityShortCircuitTotal, 1, nil)
		return 0.0, nil
	}

	langA := langres.Detect(a)
	langB := langres.Detect(b)
	languagesDiffer := langA != langB

	if s.LanguageDetection && s.SimilarityMethod.Kind == strategy.Semantic && languagesDiffer {
		telemetry.EmitCounter(metrics.SimilarityLanguageGateTotal, 1, map[string]string{
			metrics.TagLanguage: langA,
		})
		return 0.0, nil
	}

	normA := normalize.Text(a, s, langA, resources)
	normB := normalize.Text(b, s, langB, resources)

	return Score(normA, normB, s.SimilarityMethod, s.NgramSize, languagesDiffer)
}

// EffectiveThreshold derives the pair-threshold τ′ from the strategy's
// configured τ and the mean of the two original (pre-normalization)
// byte lengths, per the adaptive thresholding rule: short texts (mean
// length < 50) get a stricter threshold, long texts (mean length > 200)
// get a looser one. τ′ is meant to be compared against Compare's raw
// score, which is never itself adjusted.
func EffectiveThreshold(s strategy.Strategy, aLen, bLen int) float64 {
	if !s.AdaptiveThresholding {
		return s.SimilarityThreshold
	}

	meanLen := float64(aLen+bLen) / 2.0
	switch {
	case meanLen < 50:
		t := s.SimilarityThreshold + 0.1
		if t > 1 {
			t = 1
		}
		return t
	case meanLen > 200:
		t := s.SimilarityThreshold - 0.1
		if t < 0 {
			t = 0
		}
		return t
	default:
		return s.SimilarityThreshold
	}
}
