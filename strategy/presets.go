package strategy

// Preset is a named, read-only starting point for a strategy. Presets
// are data, not behavior (spec.md section 6): applying one is equivalent
// to calling set_strategy with its Settings.
type Preset struct {
	Name        string
	Description string
	Settings    Strategy
}

// Presets returns the built-in preset list, transcribed from the six
// scenarios of the original jdeduplix implementation (src-tauri/src/
// presets.rs): Exact Match, Near Match, Fuzzy Match, Similar Ideas,
// Strict Large Blocks, and Loose Paragraph Matching.
func Presets() []Preset {
	return []Preset{
		{
			Name:        "Exact Match",
			Description: "Find identical text, including spacing and punctuation",
			Settings: Strategy{
				SimilarityMethod:      Method{Kind: Exact},
				SimilarityThreshold:   0.95,
				CaseSensitive:         false,
				IgnoreWhitespace:      true,
				IgnorePunctuation:     false,
				NormalizeUnicode:      false,
				SplitStrategy:         Words,
				ComparisonScope:       Global,
				MinLength:             10,
				UseParallel:           true,
				IgnoreStopwords:       false,
				Stemming:              false,
				NgramSize:             3,
				LanguageDetection:     false,
				EncodingNormalization: true,
				SimilarityWeighting:   Weighting{Frequency: 0.4, Position: 0.4, Context: 0.2},
				AdaptiveThresholding:  false,
			},
		},
		{
			Name:        "Near Match",
			Description: "Find text with minor formatting differences",
			Settings: Strategy{
				SimilarityMethod:      Method{Kind: Levenshtein},
				SimilarityThreshold:   0.8,
				CaseSensitive:         false,
				IgnoreWhitespace:      true,
				IgnorePunctuation:     true,
				NormalizeUnicode:      true,
				SplitStrategy:         Words,
				ComparisonScope:       Global,
				MinLength:             10,
				UseParallel:           true,
				IgnoreStopwords:       true,
				Stemming:              false,
				NgramSize:             3,
				LanguageDetection:     false,
				EncodingNormalization: true,
				SimilarityWeighting:   Weighting{Frequency: 0.5, Position: 0.3, Context: 0.2},
				AdaptiveThresholding:  true,
			},
		},
		{
			Name:        "Fuzzy Match",
			Description: "Find text with typos and small variations",
			Settings: Strategy{
				SimilarityMethod:      Method{Kind: Levenshtein},
				SimilarityThreshold:   0.7,
				CaseSensitive:         false,
				IgnoreWhitespace:      true,
				IgnorePunctuation:     true,
				NormalizeUnicode:      true,
				SplitStrategy:         Sentences,
				ComparisonScope:       Global,
				MinLength:             5,
				UseParallel:           true,
				IgnoreStopwords:       true,
				Stemming:              true,
				NgramSize:             2,
				LanguageDetection:     true,
				EncodingNormalization: true,
				SimilarityWeighting:   Weighting{Frequency: 0.6, Position: 0.2, Context: 0.2},
				AdaptiveThresholding:  true,
			},
		},
		{
			Name:        "Similar Ideas",
			Description: "Find text expressing similar concepts",
			Settings: Strategy{
				SimilarityMethod:      Method{Kind: Semantic},
				SimilarityAggregation: AggregationMean,
				SimilarityThreshold:   0.6,
				CaseSensitive:         false,
				IgnoreWhitespace:      true,
				IgnorePunctuation:     true,
				NormalizeUnicode:      true,
				SplitStrategy:         Paragraphs,
				ComparisonScope:       Global,
				MinLength:             20,
				UseParallel:           true,
				IgnoreStopwords:       true,
				Stemming:              true,
				NgramSize:             3,
				LanguageDetection:     true,
				EncodingNormalization: true,
				SimilarityWeighting:   Weighting{Frequency: 0.3, Position: 0.3, Context: 0.4},
				AdaptiveThresholding:  true,
			},
		},
		{
			Name:        "Strict Large Blocks",
			Description: "Looks for large duplicated character sequences (useful for code or logs)",
			Settings: Strategy{
				SimilarityMethod:      Method{Kind: Exact},
				SimilarityThreshold:   0.9,
				CaseSensitive:         true,
				IgnoreWhitespace:      false,
				IgnorePunctuation:     false,
				NormalizeUnicode:      false,
				SplitStrategy:         Characters,
				ComparisonScope:       Global,
				MinLength:             50,
				UseParallel:           true,
				IgnoreStopwords:       false,
				Stemming:              false,
				NgramSize:             5,
				LanguageDetection:     false,
				EncodingNormalization: false,
				SimilarityWeighting:   Weighting{Frequency: 0.8, Position: 0.1, Context: 0.1},
				AdaptiveThresholding:  false,
			},
		},
		{
			Name:        "Loose Paragraph Matching",
			Description: "Groups paragraphs that share a high-level similarity or partial overlap",
			Settings: Strategy{
				SimilarityMethod:      Method{Kind: Semantic},
				SimilarityAggregation: AggregationMax,
				SimilarityThreshold:   0.65,
				CaseSensitive:         false,
				IgnoreWhitespace:      true,
				IgnorePunctuation:     true,
				NormalizeUnicode:      true,
				SplitStrategy:         Paragraphs,
				ComparisonScope:       Global,
				MinLength:             20,
				UseParallel:           true,
				IgnoreStopwords:       true,
				Stemming:              true,
				NgramSize:             2,
				LanguageDetection:     true,
				EncodingNormalization: true,
				SimilarityWeighting:   Weighting{Frequency: 0.4, Position: 0.2, Context: 0.4},
				AdaptiveThresholding:  true,
			},
		},
	}
}

// PresetByName looks up a preset by its exact name.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
