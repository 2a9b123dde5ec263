// Package strategy defines the value record that parameterises similarity
// comparison and grouping: the split strategy, similarity method, scope,
// thresholds, and the boolean normalization flags the engine honors on
// every comparison.
package strategy

// SplitStrategy controls how a normalized text is broken into comparison
// units.
type SplitStrategy string

const (
	Characters SplitStrategy = "Characters"
	Words      SplitStrategy = "Words"
	Sentences  SplitStrategy = "Sentences"
	Paragraphs SplitStrategy = "Paragraphs"
	WholeText  SplitStrategy = "WholeText"
)

// valid reports whether s is one of the defined split strategies.
func (s SplitStrategy) valid() bool {
	switch s {
	case Characters, Words, Sentences, Paragraphs, WholeText:
		return true
	}
	return false
}

// ContainingScope returns the scope one level above s, used by Local
// comparison_scope to find an item's candidate siblings.
func (s SplitStrategy) ContainingScope() SplitStrategy {
	switch s {
	case Characters:
		return Words
	case Words:
		return Sentences
	case Sentences:
		return Paragraphs
	case Paragraphs, WholeText:
		return WholeText
	default:
		return WholeText
	}
}

// ComparisonScope controls which prior items are considered as candidates
// for a given item during grouping.
type ComparisonScope string

const (
	Local  ComparisonScope = "Local"
	Global ComparisonScope = "Global"
)

func (c ComparisonScope) valid() bool {
	switch c {
	case Local, Global:
		return true
	}
	return false
}

// FuzzyAlgorithm enumerates the sub-variants of the Fuzzy similarity
// method family.
type FuzzyAlgorithm string

const (
	DamerauLevenshtein FuzzyAlgorithm = "DamerauLevenshtein"
	JaroWinkler        FuzzyAlgorithm = "JaroWinkler"
	Soundex            FuzzyAlgorithm = "Soundex"
	NGram              FuzzyAlgorithm = "NGram"
)

func (f FuzzyAlgorithm) valid() bool {
	switch f {
	case DamerauLevenshtein, JaroWinkler, Soundex, NGram:
		return true
	}
	return false
}

// MethodKind is the top-level discriminant of a similarity Method.
type MethodKind string

const (
	Exact      MethodKind = "Exact"
	Levenshtein MethodKind = "Levenshtein"
	Semantic    MethodKind = "Semantic"
	Fuzzy       MethodKind = "Fuzzy"
)

// Method identifies one of the similarity families from spec.md section 3:
// Exact | Levenshtein | Semantic | Fuzzy{variant}. It round-trips through
// JSON as either a bare string ("Exact") or, for the Fuzzy family, an
// object ({"Fuzzy": "JaroWinkler"}).
type Method struct {
	Kind  MethodKind
	Fuzzy FuzzyAlgorithm // only meaningful when Kind == Fuzzy
}

func (m Method) valid() bool {
	switch m.Kind {
	case Exact, Levenshtein, Semantic:
		return true
	case Fuzzy:
		return m.Fuzzy.valid()
	}
	return false
}

// String renders the method the way it appears in log fields and presets,
// e.g. "Exact" or "Fuzzy.JaroWinkler".
func (m Method) String() string {
	if m.Kind == Fuzzy {
		return string(Fuzzy) + "." + string(m.Fuzzy)
	}
	return string(m.Kind)
}

// Aggregation names how several partial scores for a single pair would be
// folded into one (mean or max). It is validated and round-tripped with
// the strategy; no similarity method reads it.
type Aggregation string

const (
	AggregationMean Aggregation = "mean"
	AggregationMax  Aggregation = "max"
)

func (a Aggregation) valid() bool {
	switch a {
	case AggregationMean, AggregationMax, "":
		return true
	}
	return false
}

// Weighting carries a frequency/position/context split. It is
// round-tripped for source fidelity with the original implementation's
// presets; no similarity method reads it.
type Weighting struct {
	Frequency float64 `json:"frequency"`
	Position  float64 `json:"position"`
	Context   float64 `json:"context"`
}

// Strategy fully describes how two texts are compared and how comparison
// results are grouped. See spec.md section 3 for field semantics and
// invariants; Validate/clamping lives in validate.go.
type Strategy struct {
	CaseSensitive         bool
	IgnoreWhitespace      bool
	IgnorePunctuation     bool
	NormalizeUnicode      bool
	IgnoreStopwords       bool
	Stemming              bool
	EncodingNormalization bool
	LanguageDetection     bool
	SplitStrategy         SplitStrategy
	ComparisonScope       ComparisonScope
	MinLength             uint
	NgramSize             uint
	SimilarityMethod      Method
	SimilarityThreshold   float64
	AdaptiveThresholding  bool
	UseParallel           bool
	SimilarityAggregation Aggregation
	SimilarityWeighting   Weighting
}

// Default returns the strategy described by the default column of
// spec.md section 3.
func Default() Strategy {
	return Strategy{
		CaseSensitive:         false,
		IgnoreWhitespace:      true,
		IgnorePunctuation:     true,
		NormalizeUnicode:      true,
		IgnoreStopwords:       false,
		Stemming:              false,
		EncodingNormalization: true,
		LanguageDetection:     false,
		SplitStrategy:         Words,
		ComparisonScope:       Global,
		MinLength:             10,
		NgramSize:             3,
		SimilarityMethod:      Method{Kind: Exact},
		SimilarityThreshold:   0.8,
		AdaptiveThresholding:  false,
		UseParallel:           true,
		SimilarityAggregation: AggregationMean,
		SimilarityWeighting:   Weighting{Frequency: 0.4, Position: 0.4, Context: 0.2},
	}
}
