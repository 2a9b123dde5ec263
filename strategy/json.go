package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// MarshalJSON renders the method as a bare string for non-fuzzy kinds and
// as {"Fuzzy": "<variant>"} for the fuzzy family, per spec.md section 6.
func (m Method) MarshalJSON() ([]byte, error) {
	if m.Kind == Fuzzy {
		return json.Marshal(map[string]string{"Fuzzy": string(m.Fuzzy)})
	}
	return json.Marshal(string(m.Kind))
}

// UnmarshalJSON accepts either a bare string ("Exact") or a single-key
// object ({"Fuzzy": "JaroWinkler"}).
func (m *Method) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		m.Kind = MethodKind(s)
		m.Fuzzy = ""
		return nil
	}
	var obj map[string]string
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("similarity_method: %w", err)
	}
	variant, ok := obj["Fuzzy"]
	if !ok || len(obj) != 1 {
		return fmt.Errorf("similarity_method: expected a string or {\"Fuzzy\": <variant>}")
	}
	m.Kind = Fuzzy
	m.Fuzzy = FuzzyAlgorithm(variant)
	return nil
}

// wireStrategy is the permissive, fully-optional mirror of Strategy used
// to parse external JSON: unset fields keep the engine's current defaults,
// present-but-wrong-shaped fields surface a deserialization error, and
// present-but-out-of-range fields are clamped by Validate rather than
// rejected.
type wireStrategy struct {
	CaseSensitive         *bool        `json:"case_sensitive,omitempty"`
	IgnoreWhitespace      *bool        `json:"ignore_whitespace,omitempty"`
	IgnorePunctuation     *bool        `json:"ignore_punctuation,omitempty"`
	NormalizeUnicode      *bool        `json:"normalize_unicode,omitempty"`
	IgnoreStopwords       *bool        `json:"ignore_stopwords,omitempty"`
	Stemming              *bool        `json:"stemming,omitempty"`
	EncodingNormalization *bool        `json:"encoding_normalization,omitempty"`
	LanguageDetection     *bool        `json:"language_detection,omitempty"`
	SplitStrategy         *string      `json:"split_strategy,omitempty"`
	ComparisonScope       *string      `json:"comparison_scope,omitempty"`
	MinLength             *float64     `json:"min_length,omitempty"`
	NgramSize             *float64     `json:"ngram_size,omitempty"`
	SimilarityMethod      *Method      `json:"similarity_method,omitempty"`
	SimilarityThreshold   *float64     `json:"similarity_threshold,omitempty"`
	AdaptiveThresholding  *bool        `json:"adaptive_thresholding,omitempty"`
	UseParallel           *bool        `json:"use_parallel,omitempty"`
	SimilarityAggregation *string      `json:"similarity_aggregation,omitempty"`
	SimilarityWeighting   *Weighting   `json:"similarity_weighting,omitempty"`
}

// toSnakeCase converts an accepted camelCase key to its canonical
// snake_case spelling; snake_case keys pass through unchanged. Unknown
// keys (neither spelling) are ignored, per spec.md section 6.
func toSnakeCase(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeKeys rewrites any camelCase top-level keys to their snake_case
// equivalent so a single set of json tags can accept both spellings.
func normalizeKeys(raw map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		snake := toSnakeCase(k)
		if _, exists := out[snake]; !exists {
			out[snake] = v
		}
	}
	return out
}

// ParseWire decodes raw strategy JSON into a Strategy, starting from base
// (normally the engine's current strategy) and overlaying any fields
// present in data. It returns a deserialization error for malformed JSON
// or wrongly-typed known fields; out-of-range values are left for
// Validate to clamp.
func ParseWire(data []byte, base Strategy) (Strategy, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Strategy{}, fmt.Errorf("malformed strategy JSON: %w", err)
	}
	raw = normalizeKeys(raw)

	normalized, err := json.Marshal(raw)
	if err != nil {
		return Strategy{}, err
	}

	var w wireStrategy
	dec := json.NewDecoder(bytes.NewReader(normalized))
	if err := dec.Decode(&w); err != nil {
		return Strategy{}, fmt.Errorf("malformed strategy fields: %w", err)
	}

	out := base
	if w.CaseSensitive != nil {
		out.CaseSensitive = *w.CaseSensitive
	}
	if w.IgnoreWhitespace != nil {
		out.IgnoreWhitespace = *w.IgnoreWhitespace
	}
	if w.IgnorePunctuation != nil {
		out.IgnorePunctuation = *w.IgnorePunctuation
	}
	if w.NormalizeUnicode != nil {
		out.NormalizeUnicode = *w.NormalizeUnicode
	}
	if w.IgnoreStopwords != nil {
		out.IgnoreStopwords = *w.IgnoreStopwords
	}
	if w.Stemming != nil {
		out.Stemming = *w.Stemming
	}
	if w.EncodingNormalization != nil {
		out.EncodingNormalization = *w.EncodingNormalization
	}
	if w.LanguageDetection != nil {
		out.LanguageDetection = *w.LanguageDetection
	}
	if w.SplitStrategy != nil {
		out.SplitStrategy = SplitStrategy(*w.SplitStrategy)
	}
	if w.ComparisonScope != nil {
		out.ComparisonScope = ComparisonScope(*w.ComparisonScope)
	}
	if w.MinLength != nil {
		out.MinLength = clampUintFromSigned(*w.MinLength, 0)
	}
	if w.NgramSize != nil {
		out.NgramSize = clampUintFromSigned(*w.NgramSize, 1)
	}
	if w.SimilarityMethod != nil {
		out.SimilarityMethod = *w.SimilarityMethod
	}
	if w.SimilarityThreshold != nil {
		out.SimilarityThreshold = *w.SimilarityThreshold
	}
	if w.AdaptiveThresholding != nil {
		out.AdaptiveThresholding = *w.AdaptiveThresholding
	}
	if w.UseParallel != nil {
		out.UseParallel = *w.UseParallel
	}
	if w.SimilarityAggregation != nil {
		out.SimilarityAggregation = Aggregation(*w.SimilarityAggregation)
	}
	if w.SimilarityWeighting != nil {
		out.SimilarityWeighting = *w.SimilarityWeighting
	}

	return out, nil
}

// clampUintFromSigned coerces a wire number to an unsigned field, flooring
// negatives at floor (spec.md: "coerced from signed negatives") and
// truncating any fractional part (the JSON Schema "integer" type accepts
// a float with a zero fraction like 3.0, which a strict int64 decode
// target would reject as a Go-internal type-mismatch error).
func clampUintFromSigned(v float64, floor uint) uint {
	truncated := int64(v)
	if truncated < int64(floor) {
		return floor
	}
	return uint(truncated)
}

// MarshalCanonical renders s as the snake_case JSON object external
// callers round-trip through get_strategy/update_strategy.
func MarshalCanonical(s Strategy) ([]byte, error) {
	out := map[string]interface{}{
		"case_sensitive":         s.CaseSensitive,
		"ignore_whitespace":      s.IgnoreWhitespace,
		"ignore_punctuation":     s.IgnorePunctuation,
		"normalize_unicode":      s.NormalizeUnicode,
		"ignore_stopwords":       s.IgnoreStopwords,
		"stemming":               s.Stemming,
		"encoding_normalization": s.EncodingNormalization,
		"language_detection":     s.LanguageDetection,
		"split_strategy":         s.SplitStrategy,
		"comparison_scope":       s.ComparisonScope,
		"min_length":             s.MinLength,
		"ngram_size":             s.NgramSize,
		"similarity_method":      s.SimilarityMethod,
		"similarity_threshold":   s.SimilarityThreshold,
		"adaptive_thresholding":  s.AdaptiveThresholding,
		"use_parallel":           s.UseParallel,
		"similarity_aggregation": s.SimilarityAggregation,
		"similarity_weighting":   s.SimilarityWeighting,
	}
	return json.Marshal(out)
}
