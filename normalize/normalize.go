// Package normalize implements C2: the seven-step deterministic
// normalization pipeline applied to every text before similarity
// comparison. Steps are conditional on strategy flags but always run
// in the fixed order spec.md section 4.2 mandates.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/strategy"
)

// Text runs the full pipeline over value using s's flags, resolving
// case folding and stemming against lang (the detected or default
// language). Stopwords come from resources.StopwordsFor, which picks the
// language from the text itself rather than from lang. It is pure:
// identical (s, lang, value) always produces identical output.
func Text(value string, s strategy.Strategy, lang string, resources *langres.Resources) string {
	result := value

	// Step 1: case folding (Turkish-aware when lang is known).
	if !s.CaseSensitive {
		result = casefold(result, lang)
	}

	// Step 2: whitespace collapsing.
	if s.IgnoreWhitespace {
		result = strings.Join(strings.Fields(result), " ")
	}

	// Step 3: punctuation stripping.
	if s.IgnorePunctuation {
		result = stripPunctuation(result)
	}

	// Step 4: Unicode normalization (NFD). Combining marks are
	// retained here; only step 7's ASCII fold removes them.
	if s.NormalizeUnicode {
		result = norm.NFD.String(result)
	}

	// Step 5: stopword removal.
	if s.IgnoreStopwords {
		result = removeStopwords(result, resources.StopwordsFor(result))
	}

	// Step 6: stemming.
	if s.Stemming {
		result = stemWords(result, lang)
	}

	// Step 7: encoding normalization (ASCII ∪ alphanumeric only).
	if s.EncodingNormalization {
		result = foldToASCIIAlnum(result)
	}

	return result
}

func stripPunctuation(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func removeStopwords(value string, stop map[string]struct{}) string {
	fields := strings.Fields(value)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, isStop := stop[strings.ToLower(f)]; isStop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func stemWords(value, lang string) string {
	fields := strings.Fields(value)
	for i, f := range fields {
		fields[i] = stem(f, lang)
	}
	return strings.Join(fields, " ")
}

// foldToASCIIAlnum strips diacritics (via NFD decomposition and mark
// removal) then keeps only runes satisfying ASCII-alphanumeric ∪
// alphanumeric: ASCII letters, digits, and whitespace (to preserve word
// boundaries) plus any non-ASCII alphanumeric (e.g. CJK, Cyrillic
// letters), dropping punctuation and symbols from either script that
// survived steps 3/4.
func foldToASCIIAlnum(value string) string {
	folded := stripAccents(value)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)):
			b.WriteRune(r)
		case r > unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		}
	}
	return b.String()
}
