package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// casefold lowercases value using Unicode case folding. Turkish is the
// one locale step 1 special-cases: "İ" folds to "i" and "I" folds to the
// dotless "ı", matching spec.md section 4.2's note that ASCII
// strings.ToLower mishandles Turkish dotted/dotless I.
func casefold(value, lang string) string {
	if lang == "tr" {
		return turkishCasefold(value)
	}
	return strings.ToLower(value)
}

func turkishCasefold(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		switch r {
		case 'İ':
			b.WriteRune('i')
		case 'I':
			b.WriteRune('ı')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// stripAccents decomposes value to NFD, drops combining marks (Unicode
// category Mn), and recomposes to NFC — the accent-insensitive half of
// step 7's encoding normalization.
func stripAccents(value string) string {
	decomposed := norm.NFD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}
