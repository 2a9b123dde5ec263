package langres

import "unicode"

// scriptRanges maps a handful of Unicode ranges to a language code for
// scripts that are not shared with the Latin-trigram family below.
var scriptRanges = []struct {
	code string
	in   func(r rune) bool
}{
	{"ja", isHiraganaKatakana},
	{"zh", func(r rune) bool { return unicode.Is(unicode.Han, r) }},
	{"ko", func(r rune) bool { return unicode.Is(unicode.Hangul, r) }},
	{"ru", func(r rune) bool { return unicode.Is(unicode.Cyrillic, r) }},
	{"ar", func(r rune) bool { return unicode.Is(unicode.Arabic, r) }},
	{"hi", func(r rune) bool { return unicode.Is(unicode.Devanagari, r) }},
}

func isHiraganaKatakana(r rune) bool {
	return unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r)
}

// latinTrigrams holds a handful of highly discriminating trigrams per
// Latin-script language, used to disambiguate en/fr/es/de/it/pt/nl/sv/tr
// once script-based detection has ruled out the non-Latin families.
// This is a deliberately small heuristic, not a statistical language
// model: spec.md only requires detection to degrade gracefully to
// English, not to be exhaustive.
var latinTrigrams = map[string][]string{
	"en": {"the", "ing", "and", "tio"},
	"fr": {"les", "ent", "que", "tio"},
	"es": {"que", "los", "ión", "ando"},
	"de": {"sch", "ich", "ein", "und"},
	"it": {"che", "zio", "ment", "gli"},
	"pt": {"ção", "que", "dos", "ent"},
	"nl": {"het", "ijk", "een", "van"},
	"sv": {"och", "att", "ing", "för"},
	"tr": {"lar", "ler", "bir", "için"},
}

// Detect returns the best-guess two-letter language code for text,
// falling back to "en" when the text is too short or ambiguous to
// classify, per spec.md section 4.1 ("fall back to English on
// failure").
func Detect(text string) string {
	runes := []rune(text)
	if len(runes) < 3 {
		return "en"
	}

	for _, sr := range scriptRanges {
		for _, r := range runes {
			if sr.in(r) {
				return sr.code
			}
		}
	}

	return detectLatin(text)
}

func detectLatin(text string) string {
	lower := []rune(text)
	for i := range lower {
		lower[i] = unicode.ToLower(lower[i])
	}
	folded := string(lower)

	best := "en"
	bestScore := -1
	tied := false
	for code, trigrams := range latinTrigrams {
		score := 0
		for _, tg := range trigrams {
			score += countOccurrences(folded, tg)
		}
		if score > bestScore {
			bestScore = score
			best = code
			tied = false
		} else if score == bestScore {
			tied = true
		}
	}
	if bestScore <= 0 || tied {
		return "en"
	}
	return best
}

func countOccurrences(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
		}
	}
	return count
}
