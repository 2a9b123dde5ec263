package normalize

import "strings"

// stem applies a lightweight suffix-stripping stemmer for lang, falling
// back to the identity function when no table exists for that language
// (never an error — spec.md requires stemming to degrade gracefully,
// and a missing Snowball-equivalent backend for a given language is
// exactly such a degradation).
func stem(word, lang string) string {
	if word == "" {
		return word
	}
	switch lang {
	case "en":
		return stemEnglish(word)
	default:
		if suffixes, ok := suffixTables[lang]; ok {
			return stripFirstMatch(word, suffixes)
		}
		return word
	}
}

// suffixTables holds a small, ordered set of inflectional suffixes per
// non-English language. This is an explicit, named gap relative to a
// full Snowball implementation: it catches the common cases (plural and
// the most frequent verb endings) without attempting full conflation.
var suffixTables = map[string][]string{
	"fr": {"ement", "issons", "issez", "ions", "aient", "erez", "es", "er", "ée", "és", "e", "s"},
	"es": {"mente", "ando", "iendo", "ados", "idas", "ción", "ar", "er", "ir", "os", "as", "a", "o", "s"},
	"de": {"ungen", "heit", "keit", "lich", "ern", "en", "er", "es", "e", "s"},
	"it": {"mente", "zione", "anti", "enti", "are", "ere", "ire", "i", "o", "a", "e"},
	"pt": {"mente", "ação", "ados", "idas", "ar", "er", "ir", "os", "as", "a", "o", "s"},
	"nl": {"ische", "heid", "eren", "en", "er", "e", "s"},
	"sv": {"ande", "else", "heten", "aren", "or", "en", "et", "ar", "er", "a", "s"},
	"tr": {"ların", "lerin", "ları", "leri", "lar", "ler", "dır", "dir"},
}

// stripFirstMatch removes the first (longest, since suffixes must be
// supplied longest-first) matching suffix that leaves at least three
// runes of stem behind.
func stripFirstMatch(word string, suffixes []string) string {
	runes := []rune(word)
	for _, suf := range suffixes {
		sr := []rune(suf)
		if len(runes) <= len(sr)+2 {
			continue
		}
		if strings.HasSuffix(word, suf) {
			return string(runes[:len(runes)-len(sr)])
		}
	}
	return word
}

// stemEnglish is a reduced Porter2-equivalent: it handles the dominant
// inflectional suffix classes (plural/possessive, -ing, -ed, -ly,
// comparative/superlative) without the full Porter2 step machinery.
func stemEnglish(word string) string {
	runes := []rune(word)
	n := len(runes)
	if n <= 3 {
		return word
	}

	lower := strings.ToLower(word)

	switch {
	case strings.HasSuffix(lower, "ies") && n > 4:
		return string(runes[:n-3]) + "y"
	case strings.HasSuffix(lower, "sses"):
		return string(runes[:n-2])
	case strings.HasSuffix(lower, "ing") && n > 5:
		return restoreSilentE(string(runes[:n-3]))
	case strings.HasSuffix(lower, "eed") && n > 4:
		return string(runes[:n-1])
	case strings.HasSuffix(lower, "ed") && n > 4:
		return restoreSilentE(string(runes[:n-2]))
	case strings.HasSuffix(lower, "ly") && n > 4:
		return string(runes[:n-2])
	case strings.HasSuffix(lower, "er") && n > 4:
		return string(runes[:n-2])
	case strings.HasSuffix(lower, "est") && n > 5:
		return string(runes[:n-3])
	case strings.HasSuffix(lower, "'s"):
		return string(runes[:n-2])
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && n > 3:
		return string(runes[:n-1])
	}
	return word
}

// restoreSilentE undoubles a final doubled consonant left behind by
// stripping -ing/-ed (e.g. "running" -> "runn" -> "run"). It does not
// re-append a silent "e", so "hoping" still stems to "hop".
func restoreSilentE(stem string) string {
	runes := []rune(stem)
	n := len(runes)
	if n >= 2 && runes[n-1] == runes[n-2] && isConsonant(runes[n-1]) {
		return string(runes[:n-1])
	}
	return stem
}

func isConsonant(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return false
	}
	return true
}
