package langres

// Overrides carries user-supplied additions to the base stopword and
// delimiter tables. They are always additive: merging never removes a
// base entry, per spec.md section 4.1. See overrides.go for how these
// are discovered on disk.
type Overrides struct {
	StopWords           map[string][]string
	SentenceDelimiters  []rune
	ParagraphDelimiter  string // empty means "use the base delimiter"
}

// Resources is the runtime view of C1: base tables merged with one set
// of user overrides, built once at engine construction and read-only
// thereafter (spec.md section 9: "process-wide resources ... read-only
// for the engine's lifetime").
type Resources struct {
	detectLanguage bool
	overrides      Overrides
	stopwordCache  map[string]map[string]struct{}
}

// New builds a Resources view. detectLanguage controls whether
// StopwordsFor performs language detection (spec.md: "if language
// detection is enabled, detect language of text, fall back to English
// on failure").
func New(detectLanguage bool, overrides Overrides) *Resources {
	return &Resources{
		detectLanguage: detectLanguage,
		overrides:      overrides,
		stopwordCache:  make(map[string]map[string]struct{}),
	}
}

// StopwordsFor returns the merged stopword set applicable to text: the
// detected (or default English) language's base set unioned with any
// user overrides for that language.
func (r *Resources) StopwordsFor(text string) map[string]struct{} {
	lang := "en"
	if r.detectLanguage {
		lang = Detect(text)
	}
	return r.stopwordsForLang(lang)
}

func (r *Resources) stopwordsForLang(lang string) map[string]struct{} {
	if cached, ok := r.stopwordCache[lang]; ok {
		return cached
	}

	set := make(map[string]struct{})
	for _, w := range baseStopwords[lang] {
		set[w] = struct{}{}
	}
	for _, w := range r.overrides.StopWords[lang] {
		set[w] = struct{}{}
	}
	r.stopwordCache[lang] = set
	return set
}

// SentenceDelims returns the union of base and user sentence delimiters.
func (r *Resources) SentenceDelims() map[rune]struct{} {
	set := make(map[rune]struct{}, len(baseSentenceDelimiters)+len(r.overrides.SentenceDelimiters))
	for _, c := range baseSentenceDelimiters {
		set[c] = struct{}{}
	}
	for _, c := range r.overrides.SentenceDelimiters {
		set[c] = struct{}{}
	}
	return set
}

// ParagraphDelim returns the active paragraph delimiter: the user
// override if one was supplied, otherwise the base default.
func (r *Resources) ParagraphDelim() string {
	if r.overrides.ParagraphDelimiter != "" {
		return r.overrides.ParagraphDelimiter
	}
	return baseParagraphDelimiter
}
