package langres

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStopwordsForMergesOverrides(t *testing.T) {
	r := New(false, Overrides{StopWords: map[string][]string{"en": {"widget"}}})
	set := r.StopwordsFor("anything")
	if _, ok := set["the"]; !ok {
		t.Error("expected base stopword 'the' to be present")
	}
	if _, ok := set["widget"]; !ok {
		t.Error("expected user override 'widget' to be present")
	}
}

func TestSentenceDelimsUnion(t *testing.T) {
	r := New(false, Overrides{SentenceDelimiters: []rune{';'}})
	delims := r.SentenceDelims()
	if _, ok := delims['.']; !ok {
		t.Error("expected base delimiter '.' present")
	}
	if _, ok := delims[';']; !ok {
		t.Error("expected user delimiter ';' present")
	}
}

func TestParagraphDelimDefaultsWhenNoOverride(t *testing.T) {
	r := New(false, Overrides{})
	if r.ParagraphDelim() != "\n\n" {
		t.Errorf("ParagraphDelim() = %q, want \\n\\n", r.ParagraphDelim())
	}
}

func TestDetectFallsBackToEnglishOnShortInput(t *testing.T) {
	if got := Detect("hi"); got != "en" {
		t.Errorf("Detect(short) = %q, want en", got)
	}
}

func TestDetectRecognisesNonLatinScripts(t *testing.T) {
	if got := Detect("это русский текст для теста"); got != "ru" {
		t.Errorf("Detect(russian) = %q, want ru", got)
	}
	if got := Detect("これは日本語のテストです"); got != "ja" {
		t.Errorf("Detect(japanese) = %q, want ja", got)
	}
}

func TestLoadOverridesFileParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yaml")
	content := "stop_words:\n  en: [\"acme\", \"corp\"]\nsentence_delimiters: [\"~\"]\nparagraph_delimiter: \"\\r\\n\\r\\n\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOverridesFile(path)
	if err != nil {
		t.Fatalf("LoadOverridesFile: %v", err)
	}
	if len(o.StopWords["en"]) != 2 {
		t.Errorf("stop words = %v, want 2 entries", o.StopWords["en"])
	}
	if len(o.SentenceDelimiters) != 1 || o.SentenceDelimiters[0] != '~' {
		t.Errorf("sentence delimiters = %v, want ['~']", o.SentenceDelimiters)
	}
	if o.ParagraphDelimiter != "\r\n\r\n" {
		t.Errorf("paragraph delimiter = %q", o.ParagraphDelimiter)
	}
}

func TestDiscoverReturnsZeroValueWhenNoFileFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	o, err := Discover("dedupweave-nonexistent-app")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.StopWords) != 0 {
		t.Errorf("expected zero-value overrides, got %+v", o)
	}
}
