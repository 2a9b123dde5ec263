package strategy

import (
	"encoding/json"
	"testing"
)

func TestDefaultMatchesSpec(t *testing.T) {
	d := Default()
	if d.SimilarityThreshold != 0.8 {
		t.Errorf("default threshold = %v, want 0.8", d.SimilarityThreshold)
	}
	if d.MinLength != 10 || d.NgramSize != 3 {
		t.Errorf("default min_length/ngram_size = %d/%d, want 10/3", d.MinLength, d.NgramSize)
	}
	if d.SplitStrategy != Words || d.ComparisonScope != Global {
		t.Errorf("default split/scope = %v/%v, want Words/Global", d.SplitStrategy, d.ComparisonScope)
	}
	if d.SimilarityMethod.Kind != Exact {
		t.Errorf("default method = %v, want Exact", d.SimilarityMethod)
	}
}

func TestMethodJSONRoundTrip(t *testing.T) {
	cases := []struct {
		method Method
		wire   string
	}{
		{Method{Kind: Exact}, `"Exact"`},
		{Method{Kind: Levenshtein}, `"Levenshtein"`},
		{Method{Kind: Semantic}, `"Semantic"`},
		{Method{Kind: Fuzzy, Fuzzy: JaroWinkler}, `{"Fuzzy":"JaroWinkler"}`},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.method)
		if err != nil {
			t.Fatalf("marshal %v: %v", c.method, err)
		}
		if string(b) != c.wire {
			t.Errorf("marshal(%v) = %s, want %s", c.method, b, c.wire)
		}
		var got Method
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if got != c.method {
			t.Errorf("unmarshal(%s) = %v, want %v", b, got, c.method)
		}
	}
}

func TestParseWireAcceptsCamelAndSnakeCase(t *testing.T) {
	base := Default()

	snake, err := ParseWire([]byte(`{"similarity_threshold": 0.5}`), base)
	if err != nil {
		t.Fatalf("snake case: %v", err)
	}
	if snake.SimilarityThreshold != 0.5 {
		t.Errorf("snake case threshold = %v, want 0.5", snake.SimilarityThreshold)
	}

	camel, err := ParseWire([]byte(`{"similarityThreshold": 0.5}`), base)
	if err != nil {
		t.Fatalf("camel case: %v", err)
	}
	if camel.SimilarityThreshold != 0.5 {
		t.Errorf("camel case threshold = %v, want 0.5", camel.SimilarityThreshold)
	}
}

func TestParseWireIgnoresUnknownKeys(t *testing.T) {
	base := Default()
	out, err := ParseWire([]byte(`{"totally_unknown_field": 42}`), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != base {
		t.Errorf("unknown key should leave strategy unchanged, got %+v", out)
	}
}

func TestValidateClampsOutOfRange(t *testing.T) {
	s := Default()
	s.SimilarityThreshold = 3.2
	s.NgramSize = 0

	clamped, warnings, err := Validate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped.SimilarityThreshold != 1 {
		t.Errorf("threshold clamp = %v, want 1", clamped.SimilarityThreshold)
	}
	if clamped.NgramSize != 1 {
		t.Errorf("ngram_size clamp = %v, want 1", clamped.NgramSize)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want 2 entries", warnings)
	}
}

func TestValidateRejectsUnknownEnum(t *testing.T) {
	s := Default()
	s.SimilarityMethod = Method{Kind: "Bogus"}
	if _, _, err := Validate(s); err == nil {
		t.Fatal("expected error for unknown similarity_method")
	}
}

func TestNegativeIntsCoerceOnParse(t *testing.T) {
	base := Default()
	out, err := ParseWire([]byte(`{"min_length": -5, "ngram_size": -1}`), base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.MinLength != 0 {
		t.Errorf("min_length = %d, want 0", out.MinLength)
	}
	if out.NgramSize != 1 {
		t.Errorf("ngram_size = %d, want 1", out.NgramSize)
	}
}

func TestPresetsMatchOriginalValues(t *testing.T) {
	p, ok := PresetByName("Near Match")
	if !ok {
		t.Fatal("Near Match preset not found")
	}
	if p.Settings.SimilarityMethod.Kind != Levenshtein {
		t.Errorf("Near Match method = %v, want Levenshtein", p.Settings.SimilarityMethod)
	}
	if p.Settings.SimilarityThreshold != 0.8 {
		t.Errorf("Near Match threshold = %v, want 0.8", p.Settings.SimilarityThreshold)
	}
	if !p.Settings.AdaptiveThresholding {
		t.Error("Near Match should enable adaptive thresholding")
	}

	if len(Presets()) != 6 {
		t.Errorf("len(Presets()) = %d, want 6", len(Presets()))
	}
}

func TestMarshalCanonicalRoundTrip(t *testing.T) {
	s := Default()
	b, err := MarshalCanonical(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	roundTripped, err := ParseWire(b, Strategy{})
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if roundTripped != s {
		t.Errorf("round trip mismatch: got %+v, want %+v", roundTripped, s)
	}
}
