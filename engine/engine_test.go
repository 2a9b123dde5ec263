package engine

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/loomtext/dedupweave/errors"
	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/strategy"
	"github.com/loomtext/dedupweave/telemetry"
	"github.com/loomtext/dedupweave/telemetry/metrics"
	telemetrytesting "github.com/loomtext/dedupweave/telemetry/testing"
)

func newTestEngine(s strategy.Strategy) *Engine {
	return New(s, langres.Overrides{}, nil)
}

func TestAddGetRoundTrip(t *testing.T) {
	e := newTestEngine(strategy.Default())
	idx := e.Add("hello world")
	got, envelope := e.Get(idx)
	if envelope != nil {
		t.Fatalf("Get: %v", envelope)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}
}

func TestGetOutOfRangeReturnsNotFound(t *testing.T) {
	e := newTestEngine(strategy.Default())
	_, envelope := e.Get(0)
	if envelope == nil || envelope.Code != errors.NotFound {
		t.Fatalf("expected NotFound envelope, got %+v", envelope)
	}
}

func TestAllReturnsIndependentCopy(t *testing.T) {
	e := newTestEngine(strategy.Default())
	e.Add("a")
	e.Add("b")
	items := e.All()
	items[0] = "mutated"
	fresh := e.All()
	if fresh[0] != "a" {
		t.Errorf("All() copy was not independent: %v", fresh)
	}
}

func TestClearEmptiesCorpus(t *testing.T) {
	e := newTestEngine(strategy.Default())
	e.Add("a")
	e.Clear()
	if len(e.All()) != 0 {
		t.Errorf("expected empty corpus after Clear")
	}
}

func TestSetStrategyAppliesKnownFields(t *testing.T) {
	e := newTestEngine(strategy.Default())
	payload := []byte(`{"similarity_method": "Levenshtein", "similarity_threshold": 0.5}`)
	applied, warnings, envelope := e.SetStrategy(payload)
	if envelope != nil {
		t.Fatalf("SetStrategy: %v", envelope)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if applied.SimilarityMethod.Kind != strategy.Levenshtein || applied.SimilarityThreshold != 0.5 {
		t.Errorf("unexpected applied strategy: %+v", applied)
	}

	raw, err := e.GetStrategy()
	if err != nil {
		t.Fatalf("GetStrategy: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode canonical strategy: %v", err)
	}
	if decoded["similarity_method"] != "Levenshtein" {
		t.Errorf("expected canonical strategy to reflect update, got %+v", decoded["similarity_method"])
	}
}

func TestSetStrategyRejectsUnknownEnumAsStrategyUpdateError(t *testing.T) {
	e := newTestEngine(strategy.Default())
	before, _ := e.GetStrategy()

	_, _, envelope := e.SetStrategy([]byte(`{"similarity_method": "Bogus"}`))
	if envelope == nil || envelope.Code != errors.StrategyUpdateError {
		t.Fatalf("expected StrategyUpdateError, got %+v", envelope)
	}

	after, _ := e.GetStrategy()
	if string(before) != string(after) {
		t.Errorf("strategy should be unchanged after a rejected update")
	}
}

func TestSetStrategyRejectsWrongJSONTypeAsDeserializationError(t *testing.T) {
	e := newTestEngine(strategy.Default())
	_, _, envelope := e.SetStrategy([]byte(`{"case_sensitive": "not-a-bool"}`))
	if envelope == nil || envelope.Code != errors.DeserializationError {
		t.Fatalf("expected DeserializationError, got %+v", envelope)
	}
}

func TestSetStrategyRejectsMalformedJSONAsDeserializationError(t *testing.T) {
	e := newTestEngine(strategy.Default())
	_, _, envelope := e.SetStrategy([]byte(`{invalid`))
	if envelope == nil || envelope.Code != errors.DeserializationError {
		t.Fatalf("expected DeserializationError for malformed JSON, got %+v", envelope)
	}
}

func TestSetStrategyAcceptsIntegerValuedFloatForIntegerField(t *testing.T) {
	e := newTestEngine(strategy.Default())
	applied, _, envelope := e.SetStrategy([]byte(`{"min_length": 3.0}`))
	if envelope != nil {
		t.Fatalf("SetStrategy: %v", envelope)
	}
	if applied.MinLength != 3 {
		t.Errorf("expected min_length 3, got %d", applied.MinLength)
	}
}

func TestSetStrategyIgnoresUnknownTopLevelField(t *testing.T) {
	e := newTestEngine(strategy.Default())
	_, _, envelope := e.SetStrategy([]byte(`{"not_a_real_field": true}`))
	if envelope != nil {
		t.Fatalf("unexpected rejection of unknown field: %v", envelope)
	}
}

func TestApplyPresetNearMatchRoundTrip(t *testing.T) {
	e := newTestEngine(strategy.Default())
	applied, envelope := e.ApplyPreset("Near Match")
	if envelope != nil {
		t.Fatalf("ApplyPreset: %v", envelope)
	}
	want, _ := strategy.PresetByName("Near Match")
	if applied.SimilarityMethod != want.Settings.SimilarityMethod {
		t.Errorf("preset not applied: %+v", applied)
	}

	first, _ := e.GetStrategy()
	second, _ := e.GetStrategy()
	if string(first) != string(second) {
		t.Errorf("expected byte-identical canonicalised JSON on repeated get_strategy calls")
	}
}

func TestApplyPresetUnknownNameIsInvalidInput(t *testing.T) {
	e := newTestEngine(strategy.Default())
	_, envelope := e.ApplyPreset("Nonexistent Preset")
	if envelope == nil || envelope.Code != errors.InvalidInput {
		t.Fatalf("expected InvalidInput, got %+v", envelope)
	}
}

func TestDeduplicateExactWholeCorpus(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Exact}
	s.MinLength = 1
	e := newTestEngine(s)
	e.Add("Hello World")
	e.Add("hello world")
	e.Add("goodbye")

	result, err := e.Deduplicate()
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 1 || result.Stats.DuplicateGroups != 1 {
		t.Fatalf("expected one duplicate group, got %+v", result)
	}
}

func TestDeduplicateSemanticCachesEmbeddingsAcrossPairs(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Semantic}
	s.SimilarityThreshold = 0.99
	s.MinLength = 1
	s.UseParallel = false
	e := newTestEngine(s)
	e.Add("alpha beta gamma")
	e.Add("alpha beta gamma")
	e.Add("delta epsilon zeta")

	result, err := e.Deduplicate()
	if err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected identical texts to group under Semantic, got %+v", result)
	}

	snap := e.snapshotState()
	fingerprint := snap.cache.fingerprintFor(snap.strat)
	if len(snap.cache.vectors) == 0 {
		t.Error("expected the embedding cache to be populated after a Semantic run")
	}
	if _, ok := snap.cache.vectors[fmt.Sprintf("%d:%s", 0, fingerprint)]; !ok {
		t.Error("expected item 0's embedding to be cached")
	}
}

func TestDeduplicateSemanticEmitsCacheTelemetry(t *testing.T) {
	fc := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: true, Emitter: fc})
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	telemetry.SetGlobalSystem(sys)
	defer telemetry.SetGlobalSystem(nil)

	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Semantic}
	s.SimilarityThreshold = 0.99
	s.MinLength = 1
	s.UseParallel = false
	e := newTestEngine(s)
	e.Add("alpha beta gamma")
	e.Add("alpha beta gamma")
	e.Add("delta epsilon zeta")

	if _, err := e.Deduplicate(); err != nil {
		t.Fatalf("Deduplicate: %v", err)
	}

	if !fc.HasMetric(metrics.EngineCacheMissesTotal) {
		t.Errorf("expected at least one cache miss counter, recorded: %+v", fc.GetMetricsByName(metrics.EngineCacheMissesTotal))
	}
	if !fc.HasMetric(metrics.EngineCacheHitsTotal) {
		t.Errorf("expected at least one cache hit counter once item 0's embedding is reused across its pairs with items 1 and 2")
	}
}

func TestDeduplicateUnitsSplitDedupe(t *testing.T) {
	s := strategy.Default()
	s.SimilarityMethod = strategy.Method{Kind: strategy.Levenshtein}
	s.SplitStrategy = strategy.Sentences
	s.ComparisonScope = strategy.Local
	s.SimilarityThreshold = 0.6
	s.MinLength = 1
	e := newTestEngine(s)

	text := "The cat sat on the mat. The cat sat on the rug.\n\nThe cat sat on the log."
	result, err := e.DeduplicateUnits(text)
	if err != nil {
		t.Fatalf("DeduplicateUnits: %v", err)
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected 1 group confined to the first paragraph, got %+v", result.Groups)
	}
}
