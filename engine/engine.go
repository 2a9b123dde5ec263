// Package engine implements C6: the stateful façade that owns a text
// corpus and an active strategy, and exposes the operations
// spec.md section 5 names (add, get, all, clear, set_strategy,
// get_strategy, deduplicate) behind a single mutex.
package engine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/loomtext/dedupweave/errors"
	"github.com/loomtext/dedupweave/grouping"
	"github.com/loomtext/dedupweave/langres"
	"github.com/loomtext/dedupweave/logging"
	"github.com/loomtext/dedupweave/schema"
	"github.com/loomtext/dedupweave/similarity"
	"github.com/loomtext/dedupweave/strategy"
	"github.com/loomtext/dedupweave/telemetry"
	"github.com/loomtext/dedupweave/telemetry/metrics"
)

// Engine is the façade's runtime state: a corpus of texts, the strategy
// currently governing comparison and grouping, the language resources
// built from it, and an embedding cache for the Semantic method. All
// operations serialize through mu; deduplicate additionally snapshots
// corpus and strategy at the start of its run so a concurrent add/
// set_strategy from another goroutine cannot be observed mid-run.
type Engine struct {
	mu        sync.Mutex
	corpus    []string
	strat     strategy.Strategy
	resources *langres.Resources
	overrides langres.Overrides
	logger    *logging.Logger
	cache     *embeddingCache
}

// New constructs an Engine with the given starting strategy and
// stopword/delimiter overrides (normally langres.Discover's result).
// logger may be nil, in which case a no-op logger-shaped wrapper around
// logging.NewCLI is not built — callers that care about operational
// logs should pass one from logging.New/NewCLI.
func New(s strategy.Strategy, overrides langres.Overrides, logger *logging.Logger) *Engine {
	return &Engine{
		corpus:    nil,
		strat:     s,
		resources: langres.New(s.LanguageDetection, overrides),
		overrides: overrides,
		logger:    logger,
		cache:     newEmbeddingCache(),
	}
}

// Add appends text to the corpus and returns its index.
func (e *Engine) Add(text string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.corpus = append(e.corpus, text)
	idx := len(e.corpus) - 1
	telemetry.EmitCounter(metrics.EngineAddItemTotal, 1, nil)
	if e.logger != nil {
		e.logger.Debug("item added")
	}
	return idx
}

// Get returns the item at idx, or a NotFound envelope if idx is out of
// range.
func (e *Engine) Get(idx int) (string, *errors.Envelope) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if idx < 0 || idx >= len(e.corpus) {
		return "", errors.NotFoundError(uint(idx))
	}
	return e.corpus[idx], nil
}

// All returns a copy of the full corpus in insertion order.
func (e *Engine) All() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.corpus))
	copy(out, e.corpus)
	return out
}

// Clear empties the corpus and invalidates the embedding cache.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.corpus = nil
	e.cache = newEmbeddingCache()
}

// GetStrategy returns the active strategy's canonical snake_case JSON
// encoding.
func (e *Engine) GetStrategy() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strategy.MarshalCanonical(e.strat)
}

// SetStrategy validates and applies a raw strategy update payload:
// schema validation first (catches malformed JSON shapes as
// DeserializationError), then ParseWire overlaying the current strategy,
// then Validate (enum rejection as StrategyUpdateError, numeric
// clamping with warnings). The previously active strategy is left
// untouched on any failure. On success the new strategy's language
// resources replace the old ones and the embedding cache is invalidated,
// since a strategy change can alter how texts are normalized before
// encoding.
func (e *Engine) SetStrategy(payload []byte) (strategy.Strategy, []string, *errors.Envelope) {
	diags, err := schema.ValidateStrategyPayload(payload)
	if err != nil {
		return strategy.Strategy{}, nil, errors.DeserializationErrorFrom(err)
	}
	if len(diags) > 0 {
		return strategy.Strategy{}, nil, classifySchemaDiagnostics(diags)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	parsed, err := strategy.ParseWire(payload, e.strat)
	if err != nil {
		return strategy.Strategy{}, nil, errors.DeserializationErrorFrom(err)
	}

	validated, warnings, err := strategy.Validate(parsed)
	if err != nil {
		return strategy.Strategy{}, nil, errors.StrategyUpdateErrorFrom(err)
	}

	e.strat = validated
	e.resources = langres.New(validated.LanguageDetection, e.overrides)
	e.cache = newEmbeddingCache()

	telemetry.EmitCounter(metrics.EngineStrategyUpdateTotal, 1, nil)
	if e.logger != nil {
		e.logger.Info("strategy updated")
	}

	return validated, warnings, nil
}

// ApplyPreset looks up a built-in preset by name and applies it as the
// active strategy, the same way SetStrategy applies an external payload
// (resources rebuilt, cache invalidated). Unlike SetStrategy a preset's
// fields are already valid, but Validate still runs for consistency
// (clamping is a no-op on well-formed preset data).
func (e *Engine) ApplyPreset(name string) (strategy.Strategy, *errors.Envelope) {
	preset, ok := strategy.PresetByName(name)
	if !ok {
		return strategy.Strategy{}, errors.InvalidInputError(fmt.Sprintf("unknown preset %q", name))
	}

	validated, _, err := strategy.Validate(preset.Settings)
	if err != nil {
		return strategy.Strategy{}, errors.StrategyUpdateErrorFrom(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.strat = validated
	e.resources = langres.New(validated.LanguageDetection, e.overrides)
	e.cache = newEmbeddingCache()

	telemetry.EmitCounter(metrics.EngineStrategyUpdateTotal, 1, nil)
	return validated, nil
}

// classifySchemaDiagnostics maps a schema violation to the closer-fitting
// error code: an enum violation on a known field is a StrategyUpdateError
// (valid JSON shape, invalid domain vocabulary); anything else (wrong
// JSON type) is a DeserializationError.
func classifySchemaDiagnostics(diags []schema.Diagnostic) *errors.Envelope {
	for _, d := range diags {
		if strings.HasSuffix(d.Keyword, "enum") {
			return errors.StrategyUpdateErrorFrom(fmt.Errorf("%s: %s", d.Pointer, d.Message))
		}
	}
	first := diags[0]
	return errors.DeserializationErrorFrom(fmt.Errorf("%s: %s", first.Pointer, first.Message))
}

// snapshot is an immutable view of the engine's state taken under lock
// at the start of deduplicate(), so the comparison pass runs against a
// consistent corpus and strategy even if Add/SetStrategy is called
// concurrently from another goroutine.
type snapshot struct {
	corpus    []string
	strat     strategy.Strategy
	resources *langres.Resources
	cache     *embeddingCache
}

func (e *Engine) snapshotState() snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	corpus := make([]string, len(e.corpus))
	copy(corpus, e.corpus)
	return snapshot{corpus: corpus, strat: e.strat, resources: e.resources, cache: e.cache}
}

// Deduplicate groups the whole corpus under the active strategy,
// snapshotting corpus+strategy first. The Semantic method routes
// through a cache-aware scorer (embeddings computed once per item per
// strategy fingerprint and reused across the O(n^2) candidate
// comparisons); every other method calls grouping.Deduplicate directly.
func (e *Engine) Deduplicate() (grouping.Result, error) {
	snap := e.snapshotState()

	if snap.strat.SimilarityMethod.Kind != strategy.Semantic {
		result, err := grouping.Deduplicate(snap.corpus, snap.strat, snap.resources)
		telemetry.EmitCounter(metrics.EngineDeduplicateTotal, 1, nil)
		return result, err
	}

	scoreFn, thresholdFn := snap.cachedSemanticFuncs()
	result, err := grouping.RunGreedy(len(snap.corpus), grouping.GlobalCandidates, scoreFn, thresholdFn, snap.strat.UseParallel)
	telemetry.EmitCounter(metrics.EngineDeduplicateTotal, 1, nil)
	return result, err
}

// DeduplicateUnits splits a single document per the active strategy's
// split_strategy and groups its units, honoring comparison_scope's
// Local/Global distinction (spec.md's split-dedupe operation).
func (e *Engine) DeduplicateUnits(text string) (grouping.Result, error) {
	snap := e.snapshotState()
	return grouping.GroupUnits(text, snap.strat, snap.resources)
}

// cachedSemanticFuncs builds the ScoreFunc/ThresholdFunc pair for the
// Semantic method against this snapshot, consulting and populating
// cache for each item's embedding exactly once regardless of how many
// pairs it participates in.
func (s snapshot) cachedSemanticFuncs() (grouping.ScoreFunc, grouping.ThresholdFunc) {
	fingerprint := s.cache.fingerprintFor(s.strat)

	scoreFn := func(i, j int) (float64, error) {
		a, b := s.corpus[i], s.corpus[j]
		if len(a) < int(s.strat.MinLength) || len(b) < int(s.strat.MinLength) {
			telemetry.EmitCounter(metrics.SimilarityShortCircuitTotal, 1, nil)
			return 0.0, nil
		}

		langA := langres.Detect(a)
		langB := langres.Detect(b)
		languagesDiffer := langA != langB

		if s.strat.LanguageDetection && languagesDiffer {
			telemetry.EmitCounter(metrics.SimilarityLanguageGateTotal, 1, map[string]string{metrics.TagLanguage: langA})
			return 0.0, nil
		}

		vecA, err := s.cache.embeddingFor(i, a, s.strat, langA, s.resources, fingerprint)
		if err != nil {
			return 0, err
		}
		vecB, err := s.cache.embeddingFor(j, b, s.strat, langB, s.resources, fingerprint)
		if err != nil {
			return 0, err
		}

		score := similarity.CosineFromVectors(vecA, vecB)
		return similarity.ApplyCrossLanguagePenalty(score, languagesDiffer), nil
	}

	thresholdFn := func(i, j int) float64 {
		return similarity.EffectiveThreshold(s.strat, len(s.corpus[i]), len(s.corpus[j]))
	}

	return scoreFn, thresholdFn
}
