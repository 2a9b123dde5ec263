// Package metrics names the counters, histograms, and tag keys the
// engine emits through package telemetry. Keeping them as constants
// here (rather than inline string literals at each call site) is what
// keeps dashboards and tests from drifting when a metric is renamed.
package metrics

// Similarity Kernel (C4) metrics
const (
	SimilarityCallsTotal      = "similarity_calls_total"
	SimilarityCallMs          = "similarity_call_ms"
	SimilarityShortCircuitTotal = "similarity_short_circuit_total"
	SimilarityLanguageGateTotal = "similarity_language_gate_total"
)

// Grouping Engine (C5) metrics
const (
	GroupingRunsTotal     = "grouping_runs_total"
	GroupingRunMs         = "grouping_run_ms"
	GroupingGroupsFound   = "grouping_groups_found"
	GroupingComparisonsTotal = "grouping_comparisons_total"
)

// Engine Façade (C6) metrics
const (
	EngineAddItemTotal       = "engine_add_item_total"
	EngineDeduplicateTotal   = "engine_deduplicate_total"
	EngineDeduplicateMs      = "engine_deduplicate_ms"
	EngineStrategyUpdateTotal = "engine_strategy_update_total"
	EngineCacheHitsTotal     = "engine_cache_hits_total"
	EngineCacheMissesTotal   = "engine_cache_misses_total"
)

// FulHash Module Metrics
const (
	FulHashOperationsTotalXXH3128 = "fulhash_operations_total_xxh3_128"
	FulHashOperationsTotalSHA256  = "fulhash_operations_total_sha256"
	FulHashHashStringTotal        = "fulhash_hash_string_total"
	FulHashBytesHashedTotal       = "fulhash_bytes_hashed_total"
	FulHashOperationMs            = "fulhash_operation_ms"
)

// Metric units
const (
	UnitCount   = "count"
	UnitMs      = "ms"
	UnitSeconds = "seconds"
)

// Standard tag keys
const (
	TagStatus     = "status"
	TagComponent  = "component"
	TagOperation  = "operation"
	TagAlgorithm  = "algorithm"
	TagErrorType  = "error_type"
	TagMethod     = "method"
	TagScope      = "scope"
	TagLanguage   = "language"
)

// Standard tag values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)
