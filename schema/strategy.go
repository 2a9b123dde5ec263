package schema

import "sync"

// strategySchemaJSON is the JSON Schema for a wire-format Strategy update
// payload (strategy.ParseWire's input shape): every field optional and,
// per spec.md section 6 ("unknown keys ignored"), unrecognised top-level
// keys are accepted at the schema level too — ParseWire drops them
// silently downstream. Known fields still reject the wrong JSON type or
// an enum value outside the declared vocabulary.
const strategySchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "mem://strategy.schema.json",
  "type": "object",
  "additionalProperties": true,
  "properties": {
    "case_sensitive": {"type": "boolean"},
    "ignore_whitespace": {"type": "boolean"},
    "ignore_punctuation": {"type": "boolean"},
    "normalize_unicode": {"type": "boolean"},
    "ignore_stopwords": {"type": "boolean"},
    "stemming": {"type": "boolean"},
    "encoding_normalization": {"type": "boolean"},
    "language_detection": {"type": "boolean"},
    "split_strategy": {
      "type": "string",
      "enum": ["Characters", "Words", "Sentences", "Paragraphs", "WholeText"]
    },
    "comparison_scope": {
      "type": "string",
      "enum": ["Local", "Global"]
    },
    "min_length": {"type": "integer"},
    "ngram_size": {"type": "integer"},
    "similarity_method": {
      "oneOf": [
        {"type": "string", "enum": ["Exact", "Levenshtein", "Semantic"]},
        {
          "type": "object",
          "additionalProperties": false,
          "required": ["Fuzzy"],
          "properties": {
            "Fuzzy": {
              "type": "string",
              "enum": ["DamerauLevenshtein", "JaroWinkler", "Soundex", "NGram"]
            }
          }
        }
      ]
    },
    "similarity_threshold": {"type": "number"},
    "adaptive_thresholding": {"type": "boolean"},
    "use_parallel": {"type": "boolean"},
    "similarity_aggregation": {
      "type": "string",
      "enum": ["mean", "max"]
    },
    "similarity_weighting": {
      "type": "object",
      "properties": {
        "frequency": {"type": "number"},
        "position": {"type": "number"},
        "context": {"type": "number"}
      }
    }
  }
}`

var (
	strategyValidatorOnce sync.Once
	strategyValidator     *Validator
	strategyValidatorErr  error
)

// StrategyValidator returns the shared validator for strategy update
// payloads, compiling it once on first use.
func StrategyValidator() (*Validator, error) {
	strategyValidatorOnce.Do(func() {
		strategyValidator, strategyValidatorErr = NewValidator([]byte(strategySchemaJSON))
	})
	return strategyValidator, strategyValidatorErr
}

// ValidateStrategyPayload checks raw strategy update JSON against the
// schema before it reaches strategy.ParseWire, surfacing wrong-typed
// values and unknown enum values of known fields as Diagnostics rather
// than deserialization errors discovered mid-decode. Unknown top-level
// fields are accepted without a diagnostic.
func ValidateStrategyPayload(jsonData []byte) ([]Diagnostic, error) {
	v, err := StrategyValidator()
	if err != nil {
		return nil, err
	}
	return v.ValidateJSON(jsonData)
}
