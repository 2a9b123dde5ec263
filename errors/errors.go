// Package errors implements A1: the structured error envelope the
// engine façade returns for every failed operation, and the fixed code
// taxonomy spec.md section 7 names.
package errors

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Code enumerates the fixed error taxonomy. Errors never leak
// implementation-internal identifiers through Message or Details.
type Code string

const (
	SerializationError   Code = "SerializationError"
	DeserializationError Code = "DeserializationError"
	StrategyUpdateError  Code = "StrategyUpdateError"
	InvalidInput         Code = "InvalidInput"
	NotFound             Code = "NotFound"
	InternalError        Code = "InternalError"
)

// Envelope is the structured error shape every façade operation returns
// on failure: `{code, message}` at minimum, plus optional correlation
// and diagnostic fields for operators wiring the engine into a larger
// system.
type Envelope struct {
	Code          Code                   `json:"code"`
	Message       string                 `json:"message"`
	Details       map[string]interface{} `json:"details,omitempty"`
	Timestamp     string                 `json:"timestamp"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Original      string                 `json:"original,omitempty"`
}

// New builds an Envelope for code.
func New(code Code, message string) *Envelope {
	return &Envelope{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// WithDetails attaches non-sensitive structured detail fields.
func (e *Envelope) WithDetails(details map[string]interface{}) *Envelope {
	e.Details = details
	return e
}

// WithCorrelationID attaches a correlation identifier for cross-system
// tracing. Use GenerateCorrelationID to mint one.
func (e *Envelope) WithCorrelationID(id string) *Envelope {
	e.CorrelationID = id
	return e
}

// WithOriginal records the underlying Go error's message. Callers must
// ensure the underlying error does not itself contain implementation
// internals that shouldn't be surfaced to external callers.
func (e *Envelope) WithOriginal(original error) *Envelope {
	if original != nil {
		e.Original = original.Error()
	}
	return e
}

// Error implements the error interface.
func (e *Envelope) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// MarshalJSON ensures Envelope serializes as a plain object (no method
// promotion surprises from embedding).
func (e *Envelope) MarshalJSON() ([]byte, error) {
	type alias Envelope
	return json.Marshal((*alias)(e))
}

// GenerateCorrelationID mints a new UUID for correlating an error across
// logs, telemetry, and client responses.
func GenerateCorrelationID() string {
	return uuid.New().String()
}

// NotFoundError builds the standard NotFound envelope for a missing item.
func NotFoundError(id uint) *Envelope {
	return New(NotFound, "item not found").WithDetails(map[string]interface{}{"id": id})
}

// InvalidInputError builds the standard InvalidInput envelope.
func InvalidInputError(message string) *Envelope {
	return New(InvalidInput, message)
}

// InternalErrorFrom wraps an internal failure (encoder failure,
// out-of-memory in a worker) without leaking its internal message
// verbatim to callers who only read Message; the original is still
// available via Original for local diagnostics.
func InternalErrorFrom(err error) *Envelope {
	return New(InternalError, "internal error").WithOriginal(err)
}

// DeserializationErrorFrom builds the standard envelope for a strategy
// payload that is malformed JSON, or whose known fields carry the wrong
// JSON type — the shape itself is invalid, not just its domain
// vocabulary.
func DeserializationErrorFrom(err error) *Envelope {
	return New(DeserializationError, "malformed strategy payload").WithOriginal(err)
}

// StrategyUpdateErrorFrom builds the standard envelope for a
// syntactically valid strategy payload that names an unrecognised
// enum variant (method, split strategy, scope, or aggregation).
func StrategyUpdateErrorFrom(err error) *Envelope {
	return New(StrategyUpdateError, "invalid strategy").WithOriginal(err)
}
