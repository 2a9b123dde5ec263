// Package schema validates engine payloads (currently the strategy
// update payload) against embedded JSON Schema documents using
// santhosh-tekuri/jsonschema. Unlike a multi-schema registry serving a
// whole product surface, this package only ever compiles schemas handed
// to it directly: no remote $ref resolution, no on-disk catalog.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Validator wraps a compiled JSON schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles a standalone schema document. The schema must not
// reference external documents by URL; use jsonschema.Compiler directly if
// cross-document $ref resolution is ever needed.
func NewValidator(schemaData []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	const virtualURL = "mem://schema.json"
	if err := compiler.AddResource(virtualURL, strings.NewReader(string(schemaData))); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(virtualURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// ValidateData validates an in-memory value against the schema and returns diagnostics.
func (v *Validator) ValidateData(data interface{}) ([]Diagnostic, error) {
	err := v.schema.Validate(data)
	if err == nil {
		return nil, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	return diagnosticsFromValidationError(validationErr, sourceDedupweave), nil
}

// ValidateJSON validates JSON bytes against the schema.
func (v *Validator) ValidateJSON(jsonData []byte) ([]Diagnostic, error) {
	var payload interface{}
	if err := json.Unmarshal(jsonData, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return v.ValidateData(payload)
}

// ValidateFile validates a JSON or YAML file on disk against the schema.
func (v *Validator) ValidateFile(path string) ([]Diagnostic, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- caller-provided path is intentional for this validation API
	if err != nil {
		return nil, err
	}

	if isJSON(content) {
		return v.ValidateJSON(content)
	}

	var payload interface{}
	if err := yaml.Unmarshal(content, &payload); err != nil {
		return nil, err
	}
	return v.ValidateData(payload)
}

func isJSON(content []byte) bool {
	trimmed := strings.TrimSpace(string(content))
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}
