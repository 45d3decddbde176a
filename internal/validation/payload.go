// Package validation checks structured payloads against JSON Schemas.
// Header content and section payloads pass through here before any write.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var ErrSchemaInvalid = errors.New("validation: schema invalid")

// Issue is one schema violation, addressed by JSON pointer.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// PayloadError aggregates every violation found in a payload.
type PayloadError struct {
	Issues []Issue
}

func (e *PayloadError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "validation: payload invalid"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return "validation: " + strings.Join(parts, "; ")
}

// PayloadValidator compiles a schema once and validates payloads against it.
type PayloadValidator struct {
	schema *jsonschema.Schema
}

// NewPayloadValidator compiles a schema given as a plain map.
func NewPayloadValidator(name string, schema map[string]any) (*PayloadValidator, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	compiler := jsonschema.NewCompiler()
	resource := name
	if strings.TrimSpace(resource) == "" {
		resource = "schema.json"
	}
	if err := compiler.AddResource(resource, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	return &PayloadValidator{schema: compiled}, nil
}

// Validate checks payload and returns a *PayloadError listing every
// violation, or nil when the payload conforms.
func (v *PayloadValidator) Validate(payload any) error {
	if v == nil || v.schema == nil {
		return nil
	}

	normalized, err := normalize(payload)
	if err != nil {
		return &PayloadError{Issues: []Issue{{Message: err.Error()}}}
	}

	if err := v.schema.Validate(normalized); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &PayloadError{Issues: collectIssues(ve)}
		}
		return &PayloadError{Issues: []Issue{{Message: err.Error()}}}
	}
	return nil
}

// normalize round trips the payload through JSON so typed structs validate
// the same way their wire form would.
func normalize(payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func collectIssues(ve *jsonschema.ValidationError) []Issue {
	if ve == nil {
		return nil
	}
	if len(ve.Causes) == 0 {
		return []Issue{{Path: ve.InstanceLocation, Message: ve.Message}}
	}
	var out []Issue
	for _, cause := range ve.Causes {
		out = append(out, collectIssues(cause)...)
	}
	return out
}
