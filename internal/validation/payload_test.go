package validation_test

import (
	"errors"
	"testing"

	"github.com/freightwave/go-sitecms/internal/validation"
)

var headerSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"logo", "nav_links"},
	"additionalProperties": true,
	"properties": map[string]any{
		"logo": map[string]any{"type": "string", "minLength": 1},
		"nav_links": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"label", "href"},
				"properties": map[string]any{
					"label": map[string]any{"type": "string", "minLength": 1},
					"href":  map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
}

func TestValidateAcceptsConformingPayload(t *testing.T) {
	validator, err := validation.NewPayloadValidator("header.json", headerSchema)
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	payload := map[string]any{
		"logo": "/assets/logo.svg",
		"nav_links": []any{
			map[string]any{"label": "Services", "href": "/our-services"},
		},
	}
	if err := validator.Validate(payload); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateReportsIssues(t *testing.T) {
	validator, err := validation.NewPayloadValidator("header.json", headerSchema)
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	payload := map[string]any{
		"nav_links": []any{
			map[string]any{"label": "Services"},
		},
	}

	err = validator.Validate(payload)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	var payloadErr *validation.PayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("expected *PayloadError, got %T", err)
	}
	if len(payloadErr.Issues) == 0 {
		t.Fatalf("expected at least one issue")
	}
}

func TestValidateNormalizesStructs(t *testing.T) {
	validator, err := validation.NewPayloadValidator("header.json", headerSchema)
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	type navLink struct {
		Label string `json:"label"`
		Href  string `json:"href"`
	}
	type header struct {
		Logo     string    `json:"logo"`
		NavLinks []navLink `json:"nav_links"`
	}

	payload := header{Logo: "/assets/logo.svg", NavLinks: []navLink{{Label: "Contact", Href: "/contact-us"}}}
	if err := validator.Validate(payload); err != nil {
		t.Fatalf("expected struct payload to validate, got %v", err)
	}
}

func TestNewPayloadValidatorRejectsBadSchema(t *testing.T) {
	_, err := validation.NewPayloadValidator("bad.json", map[string]any{"type": 42})
	if !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}
