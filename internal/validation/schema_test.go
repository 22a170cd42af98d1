package validation

import (
	"errors"
	"strings"
	"testing"
)

var itemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required":             []any{"title"},
	"additionalProperties": false,
}

func TestValidatorAcceptsValidPayload(t *testing.T) {
	v := NewValidator()
	if err := v.Register("items", itemSchema); err != nil {
		t.Fatalf("Register: %v", err)
	}
	payload := map[string]any{"title": "Annual Report", "tags": []string{"news"}}
	if err := v.Validate("items", payload); err != nil {
		t.Fatalf("expected payload to validate, got %v", err)
	}
}

func TestValidatorReportsIssues(t *testing.T) {
	v := NewValidator()
	if err := v.Register("items", itemSchema); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := v.Validate("items", map[string]any{"title": 3, "extra": true})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	issues := Issues(err)
	if len(issues) < 2 {
		t.Fatalf("expected an issue per violation, got %+v", issues)
	}
	if !strings.Contains(err.Error(), "#") {
		t.Fatalf("expected locations in message, got %q", err.Error())
	}
}

func TestValidatorIgnoresUnknownSchemas(t *testing.T) {
	var v Validator
	if err := v.Validate("missing", nil); err != nil {
		t.Fatalf("expected nil for unknown schema, got %v", err)
	}
}

func TestRegisterRejectsBrokenSchema(t *testing.T) {
	v := NewValidator()
	err := v.Register("broken", map[string]any{"type": 12})
	if !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayloadRequiresFields(t *testing.T) {
	err := ValidatePayload(itemSchema, map[string]any{})
	if err == nil {
		t.Fatal("expected missing title to fail")
	}
	if len(Issues(err)) == 0 {
		t.Fatal("expected issues")
	}
}
