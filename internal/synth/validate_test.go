package synth

import (
	"encoding/json"
	"errors"
	"testing"
)

func itemSchema() *Schema {
	return &Schema{
		Name:        "test-item",
		Description: "A practice item",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt":      map[string]any{"type": "string"},
				"answer":      map[string]any{"type": "string"},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []any{"prompt", "answer"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"prompt":"2+2?","answer":"4","explanation":"count up"}`)
	if err := validateResponse(itemSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"prompt":"2+2?","answer":"4"}`)
	if err := validateResponse(itemSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"prompt":"2+2?"}`)
	err := validateResponse(itemSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"prompt":"2+2?","answer":4}`)
	err := validateResponse(itemSchema(), raw)
	if err == nil {
		t.Fatal("expected error for wrong type")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(itemSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_ArrayBounds(t *testing.T) {
	schema := &Schema{
		Name:        "test-practice-list",
		Description: "Bounded list",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"practice": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 3,
					"maxItems": 3,
				},
			},
			"required": []any{"practice"},
		},
	}

	ok := json.RawMessage(`{"practice":["a","b","c"]}`)
	if err := validateResponse(schema, ok); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	short := json.RawMessage(`{"practice":["a"]}`)
	if err := validateResponse(schema, short); err == nil {
		t.Fatal("expected error for too few items")
	}
}
