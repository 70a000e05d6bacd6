package synth

import (
	"testing"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // pass-through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"introduction": map[string]any{"type": "string"},
			"difficulty":   map[string]any{"type": "string", "enum": []any{"simplified", "standard", "enriched"}},
			"practice": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object", "properties": map[string]any{"prompt": map[string]any{"type": "string"}}},
			},
			"attempts": map[string]any{"type": "integer"},
		},
		"required": []any{"introduction", "practice"},
	}

	schema := geminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("properties = %d, want 4", len(schema.Properties))
	}
	if schema.Properties["introduction"].Type != "STRING" {
		t.Errorf("introduction type = %s, want STRING", schema.Properties["introduction"].Type)
	}
	if len(schema.Properties["difficulty"].Enum) != 3 {
		t.Errorf("difficulty enum = %d values, want 3", len(schema.Properties["difficulty"].Enum))
	}
	if schema.Properties["attempts"].Type != "INTEGER" {
		t.Errorf("attempts type = %s, want INTEGER", schema.Properties["attempts"].Type)
	}
	practice := schema.Properties["practice"]
	if practice.Type != "ARRAY" {
		t.Fatalf("practice type = %s, want ARRAY", practice.Type)
	}
	if practice.Items.Type != "OBJECT" {
		t.Errorf("practice items type = %s, want OBJECT", practice.Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %d fields, want 2", len(schema.Required))
	}
}

func TestStringSlice(t *testing.T) {
	if got := stringSlice([]any{"a", 3, "b"}); len(got) != 2 {
		t.Errorf("stringSlice keeps %d values, want the 2 strings", len(got))
	}
	if got := stringSlice("not a slice"); got != nil {
		t.Errorf("stringSlice on a non-slice = %v, want nil", got)
	}
}
