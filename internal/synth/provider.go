package synth

import (
	"context"
	"encoding/json"
)

// Provider is the content-synthesizer boundary. The core hands out a
// rubric's generation prompt and shape schema and receives structured
// JSON back; everything else about the synthesizer is opaque.
type Provider interface {
	// Generate sends a prompt to the synthesizer and returns structured
	// content. When the request carries a Schema, the response Content is
	// JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one synthesis call. Prompts in this system are
// single-turn: a system instruction and one user instruction.
type Request struct {
	// System sets the synthesizer's role and constraints.
	System string

	// User is the rubric's user instruction.
	User string

	// Schema is the JSON Schema the response must conform to, derived
	// from the rubric's content shape. When nil the response is raw text.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0. Default 0.0.
	Temperature float64
}

// Schema defines the JSON structure expected from the synthesizer.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "instruction-content".
	Name string

	// Description is sent to the synthesizer to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the synthesizer's output.
type Response struct {
	// Content is the generated output. Validated JSON when a Schema was
	// provided, raw text wrapped as a JSON string otherwise.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is "end" for a natural stop. Truncation at the token
	// cap surfaces as *ErrMaxTokensExceeded rather than a response.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
