package synth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiProvider synthesizes rubric content through the Google Gemini
// API. Shape schemas are translated into the genai schema type rather
// than sent as raw JSON Schema, which the API does not accept.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: req.User}}},
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, p.generateConfig(req))
	if err != nil {
		return nil, mapGeminiError(err)
	}

	payload := json.RawMessage(result.Text())
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS" {
		return nil, &ErrMaxTokensExceeded{Content: payload}
	}
	if err := validateResponse(req.Schema, payload); err != nil {
		return nil, err
	}

	resp := &Response{
		Content:    payload,
		Model:      p.model,
		StopReason: "end",
	}
	if meta := result.UsageMetadata; meta != nil {
		resp.Usage = Usage{
			InputTokens:  int(meta.PromptTokenCount),
			OutputTokens: int(meta.CandidatesTokenCount),
			TotalTokens:  int(meta.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) generateConfig(req Request) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = geminiSchema(req.Schema.Definition)
	}
	return config
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// geminiSchema rebuilds a JSON Schema definition as a genai.Schema.
// Only the keywords the shape builder emits are carried over; anything
// else in the definition is dropped silently.
func geminiSchema(def map[string]any) *genai.Schema {
	out := &genai.Schema{Type: genai.TypeString}
	if desc, ok := def["description"].(string); ok {
		out.Description = desc
	}

	kind, _ := def["type"].(string)
	switch kind {
	case "object":
		out.Type = genai.TypeObject
		if props, ok := def["properties"].(map[string]any); ok {
			out.Properties = make(map[string]*genai.Schema, len(props))
			for name, sub := range props {
				if subDef, ok := sub.(map[string]any); ok {
					out.Properties[name] = geminiSchema(subDef)
				}
			}
		}
		for _, name := range stringSlice(def["required"]) {
			out.Required = append(out.Required, name)
		}
	case "array":
		out.Type = genai.TypeArray
		if items, ok := def["items"].(map[string]any); ok {
			out.Items = geminiSchema(items)
		}
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	default:
		out.Type = genai.TypeString
		out.Enum = stringSlice(def["enum"])
	}
	return out
}

// stringSlice extracts the string members of a decoded JSON array.
func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
