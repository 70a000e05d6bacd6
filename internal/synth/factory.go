package synth

import (
	"context"
	"fmt"
)

// NewProviderFromEnv builds the env-configured provider. This is the
// entry point the CLI uses; recorder may be nil when no audit trail is
// wanted.
func NewProviderFromEnv(ctx context.Context, recorder CallRecorder) (Provider, error) {
	return NewProvider(ctx, ConfigFromEnv(), recorder)
}

// NewProvider creates a Provider from configuration, wrapped with retry
// and audit middleware. recorder may be nil when no audit trail is wanted
// (e.g. the stateless preview command).
func NewProvider(ctx context.Context, cfg Config, recorder CallRecorder) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown synthesizer provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Middleware order from the caller inward: retry, then audit, then base.
	wrapped := base
	if recorder != nil {
		wrapped = WithAudit(wrapped, cfg.Provider, recorder)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}
