// Package llm provides interchangeable text-generation providers behind a
// single narrow interface.
package llm

import (
	"context"
)

// GenerateRequest carries one text-generation call.
type GenerateRequest struct {
	Model       string  // Model id; empty means the provider's default
	System      string  // System instruction
	Prompt      string  // User prompt
	Temperature float32 // Randomness (0.0 to 1.0)
	MaxTokens   int32   // Output token budget; 0 means provider default
}

// Provider is a text-generation backend. Implementations translate their
// vendor's response shape and errors; callers never see vendor types.
type Provider interface {
	// Generate submits a prompt and returns the generated text.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Name returns the provider's identifier.
	Name() string
}

// ProviderType identifies a text-generation backend.
type ProviderType string

const (
	ProviderTypeGemini ProviderType = "gemini"
	ProviderTypeOpenAI ProviderType = "openai"
	ProviderTypeMock   ProviderType = "mock"
)

// Factory creates providers from type and credential configuration.
type Factory struct{}

// NewFactory creates a provider factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateProvider creates a text provider of the specified type. Credentials
// come from the config map; a missing API key is reported up front via
// ErrMissingAPIKey rather than at call time.
func (f *Factory) CreateProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeGemini:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewGeminiProvider(apiKey, config["model"])
	case ProviderTypeOpenAI:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewOpenAIProvider(apiKey, config["model"], config["base_url"]), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// GetAvailableProviders returns the provider types this factory can build.
func (f *Factory) GetAvailableProviders() []ProviderType {
	return []ProviderType{
		ProviderTypeGemini,
		ProviderTypeOpenAI,
		ProviderTypeMock,
	}
}
