package llm

import (
	"context"
	"strings"
)

// ProviderConstructor builds a provider for an API key. Construction happens once at startup.
type ProviderConstructor func(ctx context.Context, apiKey string) (Provider, error)

// ProviderFactory creates providers based on model name
type ProviderFactory struct {
	openaiAPIKey string
	geminiAPIKey string
}

// NewProviderFactory creates a new provider factory
func NewProviderFactory(openaiAPIKey, geminiAPIKey string) *ProviderFactory {
	return &ProviderFactory{
		openaiAPIKey: openaiAPIKey,
		geminiAPIKey: geminiAPIKey,
	}
}

// ForModel returns the credential and constructor of the provider serving model.
// The credential may be empty; validating it is the caller's job.
func (f *ProviderFactory) ForModel(model string) (string, ProviderConstructor) {
	if IsOpenAIModel(model) {
		return f.openaiAPIKey, newOpenAIProvider
	}
	return f.geminiAPIKey, newGeminiProvider
}

// IsOpenAIModel reports whether model is served by OpenAI; everything else goes to Gemini
func IsOpenAIModel(model string) bool {
	modelLower := strings.ToLower(strings.TrimSpace(model))
	return strings.HasPrefix(modelLower, "gpt-") ||
		strings.HasPrefix(modelLower, "o1") ||
		strings.HasPrefix(modelLower, "o3") ||
		strings.HasPrefix(modelLower, "o4")
}

func newOpenAIProvider(_ context.Context, apiKey string) (Provider, error) {
	return NewOpenAIProvider(apiKey), nil
}

func newGeminiProvider(ctx context.Context, apiKey string) (Provider, error) {
	return NewGeminiProvider(ctx, apiKey)
}
