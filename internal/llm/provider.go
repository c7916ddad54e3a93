package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
// All providers MUST support structured output (JSON Schema) so callers can parse the reply
type Provider interface {
	// Generate sends a single prompt and returns the raw text of the first answer.
	// Providers pass OutputSchema to the backend as a hint; they do not validate the reply.
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model        string
	Prompt       string
	SystemPrompt string
	Temperature  *float32
	// Structured output schema passed to the backend
	OutputSchema *OutputSchema
}

// OutputSchema defines the expected JSON output structure
type OutputSchema struct {
	Name        string
	Description string
	Schema      map[string]any // JSON Schema object
}

// TokenUsage is the provider-neutral token accounting of one generation
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string      `json:"-"` // Raw JSON text output, empty when the backend returned nothing
	Usage     *TokenUsage `json:"usage,omitempty"`
	Provider  string      `json:"provider"`
	Model     string      `json:"model"`
}
