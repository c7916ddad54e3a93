package llm

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	mimeTypeJSON       = "application/json"
)

// geminiContentGenerator is the slice of *genai.Models the provider uses
type geminiContentGenerator interface {
	GenerateContent(
		ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	models geminiContentGenerator
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		models: client.Models,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate implements non-streaming generation using Gemini's API
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎬 GEMINI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	config := p.buildGeminiConfig(request)

	// Call Gemini API
	span := transaction.StartChild("gemini.api_call")
	apiStartTime := time.Now()
	result, err := p.models.GenerateContent(ctx, request.Model, genai.Text(request.Prompt), config)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	log.Printf("⏱️  GEMINI API CALL COMPLETED in %v", apiDuration)

	response := p.processGeminiResponse(result, request.Model, startTime, transaction)
	transaction.SetTag("success", "true")
	return response, nil
}

// buildGeminiConfig configures generation with structured output and sampling
func (p *GeminiProvider) buildGeminiConfig(request *GenerationRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}

	if request.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		}
	}

	if request.Temperature != nil {
		config.Temperature = genai.Ptr(*request.Temperature)
	}

	// Add JSON schema for structured output if provided
	if request.OutputSchema != nil {
		config.ResponseMIMEType = mimeTypeJSON
		config.ResponseSchema = convertSchemaToGemini(request.OutputSchema.Schema)
	}

	return config
}

// convertSchemaToGemini converts a JSON schema map to Gemini's schema format.
// Keys Gemini has no equivalent for (additionalProperties) are dropped.
func convertSchemaToGemini(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{}

	if typeName, ok := schema["type"].(string); ok {
		out.Type = geminiType(typeName)
	}
	if description, ok := schema["description"].(string); ok {
		out.Description = description
	}
	if enum := toStringSlice(schema["enum"]); len(enum) > 0 {
		out.Enum = enum
	}
	if minItems, ok := toInt64(schema["minItems"]); ok {
		out.MinItems = genai.Ptr(minItems)
	}
	if maxItems, ok := toInt64(schema["maxItems"]); ok {
		out.MaxItems = genai.Ptr(maxItems)
	}
	if items, ok := schema["items"].(map[string]any); ok {
		out.Items = convertSchemaToGemini(items)
	}

	required := toStringSlice(schema["required"])
	if len(required) > 0 {
		out.Required = required
	}

	if properties, ok := schema["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(properties))
		for name, raw := range properties {
			if child, ok := raw.(map[string]any); ok {
				out.Properties[name] = convertSchemaToGemini(child)
			}
		}
		out.PropertyOrdering = propertyOrdering(required, out.Properties)
	}

	return out
}

// propertyOrdering lists required properties in declared order, then the rest alphabetically
func propertyOrdering(required []string, properties map[string]*genai.Schema) []string {
	ordering := make([]string, 0, len(properties))
	seen := make(map[string]bool, len(properties))
	for _, name := range required {
		if _, ok := properties[name]; ok && !seen[name] {
			ordering = append(ordering, name)
			seen[name] = true
		}
	}

	var rest []string
	for name := range properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(ordering, rest...)
}

func geminiType(typeName string) genai.Type {
	switch strings.ToLower(typeName) {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}

func toStringSlice(v any) []string {
	switch values := v.(type) {
	case []string:
		return values
	case []any:
		out := make([]string, 0, len(values))
		for _, value := range values {
			if s, ok := value.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

// processGeminiResponse converts Gemini response to our GenerationResponse.
// A reply without candidates yields an empty RawOutput rather than an error.
func (p *GeminiProvider) processGeminiResponse(
	result *genai.GenerateContentResponse,
	model string,
	startTime time.Time,
	transaction *sentry.Span,
) *GenerationResponse {
	span := transaction.StartChild("process_response")
	defer span.Finish()

	response := &GenerationResponse{
		Provider: providerNameGemini,
		Model:    model,
	}

	if result == nil || len(result.Candidates) == 0 {
		log.Printf("⚠️  GEMINI RESPONSE: no candidates (blocked or empty)")
		return response
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		log.Printf("⚠️  GEMINI RESPONSE: no parts (finish reason: %s)", candidate.FinishReason)
		return response
	}

	var textOutput strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			textOutput.WriteString(part.Text)
		}
	}
	response.RawOutput = textOutput.String()
	log.Printf("📥 GEMINI RESPONSE: output_length=%d", len(response.RawOutput))

	// Log usage stats if available
	if result.UsageMetadata != nil {
		response.Usage = &TokenUsage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
		log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d",
			response.Usage.InputTokens, response.Usage.OutputTokens, response.Usage.TotalTokens)
	}

	log.Printf("✅ GEMINI GENERATION COMPLETED in %v", time.Since(startTime))
	return response
}
