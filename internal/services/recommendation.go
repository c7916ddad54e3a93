package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/mood-to-movie/internal/llm"
	"github.com/Conceptual-Machines/mood-to-movie/internal/logger"
	"github.com/Conceptual-Machines/mood-to-movie/internal/metrics"
	"github.com/Conceptual-Machines/mood-to-movie/internal/models"
	"github.com/Conceptual-Machines/mood-to-movie/internal/observability"
	"github.com/Conceptual-Machines/mood-to-movie/internal/prompt"
)

// RecommendationClient turns a mood into an empathetic message and three movie suggestions
type RecommendationClient struct {
	provider    llm.Provider
	builder     *prompt.Builder
	model       string
	temperature float32
	metrics     metrics.Recorder
	langfuse    *observability.LangfuseClient
}

// NewRecommendationClient validates the credential and builds the provider once.
// A blank APIKey returns a ConfigurationError without calling newProvider.
func NewRecommendationClient(
	ctx context.Context,
	opts ClientOptions,
	newProvider llm.ProviderConstructor,
) (*RecommendationClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, &ConfigurationError{}
	}
	opts = opts.withDefaults()

	provider, err := newProvider(ctx, opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider for %s: %w", opts.Model, err)
	}

	log.Printf("🎬 Recommendation client ready (provider: %s, model: %s, temperature: %.2f)",
		provider.Name(), opts.Model, *opts.Temperature)

	return &RecommendationClient{
		provider:    provider,
		builder:     prompt.NewPromptBuilder(),
		model:       opts.Model,
		temperature: *opts.Temperature,
		metrics:     opts.Metrics,
		langfuse:    opts.Langfuse,
	}, nil
}

// Model returns the model requests are sent to
func (c *RecommendationClient) Model() string {
	return c.model
}

// GetRecommendations asks the service for recommendations matching mood.
// Every failure is returned as a *ServiceError; the cause is logged.
func (c *RecommendationClient) GetRecommendations(ctx context.Context, mood string) (*models.RecommendationResult, error) {
	startTime := time.Now()
	fields := logger.Fields{
		"provider":    c.provider.Name(),
		"model":       c.model,
		"mood_length": len(mood),
	}

	userPrompt, err := c.builder.BuildMoodPrompt(mood)
	if err != nil {
		return nil, c.fail(ctx, "Failed to build mood prompt", err, fields, startTime)
	}
	systemPrompt, err := c.builder.BuildSystemPrompt()
	if err != nil {
		return nil, c.fail(ctx, "Failed to build system prompt", err, fields, startTime)
	}

	trace := c.langfuse.StartTrace(ctx, "mood-recommendation", map[string]interface{}{
		"model":    c.model,
		"provider": c.provider.Name(),
	})
	defer trace.Finish()
	generation := trace.Generation(c.provider.Name()+".generate", nil)
	defer generation.Finish()

	temperature := c.temperature
	resp, err := c.provider.Generate(ctx, &llm.GenerationRequest{
		Model:        c.model,
		Prompt:       userPrompt,
		SystemPrompt: systemPrompt,
		Temperature:  &temperature,
		OutputSchema: llm.RecommendationOutputSchema(),
	})
	generation.LogResponse(c.model, userPrompt, resp)
	if err != nil {
		generation.SetLevel("ERROR")
		return nil, c.fail(ctx, "Recommendation request failed", err, fields, startTime)
	}

	if resp.Usage != nil {
		c.metrics.RecordTokenUsage(ctx, c.model, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens)
		fields["total_tokens"] = resp.Usage.TotalTokens
	}

	outcome := ParseRecommendation(resp.RawOutput)
	if !outcome.OK() {
		generation.SetLevel("ERROR")
		fields["parse_status"] = outcome.Status.String()
		fields["output_length"] = len(resp.RawOutput)
		return nil, c.fail(ctx, "Recommendation reply rejected", outcome.Err, fields, startTime)
	}

	duration := time.Since(startTime)
	c.metrics.RecordGeneration(ctx, c.model, duration, true)
	logger.LogGeneration(ctx, c.provider.Name(), c.model, duration, true, fields)

	return outcome.Result, nil
}

func (c *RecommendationClient) fail(
	ctx context.Context, msg string, cause error, fields logger.Fields, startTime time.Time,
) error {
	duration := time.Since(startTime)
	c.metrics.RecordGeneration(ctx, c.model, duration, false)

	fields["duration_ms"] = duration.Milliseconds()
	logger.Error(msg, cause, fields)

	return &ServiceError{Cause: cause}
}

// UnavailableRecommender stands in for a client that could not be constructed.
// Every call returns the construction error, so visitors see why nothing works.
type UnavailableRecommender struct {
	Err error
}

// NewUnavailableRecommender keeps err as-is when it already carries a user message,
// otherwise it is reported as a ServiceError
func NewUnavailableRecommender(err error) *UnavailableRecommender {
	if !IsConfigurationError(err) && !IsServiceError(err) {
		err = &ServiceError{Cause: err}
	}
	return &UnavailableRecommender{Err: err}
}

func (u *UnavailableRecommender) GetRecommendations(context.Context, string) (*models.RecommendationResult, error) {
	return nil, u.Err
}
