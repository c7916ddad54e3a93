package llm

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider is a test implementation of the Provider interface
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &GenerationResponse{}, nil
}

// countSentryEvents binds a client to the current hub that counts captured
// events instead of sending them
func countSentryEvents(t *testing.T) *atomic.Int32 {
	t.Helper()
	var count atomic.Int32
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(_ *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			count.Add(1)
			return nil
		},
	})
	require.NoError(t, err)

	hub := sentry.CurrentHub()
	previous := hub.Client()
	hub.BindClient(client)
	t.Cleanup(func() { hub.BindClient(previous) })
	return &count
}

func TestProviderInterface(t *testing.T) {
	var provider Provider = &MockProvider{name: "mock"}
	assert.Equal(t, "mock", provider.Name())
}

func TestMockProviderGenerate(t *testing.T) {
	callCount := 0
	mock := &MockProvider{
		name: "test",
		generateFunc: func(_ context.Context, request *GenerationRequest) (*GenerationResponse, error) {
			callCount++
			require.Equal(t, "test-model", request.Model)
			return &GenerationResponse{RawOutput: `{"empatheticMessage":"ok"}`}, nil
		},
	}

	resp, err := mock.Generate(context.Background(), &GenerationRequest{Model: "test-model"})
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Contains(t, resp.RawOutput, "empatheticMessage")
}

func TestProviderFactory_ForModel(t *testing.T) {
	factory := NewProviderFactory("openai-key", "gemini-key")

	tests := []struct {
		model   string
		wantKey string
		wantOAI bool
	}{
		{model: "gemini-3-flash-preview", wantKey: "gemini-key"},
		{model: "gemini-2.5-flash", wantKey: "gemini-key"},
		{model: "", wantKey: "gemini-key"},
		{model: "gpt-4o-mini", wantKey: "openai-key", wantOAI: true},
		{model: "GPT-5.1", wantKey: "openai-key", wantOAI: true},
		{model: "o3-mini", wantKey: "openai-key", wantOAI: true},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			key, constructor := factory.ForModel(tt.model)
			assert.Equal(t, tt.wantKey, key)
			require.NotNil(t, constructor)
			assert.Equal(t, tt.wantOAI, IsOpenAIModel(tt.model))
		})
	}
}

func TestProviderFactory_OpenAIConstructor(t *testing.T) {
	factory := NewProviderFactory("openai-key", "")
	_, constructor := factory.ForModel("gpt-4o")

	provider, err := constructor(context.Background(), "openai-key")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())
}

func TestGetRecommendationOutputSchema(t *testing.T) {
	schema := GetRecommendationOutputSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Equal(t, []any{"empatheticMessage", "suggestions"}, schema["required"])
	assert.NotContains(t, schema, "$schema")

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, properties, 2)

	message, ok := properties["empatheticMessage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", message["type"])
	assert.NotEmpty(t, message["description"])

	suggestions, ok := properties["suggestions"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", suggestions["type"])
	assert.EqualValues(t, 3, suggestions["minItems"])
	assert.EqualValues(t, 3, suggestions["maxItems"])

	items, ok := suggestions["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", items["type"])
	assert.Equal(t, []any{"title", "genre", "reason"}, items["required"])
	assert.Equal(t, false, items["additionalProperties"])

	wrapped := RecommendationOutputSchema()
	assert.Equal(t, RecommendationSchemaName, wrapped.Name)
	assert.Equal(t, schema, wrapped.Schema)
}
