package llm

import (
	"encoding/json"
	"fmt"

	"github.com/Conceptual-Machines/mood-to-movie/internal/models"
	"github.com/invopop/jsonschema"
)

// RecommendationSchemaName is the schema name sent with JSON-schema text formats
const RecommendationSchemaName = "movie_recommendations"

// GetRecommendationOutputSchema returns the JSON schema for mood recommendations,
// reflected from models.RecommendationResult.
// The schema is a hint to the backend; replies are still validated by the caller.
func GetRecommendationOutputSchema() map[string]any {
	schema, err := GenerateSchema[models.RecommendationResult]()
	if err != nil {
		// The model type is fixed at compile time, so this only fails on a programming error
		panic(err)
	}
	return schema
}

// GenerateSchema reflects T into an inline JSON schema map that both providers accept
func GenerateSchema[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	var v T
	reflected := reflector.Reflect(v)

	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}

	// Structured output endpoints reject meta keys
	delete(schema, "$schema")
	delete(schema, "$id")
	return schema, nil
}

// RecommendationOutputSchema wraps the recommendation schema for a GenerationRequest
func RecommendationOutputSchema() *OutputSchema {
	return &OutputSchema{
		Name:        RecommendationSchemaName,
		Description: "Empathetic message plus three movie suggestions for a mood",
		Schema:      GetRecommendationOutputSchema(),
	}
}
