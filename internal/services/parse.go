package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Conceptual-Machines/mood-to-movie/internal/models"
)

// ParseStatus tags the outcome of decoding a service reply
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseFailed
	SchemaMismatch
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseFailed:
		return "parse_error"
	case SchemaMismatch:
		return "schema_mismatch"
	default:
		return "unknown"
	}
}

// ParseOutcome is the tagged result of ParseRecommendation.
// Result is set only for ParseOK, Err only otherwise.
type ParseOutcome struct {
	Status ParseStatus
	Result *models.RecommendationResult
	Err    error
}

// OK reports whether the reply decoded into a valid recommendation
func (o ParseOutcome) OK() bool {
	return o.Status == ParseOK
}

// ParseRecommendation decodes and validates a raw reply.
// An empty body is read as {} so it is classified like any other incomplete payload.
func ParseRecommendation(raw string) ParseOutcome {
	body := strings.TrimSpace(raw)
	if body == "" {
		body = "{}"
	}

	var result models.RecommendationResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ParseOutcome{Status: SchemaMismatch, Err: fmt.Errorf("field %q has wrong type: %w", typeErr.Field, err)}
		}
		return ParseOutcome{Status: ParseFailed, Err: fmt.Errorf("reply is not valid JSON: %w", err)}
	}

	if err := validateRecommendation(&result); err != nil {
		return ParseOutcome{Status: SchemaMismatch, Err: err}
	}

	return ParseOutcome{Status: ParseOK, Result: &result}
}

func validateRecommendation(result *models.RecommendationResult) error {
	if strings.TrimSpace(result.EmpatheticMessage) == "" {
		return errors.New("empatheticMessage is missing")
	}
	if len(result.Suggestions) != models.SuggestionCount {
		return fmt.Errorf("expected %d suggestions, got %d", models.SuggestionCount, len(result.Suggestions))
	}
	for i, suggestion := range result.Suggestions {
		if !suggestion.Complete() {
			return fmt.Errorf("suggestion %d is missing title, genre or reason", i)
		}
	}
	return nil
}
