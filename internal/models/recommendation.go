package models

import "strings"

// SuggestionCount is the number of movies every recommendation must carry
const SuggestionCount = 3

// MovieSuggestion is a single movie card returned by the recommendation service
type MovieSuggestion struct {
	Title  string `json:"title" jsonschema_description:"The movie title."`
	Genre  string `json:"genre" jsonschema_description:"The genre(s) of the movie."`                                // One or more genres, free text
	Reason string `json:"reason" jsonschema_description:"A one-sentence reason why this movie helps the current mood."` // One sentence tying the movie to the mood
}

// RecommendationResult is the validated output of one recommendation request
// Its struct tags also describe the structured output schema sent to the service.
type RecommendationResult struct {
	EmpatheticMessage string            `json:"empatheticMessage" jsonschema_description:"A short empathetic acknowledgement of the user's mood."`
	Suggestions       []MovieSuggestion `json:"suggestions" jsonschema:"minItems=3,maxItems=3" jsonschema_description:"Exactly 3 movie suggestions."`
}

// Complete reports whether every field of the suggestion is non-blank
func (s MovieSuggestion) Complete() bool {
	return strings.TrimSpace(s.Title) != "" &&
		strings.TrimSpace(s.Genre) != "" &&
		strings.TrimSpace(s.Reason) != ""
}

// Clone returns a copy whose suggestions slice is not shared with r
func (r *RecommendationResult) Clone() *RecommendationResult {
	if r == nil {
		return nil
	}
	out := &RecommendationResult{EmpatheticMessage: r.EmpatheticMessage}
	if r.Suggestions != nil {
		out.Suggestions = make([]MovieSuggestion, len(r.Suggestions))
		copy(out.Suggestions, r.Suggestions)
	}
	return out
}
