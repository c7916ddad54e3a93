package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieSuggestionComplete(t *testing.T) {
	assert.True(t, MovieSuggestion{Title: "A", Genre: "Drama", Reason: "r"}.Complete())
	assert.False(t, MovieSuggestion{Title: "A", Genre: " ", Reason: "r"}.Complete())
	assert.False(t, MovieSuggestion{Genre: "Drama", Reason: "r"}.Complete())
}

func TestRecommendationResultClone(t *testing.T) {
	original := &RecommendationResult{
		EmpatheticMessage: "hi",
		Suggestions:       []MovieSuggestion{{Title: "A", Genre: "g", Reason: "r"}},
	}

	clone := original.Clone()
	clone.Suggestions[0].Title = "B"

	assert.Equal(t, "A", original.Suggestions[0].Title)
	assert.Equal(t, original.EmpatheticMessage, clone.EmpatheticMessage)

	var nilResult *RecommendationResult
	assert.Nil(t, nilResult.Clone())
}
