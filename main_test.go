package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSensitiveHeaders(t *testing.T) {
	// Sentry records request headers in canonical form
	filtered := filterSensitiveHeaders(map[string]string{
		"Authorization":  "Bearer token",
		"Cookie":         "mood_to_movie=abc",
		"X-Goog-Api-Key": "secret",
		"x-api-key":      "secret",
		"Content-Type":   "application/json",
	})

	assert.Equal(t, "[REDACTED]", filtered["Authorization"])
	assert.Equal(t, "[REDACTED]", filtered["Cookie"])
	assert.Equal(t, "[REDACTED]", filtered["X-Goog-Api-Key"])
	assert.Equal(t, "[REDACTED]", filtered["x-api-key"])
	assert.Equal(t, "application/json", filtered["Content-Type"])
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, releaseVersion, GetVersion())
}
