package prompt

import (
	"fmt"
	"strings"
)

// moodPlaceholder is replaced with the user's mood text, verbatim
const moodPlaceholder = "{{MOOD}}"

// Builder builds prompts for the recommendation service
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{
		loader: NewPromptLoader(),
	}
}

// BuildSystemPrompt returns the curator instructions sent alongside every request
func (b *Builder) BuildSystemPrompt() (string, error) {
	return b.loader.GetSystemPrompt()
}

// BuildMoodPrompt renders the user prompt for a mood. The mood is embedded as typed;
// callers are expected to have rejected blank input already.
func (b *Builder) BuildMoodPrompt(mood string) (string, error) {
	template, err := b.loader.GetMoodPromptTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to load mood prompt: %w", err)
	}
	if !strings.Contains(template, moodPlaceholder) {
		return "", fmt.Errorf("mood prompt template is missing the %s placeholder", moodPlaceholder)
	}

	return strings.Replace(template, moodPlaceholder, mood, 1), nil
}
