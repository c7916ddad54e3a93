package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/mood-to-movie/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the curator system prompt
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.SystemPromptTxt)), nil
}

// GetMoodPromptTemplate loads the mood prompt template (contains the mood placeholder)
func (l *Loader) GetMoodPromptTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.MoodPromptTxt)), nil
}
