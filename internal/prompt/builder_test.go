package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptBuilder(t *testing.T) {
	builder := NewPromptBuilder()
	if builder == nil {
		t.Fatal("NewPromptBuilder() returned nil")
		return
	}
	if builder.loader == nil {
		t.Fatal("NewPromptBuilder() created builder with nil loader")
	}
}

func TestBuildMoodPrompt(t *testing.T) {
	builder := NewPromptBuilder()

	tests := []struct {
		name string
		mood string
	}{
		{name: "simple mood", mood: "I feel overwhelmed"},
		{name: "quotes kept verbatim", mood: `my boss said "great job" and I don't believe it`},
		{name: "multi line", mood: "tired\nbut hopeful"},
		{name: "placeholder lookalike", mood: "{{MOOD}} twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := builder.BuildMoodPrompt(tt.mood)
			if err != nil {
				t.Fatalf("BuildMoodPrompt() returned error: %v", err)
			}
			if !strings.Contains(prompt, `"`+tt.mood+`"`) {
				t.Errorf("BuildMoodPrompt() does not embed mood verbatim: %q", prompt)
			}
		})
	}
}

func TestBuildMoodPromptInstructions(t *testing.T) {
	builder := NewPromptBuilder()
	prompt, err := builder.BuildMoodPrompt("restless")
	if err != nil {
		t.Fatalf("BuildMoodPrompt() returned error: %v", err)
	}

	for _, want := range []string{"exactly 3", "Title", "Genre", "one-sentence", "empathetic message"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("BuildMoodPrompt() missing instruction %q", want)
		}
	}

	if strings.Contains(prompt, moodPlaceholder) {
		t.Error("BuildMoodPrompt() left the placeholder unreplaced")
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	builder := NewPromptBuilder()
	prompt, err := builder.BuildSystemPrompt()
	if err != nil {
		t.Fatalf("BuildSystemPrompt() returned error: %v", err)
	}
	if prompt == "" {
		t.Fatal("BuildSystemPrompt() returned empty string")
	}
}
