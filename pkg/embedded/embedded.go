package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/mood_prompt.txt
var MoodPromptTxt []byte

//go:embed data/prompts/system_prompt.txt
var SystemPromptTxt []byte
