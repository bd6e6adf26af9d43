package summarizer

import (
	"fmt"
	"strings"
)

const summaryPrompt = `Summarize the transcript below in plain prose.

Requirements:
- Use at least %d and at most %d tokens
- Keep the speaker's terminology and facts; do not add information
- Return only the summary text, without headings or preamble

Transcript:
---
%s
---`

func buildPrompt(text string, b Bounds) string {
	return fmt.Sprintf(summaryPrompt, b.MinTokens, b.MaxTokens, strings.TrimSpace(text))
}

// BelowMinimum reports whether text is already shorter than the minimum
// summary length. Whitespace-separated words stand in for tokens.
func BelowMinimum(text string, b Bounds) bool {
	return len(strings.Fields(text)) < b.MinTokens
}
