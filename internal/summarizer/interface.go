package summarizer

import "context"

// Bounds limits the length of a summary in tokens.
type Bounds struct {
	MaxTokens int
	MinTokens int
}

// Summarizer condenses a transcript into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string, b Bounds) (string, error)
	Name() string
}
