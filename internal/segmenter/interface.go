package segmenter

import (
	"context"

	"github.com/shopspring/decimal"
)

// Segmenter finds the non-silent intervals of an audio file.
type Segmenter interface {
	Segment(ctx context.Context, audioPath string) (Result, error)
}

// Result is the outcome of segmenting one file.
type Result struct {
	Intervals  []Interval
	SampleRate int
	Samples    int
	// Duration is Samples/SampleRate in seconds, truncated to two places.
	Duration decimal.Decimal
}
