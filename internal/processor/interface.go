package processor

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/voicebrief/internal/segmenter"
	"github.com/nguyentantai21042004/voicebrief/internal/storage"
)

// Processor runs the upload-driven operations. Every operation first
// stores the upload under its client-supplied name.
type Processor interface {
	Upload(ctx context.Context, name string, r io.Reader) (storage.Upload, error)
	Transcribe(ctx context.Context, name string, r io.Reader) (Transcription, error)
	Summarize(ctx context.Context, name string, r io.Reader) (Summary, error)
	ExtractTimestamps(ctx context.Context, name string, r io.Reader) (Timestamps, error)
}

type Transcription struct {
	Upload storage.Upload
	Text   string
	Path   string
}

type Summary struct {
	Upload  storage.Upload
	Summary string
	Path    string
	// BelowMinimum is set when the transcript was already shorter than
	// the minimum summary length.
	BelowMinimum bool
}

type Timestamps struct {
	Upload    storage.Upload
	Intervals []segmenter.Interval
	Path      string
}
