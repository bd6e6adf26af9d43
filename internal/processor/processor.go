package processor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voicebrief/internal/segmenter"
	"github.com/nguyentantai21042004/voicebrief/internal/storage"
	"github.com/nguyentantai21042004/voicebrief/internal/summarizer"
)

// Upload stores the file verbatim under uploads/<name>.
func (p *implProcessor) Upload(ctx context.Context, name string, r io.Reader) (storage.Upload, error) {
	up, err := p.store.SaveUpload(name, r)
	if err != nil {
		return storage.Upload{}, fmt.Errorf("save upload: %w", err)
	}
	p.logger.Info(ctx, "Saved upload %s (%d bytes, blake3 %s)", up.Path, up.Size, up.Digest)
	return up, nil
}

// Transcribe stores the upload, runs the recognizer on it and persists
// the text to transcriptions/<name>.txt.
func (p *implProcessor) Transcribe(ctx context.Context, name string, r io.Reader) (Transcription, error) {
	up, err := p.Upload(ctx, name, r)
	if err != nil {
		return Transcription{}, err
	}

	text, err := p.transcribe(ctx, up)
	if err != nil {
		return Transcription{}, err
	}

	path, err := p.store.WriteArtifact(storage.KindTranscription, name, []byte(text))
	if err != nil {
		return Transcription{}, fmt.Errorf("write transcription: %w", err)
	}

	return Transcription{Upload: up, Text: text, Path: path}, nil
}

// Summarize stores the upload, transcribes it afresh and summarizes the
// transcript within the configured bounds. The result is persisted to
// summaries/<name>.txt, and to summaries/<name>.docx when enabled.
func (p *implProcessor) Summarize(ctx context.Context, name string, r io.Reader) (Summary, error) {
	up, err := p.Upload(ctx, name, r)
	if err != nil {
		return Summary{}, err
	}

	text, err := p.transcribe(ctx, up)
	if err != nil {
		return Summary{}, err
	}

	below := summarizer.BelowMinimum(text, p.bounds)
	if below {
		p.logger.Warn(ctx, "Transcript of %s has %d words, below the %d token summary minimum",
			name, len(strings.Fields(text)), p.bounds.MinTokens)
	}

	startTime := time.Now()
	summary, err := withGate(ctx, p.gate, func() (string, error) {
		return p.summarizer.Summarize(ctx, text, p.bounds)
	})
	if err != nil {
		return Summary{}, fmt.Errorf("summarize with %s: %w", p.summarizer.Name(), err)
	}
	p.logger.Info(ctx, "Summarized %s with %s in %s", name, p.summarizer.Name(), time.Since(startTime))

	path, err := p.store.WriteArtifact(storage.KindSummary, name, []byte(summary))
	if err != nil {
		return Summary{}, fmt.Errorf("write summary: %w", err)
	}

	if p.docx {
		p.exportDocx(ctx, name, summary)
	}

	return Summary{Upload: up, Summary: summary, Path: path, BelowMinimum: below}, nil
}

// ExtractTimestamps stores the upload, splits it into non-silent
// intervals and persists them to timestamps/<name>.txt.
func (p *implProcessor) ExtractTimestamps(ctx context.Context, name string, r io.Reader) (Timestamps, error) {
	up, err := p.Upload(ctx, name, r)
	if err != nil {
		return Timestamps{}, err
	}

	res, err := withGate(ctx, p.gate, func() (segmenter.Result, error) {
		return p.segmenter.Segment(ctx, up.FullPath)
	})
	if err != nil {
		return Timestamps{}, fmt.Errorf("segment %s: %w", up.Path, err)
	}
	p.logger.Info(ctx, "Found %d non-silent intervals in %s (%d samples at %d Hz, %ss)",
		len(res.Intervals), name, res.Samples, res.SampleRate, res.Duration.StringFixed(2))

	path, err := p.store.WriteArtifact(storage.KindTimestamps, name, segmenter.FormatLines(res.Intervals))
	if err != nil {
		return Timestamps{}, fmt.Errorf("write timestamps: %w", err)
	}

	intervals := res.Intervals
	if intervals == nil {
		intervals = []segmenter.Interval{}
	}
	return Timestamps{Upload: up, Intervals: intervals, Path: path}, nil
}

func (p *implProcessor) transcribe(ctx context.Context, up storage.Upload) (string, error) {
	startTime := time.Now()
	text, err := withGate(ctx, p.gate, func() (string, error) {
		return p.recognizer.Transcribe(ctx, up.FullPath)
	})
	if err != nil {
		return "", fmt.Errorf("transcribe %s with %s: %w", up.Path, p.recognizer.Name(), err)
	}
	p.logger.Info(ctx, "Transcribed %s with %s in %s (%d chars)", up.Path, p.recognizer.Name(), time.Since(startTime), len(text))
	return text, nil
}

func (p *implProcessor) exportDocx(ctx context.Context, name, summary string) {
	path, err := p.store.ArtifactPath(storage.KindSummary, name, ".docx")
	if err != nil {
		p.logger.Warn(ctx, "Skipping docx export for %s: %v", name, err)
		return
	}
	if err := summarizer.WriteDocx(name, summary, path); err != nil {
		p.logger.Warn(ctx, "Failed to export docx %s: %v", path, err)
		p.cleanupFile(ctx, path)
		return
	}
	p.logger.Debug(ctx, "Exported summary docx: %s", path)
}
