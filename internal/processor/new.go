package processor

import (
	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/internal/recognizer"
	"github.com/nguyentantai21042004/voicebrief/internal/segmenter"
	"github.com/nguyentantai21042004/voicebrief/internal/storage"
	"github.com/nguyentantai21042004/voicebrief/internal/summarizer"
)

type implProcessor struct {
	store      storage.Store
	recognizer recognizer.Recognizer
	summarizer summarizer.Summarizer
	segmenter  segmenter.Segmenter
	bounds     summarizer.Bounds
	docx       bool
	gate       *semaphore
	logger     logger.Logger
}

// New creates a Processor over the given models. At most
// cfg.Performance.MaxConcurrent model calls run at once.
func New(cfg *config.Config, store storage.Store, rec recognizer.Recognizer, sum summarizer.Summarizer, seg segmenter.Segmenter, log logger.Logger) Processor {
	return &implProcessor{
		store:      store,
		recognizer: rec,
		summarizer: sum,
		segmenter:  seg,
		bounds: summarizer.Bounds{
			MaxTokens: cfg.Summarizer.MaxTokens,
			MinTokens: cfg.Summarizer.MinTokens,
		},
		docx:   cfg.Summarizer.Docx,
		gate:   newSemaphore(max(1, cfg.Performance.MaxConcurrent)),
		logger: log,
	}
}
