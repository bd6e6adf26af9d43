package segmenter

import (
	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/pkg/executor"
)

type implSegmenter struct {
	ffmpegPath string
	sampleRate int
	params     Params
	executor   executor.Executor
	logger     logger.Logger
}

// New creates a Segmenter that decodes with ffmpeg and splits on energy.
func New(cfg config.SegmenterConfig, exec executor.Executor, log logger.Logger) Segmenter {
	return &implSegmenter{
		ffmpegPath: cfg.FFmpegPath,
		sampleRate: cfg.SampleRate,
		params: Params{
			TopDB:       cfg.TopDB,
			FrameLength: cfg.FrameLength,
			HopLength:   cfg.HopLength,
		},
		executor: exec,
		logger:   log,
	}
}
