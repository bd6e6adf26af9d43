package recognizer

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/pkg/executor"
)

// New builds the recognizer selected by cfg.Backend. The returned value is
// created once at startup and shared by all requests.
func New(cfg config.RecognizerConfig, tempDir string, exec executor.Executor, log logger.Logger) (Recognizer, error) {
	audio := audioConverter{ffmpegPath: cfg.FFmpegPath, tempDir: tempDir, executor: exec, logger: log}

	switch cfg.Backend {
	case config.RecognizerWhisperCLI:
		return &whisperCLI{
			cfg:      cfg,
			audio:    audio,
			executor: exec,
			logger:   log,
		}, nil
	case config.RecognizerWhisperServer:
		return &whisperServer{
			baseURL:  strings.TrimRight(cfg.ServerURL, "/"),
			language: cfg.Language,
			audio:    audio,
			httpClient: &http.Client{
				Timeout: 30 * time.Minute, // long recordings
			},
			logger: log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown recognizer backend: %s", cfg.Backend)
	}
}
