package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
)

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger

	// generate performs a single call with one key. Replaced in tests.
	generate func(ctx context.Context, key, prompt string, b Bounds) (string, error)
}

type implChat struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     logger.Logger
}

// New creates the Summarizer selected by cfg.Backend.
func New(cfg config.SummarizerConfig, log logger.Logger) (Summarizer, error) {
	switch cfg.Backend {
	case config.SummarizerGemini:
		if len(cfg.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini summarizer needs at least one API key")
		}
		g := &implGemini{
			apiKeys: cfg.APIKeys,
			model:   cfg.Model,
			logger:  log,
		}
		g.generate = g.callGemini
		return g, nil
	case config.SummarizerChat:
		return &implChat{
			url:        strings.TrimRight(cfg.ChatURL, "/"),
			apiKey:     cfg.ChatAPIKey,
			model:      cfg.Model,
			httpClient: &http.Client{Timeout: 5 * time.Minute},
			logger:     log,
		}, nil
	}
	return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Backend)
}
