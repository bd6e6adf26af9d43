package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

func (s *implGemini) Name() string {
	return "gemini:" + s.model
}

// Summarize sends the transcript to Gemini with deterministic decoding.
// Rotates API keys on 429 / quota errors.
func (s *implGemini) Summarize(ctx context.Context, text string, b Bounds) (string, error) {
	prompt := buildPrompt(text, b)

	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		idx, key := s.key()

		summary, err := s.generate(ctx, key, prompt, b)
		if err != nil {
			if ctx.Err() != nil {
				return "", apperr.E(apperr.KindUnavailable, fmt.Errorf("summarize: %w", ctx.Err()))
			}
			if isQuotaError(err) {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				s.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", apperr.E(apperr.KindModel, fmt.Errorf("generate content: %w", err))
		}
		return strings.TrimSpace(summary), nil
	}

	return "", apperr.E(apperr.KindModel, fmt.Errorf("all API keys exhausted: %w", lastErr))
}

func (s *implGemini) callGemini(ctx context.Context, key, prompt string, b Bounds) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		TopK:            genai.Ptr[float32](1),
		MaxOutputTokens: int32(b.MaxTokens),
		ThinkingConfig:  &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		return text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func (s *implGemini) key() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

// rotateKey advances past from unless another request already did.
func (s *implGemini) rotateKey(from int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentKey == from {
		s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
