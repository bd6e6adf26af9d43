package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *implChat) Name() string {
	return "chat:" + c.model
}

// Summarize calls an OpenAI-compatible chat completions endpoint.
func (c *implChat) Summarize(ctx context.Context, text string, b Bounds) (string, error) {
	body := chatRequest{
		Model:       c.model,
		MaxTokens:   b.MaxTokens,
		Temperature: 0,
		TopP:        1,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(strings.ToValidUTF8(text, ""), b)},
		},
	}

	j, err := json.Marshal(body)
	if err != nil {
		return "", apperr.E(apperr.KindInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/chat/completions", bytes.NewReader(j))
	if err != nil {
		return "", apperr.E(apperr.KindInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", apperr.E(apperr.KindUnavailable, fmt.Errorf("chat request: %w", ctx.Err()))
		}
		return "", apperr.E(apperr.KindModel, fmt.Errorf("chat request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.E(apperr.KindModel, fmt.Errorf("read chat response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperr.Errorf(apperr.KindModel, "chat API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperr.E(apperr.KindModel, fmt.Errorf("parse chat response: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", apperr.Errorf(apperr.KindModel, "empty chat response")
	}

	c.logger.Debug(ctx, "chat summary received: %d bytes", len(out.Choices[0].Message.Content))
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
