package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
)

// whisperServer talks to a long-running whisper.cpp server (whisper-server),
// which keeps the model loaded between requests.
type whisperServer struct {
	baseURL    string
	language   string
	audio      audioConverter
	httpClient *http.Client
	logger     logger.Logger
}

type inferenceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func (c *whisperServer) Name() string {
	return config.RecognizerWhisperServer
}

func (c *whisperServer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	start := time.Now()

	wavPath, workDir, err := c.audio.toWAV(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer c.audio.cleanupWorkDir(ctx, workDir)

	text, err := c.sendToServer(ctx, wavPath)
	if err != nil {
		if ctx.Err() != nil {
			return "", apperr.E(apperr.KindUnavailable, err)
		}
		return "", apperr.E(apperr.KindModel, err)
	}

	c.logger.Info(ctx, "Transcription completed in %s: %d chars", time.Since(start), len(text))
	return text, nil
}

func (c *whisperServer) sendToServer(ctx context.Context, wavPath string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	audioFile, err := os.Open(wavPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer audioFile.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audioFile); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}

	writer.WriteField("response_format", "json")
	writer.WriteField("temperature", "0.0")
	writer.WriteField("temperature_inc", "0.0")
	if c.language != "" && c.language != "auto" {
		writer.WriteField("language", c.language)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	url := c.baseURL + "/inference"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debug(ctx, "Sending request to %s (audio: %s)", url, wavPath)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("whisper server request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper server error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out inferenceResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode whisper server response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("whisper server: %s", out.Error)
	}

	return joinSegments(out.Text), nil
}
