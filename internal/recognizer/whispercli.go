package recognizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/pkg/executor"
)

// whisperCLI runs the whisper.cpp command line program once per request.
type whisperCLI struct {
	cfg      config.RecognizerConfig
	audio    audioConverter
	executor executor.Executor
	logger   logger.Logger
}

func (w *whisperCLI) Name() string {
	return config.RecognizerWhisperCLI
}

func (w *whisperCLI) Transcribe(ctx context.Context, audioPath string) (string, error) {
	start := time.Now()

	wavPath, workDir, err := w.audio.toWAV(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer w.audio.cleanupWorkDir(ctx, workDir)

	// whisper.cpp appends .txt to the output prefix
	outputPrefix := filepath.Join(workDir, "transcript")

	// -m: model path
	// -f: input audio
	// -otxt / -of: plain text output at prefix.txt
	// -l: language, "auto" detects
	// -t: threads
	// -tp 0 -nf: greedy decoding without temperature fallback
	// -np: no progress prints on stderr
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-of", outputPrefix,
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-tp", "0",
		"-nf",
		"-np",
	}

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", apperr.FromCommand(ctx, fmt.Errorf("whisper transcribe: %w", err), apperr.KindModel)
	}

	raw, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return "", apperr.E(apperr.KindModel, fmt.Errorf("read whisper output: %w", err))
	}

	text := joinSegments(string(raw))
	w.logger.Info(ctx, "Transcription completed in %s: %d chars", time.Since(start), len(text))
	return text, nil
}

// joinSegments flattens whisper's one-segment-per-line output into a
// single space-separated passage.
func joinSegments(raw string) string {
	lines := strings.Split(raw, "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
