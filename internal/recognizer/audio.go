package recognizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/pkg/executor"
)

type audioConverter struct {
	ffmpegPath string
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
}

// toWAV converts any input to 16kHz mono PCM WAV, the format whisper.cpp
// expects, inside a fresh work directory. The caller removes workDir.
func (a audioConverter) toWAV(ctx context.Context, inputPath string) (wavPath, workDir string, err error) {
	workDir, err = os.MkdirTemp(a.tempDir, "whisper-*")
	if err != nil {
		return "", "", apperr.E(apperr.KindStorage, fmt.Errorf("create work dir: %w", err))
	}
	wavPath = filepath.Join(workDir, "audio.wav")

	// -vn: drop any video stream
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: 16-bit PCM
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	a.logger.Debug(ctx, "Converting to 16kHz mono WAV: %s", inputPath)
	if _, err := a.executor.Execute(ctx, a.ffmpegPath, args...); err != nil {
		os.RemoveAll(workDir)
		return "", "", apperr.FromCommand(ctx, fmt.Errorf("ffmpeg convert audio: %w", err), apperr.KindModel)
	}

	return wavPath, workDir, nil
}

// cleanupWorkDir removes a work directory, logs warning if fails
func (a audioConverter) cleanupWorkDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		a.logger.Warn(ctx, "Failed to cleanup work dir %s: %v", dir, err)
	}
}
