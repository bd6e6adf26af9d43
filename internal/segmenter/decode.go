package segmenter

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

// decode converts any input ffmpeg understands to mono float32 PCM at the
// configured sample rate.
func (s *implSegmenter) decode(ctx context.Context, audioPath string) ([]float32, error) {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", audioPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(s.sampleRate),
		"-f", "f32le",
		"-acodec", "pcm_f32le",
		"pipe:1",
	}

	raw, err := s.executor.Execute(ctx, s.ffmpegPath, args...)
	if err != nil {
		return nil, apperr.FromCommand(ctx, fmt.Errorf("decode audio: %w", err), apperr.KindModel)
	}

	return pcmToFloat32(raw), nil
}

// pcmToFloat32 reads little-endian float32 samples; a trailing partial
// sample is dropped.
func pcmToFloat32(raw []byte) []float32 {
	n := len(raw) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}
