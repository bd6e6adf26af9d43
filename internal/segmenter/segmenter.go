package segmenter

import (
	"context"
	"time"
)

func (s *implSegmenter) Segment(ctx context.Context, audioPath string) (Result, error) {
	start := time.Now()

	samples, err := s.decode(ctx, audioPath)
	if err != nil {
		return Result{}, err
	}

	bounds := Split(samples, s.params)
	intervals := make([]Interval, len(bounds))
	for i, b := range bounds {
		intervals[i] = NewInterval(b[0], b[1], s.sampleRate)
	}

	res := Result{
		Intervals:  intervals,
		SampleRate: s.sampleRate,
		Samples:    len(samples),
		Duration:   samplesToSeconds(len(samples), s.sampleRate),
	}

	s.logger.Debug(ctx, "Segmented %s: %d samples at %d Hz, %d intervals in %s",
		audioPath, len(samples), s.sampleRate, len(intervals), time.Since(start))
	return res, nil
}
