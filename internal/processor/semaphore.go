package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

// semaphore implements a simple counting semaphore for limiting concurrency
type semaphore struct {
	ch chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// acquire blocks until a slot is free or ctx is done.
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return apperr.E(apperr.KindUnavailable, fmt.Errorf("waiting for inference slot: %w", ctx.Err()))
	}
}

func (s *semaphore) release() {
	<-s.ch
}

// withGate runs fn while holding a slot.
func withGate[T any](ctx context.Context, s *semaphore, fn func() (T, error)) (T, error) {
	if err := s.acquire(ctx); err != nil {
		var zero T
		return zero, err
	}
	defer s.release()
	return fn()
}
