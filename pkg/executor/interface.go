package executor

import "context"

// Executor runs external programs such as ffmpeg and whisper.cpp
type Executor interface {
	// Execute runs name with args and returns its stdout. The process is
	// killed when ctx is done.
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)
}
