package recognizer

import "context"

// Recognizer turns speech in an audio file into text.
type Recognizer interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
	// Name identifies the backend in logs and the health endpoint.
	Name() string
}
