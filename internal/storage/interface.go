package storage

import "io"

// Kind names a directory of derived artifacts.
type Kind string

const (
	KindTranscription Kind = "transcriptions"
	KindSummary       Kind = "summaries"
	KindTimestamps    Kind = "timestamps"
)

const uploadsDir = "uploads"

// Upload describes a stored upload.
type Upload struct {
	Name string
	// Path is the process-relative location reported to clients,
	// always "uploads/<name>".
	Path string
	// FullPath is where the bytes live on disk.
	FullPath string
	Size     int64
	// Digest is the hex BLAKE3-256 of the content.
	Digest string
}

// Store keeps uploads and derived artifacts in flat, filename-keyed
// directories. Writes replace any existing file of the same name.
type Store interface {
	Init() error
	SaveUpload(name string, r io.Reader) (Upload, error)
	WriteArtifact(kind Kind, name string, data []byte) (string, error)
	// ArtifactPath returns the on-disk path for name+ext under kind.
	ArtifactPath(kind Kind, name, ext string) (string, error)
}
