package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

type implStore struct {
	root string
}

func (s *implStore) Init() error {
	for _, dir := range []string{uploadsDir, string(KindTranscription), string(KindSummary), string(KindTimestamps)} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0755); err != nil {
			return apperr.E(apperr.KindStorage, fmt.Errorf("create directory %s: %w", dir, err))
		}
	}
	return nil
}

// ValidateName accepts only a single, non-special path element.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return apperr.Errorf(apperr.KindInput, "file name is empty")
	case name == "." || name == "..":
		return apperr.Errorf(apperr.KindInput, "invalid file name %q", name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return apperr.Errorf(apperr.KindInput, "invalid file name %q: must not contain path separators", name)
	}
	return nil
}

// SaveUpload streams r into uploads/<name>. The content is written to a
// temp file in the same directory and renamed over the target, so a
// concurrent reader sees either the old or the new bytes.
func (s *implStore) SaveUpload(name string, r io.Reader) (Upload, error) {
	if err := ValidateName(name); err != nil {
		return Upload{}, err
	}

	dir := filepath.Join(s.root, uploadsDir)
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return Upload{}, apperr.E(apperr.KindStorage, fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	h := newDigest()
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		tmp.Close()
		return Upload{}, classifyCopyErr(err)
	}
	if err := tmp.Close(); err != nil {
		return Upload{}, apperr.E(apperr.KindStorage, fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return Upload{}, apperr.E(apperr.KindStorage, fmt.Errorf("chmod upload: %w", err))
	}

	fullPath := filepath.Join(dir, name)
	if err := os.Rename(tmpName, fullPath); err != nil {
		return Upload{}, apperr.E(apperr.KindStorage, fmt.Errorf("store upload: %w", err))
	}
	committed = true

	return Upload{
		Name:     name,
		Path:     uploadsDir + "/" + name,
		FullPath: fullPath,
		Size:     n,
		Digest:   encodeDigest(h),
	}, nil
}

func (s *implStore) WriteArtifact(kind Kind, name string, data []byte) (string, error) {
	path, err := s.ArtifactPath(kind, name, ".txt")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", apperr.E(apperr.KindStorage, fmt.Errorf("write %s artifact: %w", kind, err))
	}
	return path, nil
}

func (s *implStore) ArtifactPath(kind Kind, name, ext string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	switch kind {
	case KindTranscription, KindSummary, KindTimestamps:
	default:
		return "", fmt.Errorf("unknown artifact kind %q", kind)
	}
	return filepath.Join(s.root, string(kind), name+ext), nil
}

// classifyCopyErr separates client-side read failures (oversized or
// truncated bodies) from local write failures.
func classifyCopyErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.E(apperr.KindTooLarge, fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit))
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		return apperr.E(apperr.KindStorage, fmt.Errorf("write upload: %w", err))
	}
	return apperr.E(apperr.KindInput, fmt.Errorf("read upload: %w", err))
}
