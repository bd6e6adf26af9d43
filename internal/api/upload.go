package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

const fileField = "file"

// withUpload finds the "file" part of a multipart request and streams it
// to fn without buffering the whole body.
func withUpload(r *http.Request, fn func(ctx context.Context, name string, body io.Reader) error) error {
	mr, err := r.MultipartReader()
	if err != nil {
		return apperr.E(apperr.KindInput, fmt.Errorf("expected multipart/form-data: %w", err))
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return apperr.Errorf(apperr.KindInput, "missing form field '%s'", fileField)
		}
		if err != nil {
			return apperr.E(apperr.KindInput, fmt.Errorf("read multipart body: %w", err))
		}

		if part.FormName() != fileField {
			part.Close()
			continue
		}

		name := part.FileName()
		if name == "" {
			part.Close()
			return apperr.Errorf(apperr.KindInput, "form field '%s' has no file name", fileField)
		}

		err = fn(r.Context(), name, part)
		part.Close()
		return err
	}
}
