package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInput:
		return http.StatusBadRequest
	case apperr.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperr.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the only place failures become HTTP responses.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		err = &apperr.Error{Kind: apperr.KindTooLarge, Err: err}
	}

	kind := apperr.KindOf(err)
	status := statusOf(kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "%s %s failed (%s): %v", r.Method, r.URL.Path, kind, err)
	} else {
		h.logger.Warn(r.Context(), "%s %s rejected (%s): %v", r.Method, r.URL.Path, kind, err)
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
