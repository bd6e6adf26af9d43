package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/internal/processor"
	"github.com/nguyentantai21042004/voicebrief/internal/storage"
)

const (
	digestHeader   = "X-Content-Digest"
	belowMinHeader = "X-Summary-Below-Min"
)

type handlerFunc = func(http.ResponseWriter, *http.Request)

type handler struct {
	proc           processor.Processor
	recognizerName string
	summarizerName string
	logger         logger.Logger
}

func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"recognizer": h.recognizerName,
		"summarizer": h.summarizerName,
	})
}

func (h *handler) UploadAudio(w http.ResponseWriter, r *http.Request) {
	var up storage.Upload
	err := withUpload(r, func(ctx context.Context, name string, body io.Reader) error {
		var err error
		up, err = h.proc.Upload(ctx, name, body)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(digestHeader, up.Digest)
	writeJSON(w, http.StatusOK, map[string]string{
		"info": fmt.Sprintf("file '%s' saved at '%s'", up.Name, up.Path),
	})
}

func (h *handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	var res processor.Transcription
	err := withUpload(r, func(ctx context.Context, name string, body io.Reader) error {
		var err error
		res, err = h.proc.Transcribe(ctx, name, body)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(digestHeader, res.Upload.Digest)
	writeJSON(w, http.StatusOK, map[string]string{"transcription": res.Text})
}

func (h *handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var res processor.Summary
	err := withUpload(r, func(ctx context.Context, name string, body io.Reader) error {
		var err error
		res, err = h.proc.Summarize(ctx, name, body)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(digestHeader, res.Upload.Digest)
	if res.BelowMinimum {
		w.Header().Set(belowMinHeader, "true")
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": res.Summary})
}

func (h *handler) ExtractTimestamps(w http.ResponseWriter, r *http.Request) {
	var res processor.Timestamps
	err := withUpload(r, func(ctx context.Context, name string, body io.Reader) error {
		var err error
		res, err = h.proc.ExtractTimestamps(ctx, name, body)
		return err
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set(digestHeader, res.Upload.Digest)
	writeJSON(w, http.StatusOK, map[string]interface{}{"timestamps": res.Intervals})
}
