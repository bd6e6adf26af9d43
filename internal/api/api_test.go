package api

import (
	"bytes"
	"context"
	"errors"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/voicebrief/internal/apperr"
	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/internal/processor"
	"github.com/nguyentantai21042004/voicebrief/internal/recognizer"
	"github.com/nguyentantai21042004/voicebrief/internal/segmenter"
	"github.com/nguyentantai21042004/voicebrief/internal/storage"
	"github.com/nguyentantai21042004/voicebrief/internal/summarizer"
)

type stubRecognizer struct {
	text string
	err  error
}

func (s *stubRecognizer) Name() string { return "stub-asr" }

func (s *stubRecognizer) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return s.text, s.err
}

type stubSummarizer struct {
	out string
}

func (s *stubSummarizer) Name() string { return "stub-sum" }

func (s *stubSummarizer) Summarize(ctx context.Context, text string, b summarizer.Bounds) (string, error) {
	return s.out, nil
}

type stubSegmenter struct {
	intervals []segmenter.Interval
}

func (s *stubSegmenter) Segment(ctx context.Context, audioPath string) (segmenter.Result, error) {
	return segmenter.Result{Intervals: s.intervals}, nil
}

type testServer struct {
	root   string
	rec    *stubRecognizer
	seg    *stubSegmenter
	router http.Handler
}

func newTestServer(t *testing.T, maxUpload int64) *testServer {
	t.Helper()
	root := t.TempDir()
	store := storage.New(root)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Summarizer:  config.SummarizerConfig{MaxTokens: 150, MinTokens: 40},
		Performance: config.PerformanceConfig{MaxConcurrent: 1},
	}
	ts := &testServer{
		root: root,
		rec:  &stubRecognizer{text: "hello from the recording"},
		seg:  &stubSegmenter{},
	}
	proc := processor.New(cfg, store, ts.rec, &stubSummarizer{out: "a summary"}, ts.seg, logger.NewNop())
	ts.router = NewRouter(Options{
		Processor:      proc,
		RecognizerName: ts.rec.Name(),
		SummarizerName: "stub-sum",
		MaxUploadBytes: maxUpload,
		Logger:         logger.NewNop(),
	})
	return ts
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func (ts *testServer) post(t *testing.T, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ctype := multipartBody(t, "file", filename, content)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", ctype)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response %q is not JSON: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := map[string]interface{}{"status": "ok", "recognizer": "stub-asr", "summarizer": "stub-sum"}
	if diff := cmp.Diff(want, decode(t, rec)); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestUploadAudio(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	content := bytes.Repeat([]byte{0x00, 0xff, 0x10}, 1000)

	rec := ts.post(t, "/upload-audio/", "meeting.mp3", content)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if got := decode(t, rec)["info"]; got != "file 'meeting.mp3' saved at 'uploads/meeting.mp3'" {
		t.Errorf("info = %v", got)
	}

	stored, err := os.ReadFile(filepath.Join(ts.root, "uploads", "meeting.mp3"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(stored, content) {
		t.Errorf("stored content differs from upload")
	}
	if d := rec.Header().Get(digestHeader); len(d) != 64 {
		t.Errorf("%s = %q, want 64 hex chars", digestHeader, d)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID")
	}
}

func TestUploadAudioOverwrites(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	ts.post(t, "/upload-audio/", "a.wav", []byte("first version"))
	rec := ts.post(t, "/upload-audio", "a.wav", []byte("second"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	stored, _ := os.ReadFile(filepath.Join(ts.root, "uploads", "a.wav"))
	if string(stored) != "second" {
		t.Errorf("stored %q, want last write", stored)
	}
}

func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name   string
		build  func(t *testing.T) (*bytes.Buffer, string)
		status int
	}{
		{
			name: "missing file field",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, "audio", "a.wav", []byte("x"))
			},
			status: http.StatusBadRequest,
		},
		{
			name: "not multipart",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return bytes.NewBufferString(`{"file":"a.wav"}`), "application/json"
			},
			status: http.StatusBadRequest,
		},
		{
			name: "too large",
			build: func(t *testing.T) (*bytes.Buffer, string) {
				return multipartBody(t, "file", "big.wav", bytes.Repeat([]byte("a"), 8192))
			},
			status: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, 1024)
			body, ctype := tt.build(t)
			req := httptest.NewRequest(http.MethodPost, "/upload-audio/", body)
			req.Header.Set("Content-Type", ctype)
			rec := httptest.NewRecorder()
			ts.router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			if msg, _ := decode(t, rec)["error"].(string); msg == "" {
				t.Errorf("missing error message")
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	rec := ts.post(t, "/transcribe/", "talk.wav", []byte("pcm"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if got := decode(t, rec)["transcription"]; got != "hello from the recording" {
		t.Errorf("transcription = %v", got)
	}
	stored, _ := os.ReadFile(filepath.Join(ts.root, "transcriptions", "talk.wav.txt"))
	if string(stored) != "hello from the recording" {
		t.Errorf("stored transcription = %q", stored)
	}
}

func TestTranscribeModelFailure(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	ts.rec.err = apperr.Errorf(apperr.KindModel, "whisper exited with status 1")

	rec := ts.post(t, "/transcribe/", "talk.wav", []byte("pcm"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg, _ := decode(t, rec)["error"].(string); !strings.Contains(msg, "whisper exited") {
		t.Errorf("error = %q", msg)
	}
}

func TestSummarizeFlagsShortTranscript(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	rec := ts.post(t, "/summarize/", "talk.wav", []byte("pcm"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if got := decode(t, rec)["summary"]; got != "a summary" {
		t.Errorf("summary = %v", got)
	}
	if rec.Header().Get(belowMinHeader) != "true" {
		t.Errorf("%s not set for a 4 word transcript", belowMinHeader)
	}
}

func TestSummarizeLongTranscriptNotFlagged(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	ts.rec.text = strings.Repeat("spoken word ", 50)

	rec := ts.post(t, "/summarize/", "talk.wav", []byte("pcm"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get(belowMinHeader) != "" {
		t.Errorf("%s set for a long transcript", belowMinHeader)
	}
}

func TestExtractTimestamps(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	ts.seg.intervals = []segmenter.Interval{
		segmenter.NewInterval(0, 22050, 22050),
		segmenter.NewInterval(44100, 55125, 22050),
	}

	rec := ts.post(t, "/extract-timestamps/", "talk.wav", []byte("pcm"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var body struct {
		Timestamps [][]float64 `json:"timestamps"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	want := [][]float64{{0, 1}, {2, 2.5}}
	if diff := cmp.Diff(want, body.Timestamps); diff != "" {
		t.Errorf("timestamps mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTimestampsSilentIsEmptyList(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	rec := ts.post(t, "/extract-timestamps/", "silent.wav", []byte("pcm"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"timestamps":[]`) {
		t.Errorf("body = %s, want an empty list", rec.Body)
	}
}

func TestStatusOf(t *testing.T) {
	tests := map[apperr.Kind]int{
		apperr.KindInput:       http.StatusBadRequest,
		apperr.KindTooLarge:    http.StatusRequestEntityTooLarge,
		apperr.KindStorage:     http.StatusInternalServerError,
		apperr.KindModel:       http.StatusInternalServerError,
		apperr.KindUnavailable: http.StatusServiceUnavailable,
		apperr.KindInternal:    http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := statusOf(kind); got != want {
			t.Errorf("statusOf(%s) = %d, want %d", kind, got, want)
		}
	}
}

// rejectingExecutor fails every command the way ffmpeg does on bytes it
// cannot decode.
type rejectingExecutor struct{}

func (rejectingExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	return nil, errors.New("command '" + name + "' failed: exit status 1\nstderr: Invalid data found when processing input")
}

func TestCorruptAudioIsServerError(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Recognizer: config.RecognizerConfig{
			Backend:    config.RecognizerWhisperCLI,
			BinaryPath: "whisper-cli",
			ModelPath:  "models/ggml-base.bin",
			FFmpegPath: "ffmpeg",
			Language:   "auto",
			Threads:    1,
		},
		Segmenter: config.SegmenterConfig{
			FFmpegPath:  "ffmpeg",
			SampleRate:  22050,
			TopDB:       20,
			FrameLength: 2048,
			HopLength:   512,
		},
		Summarizer:  config.SummarizerConfig{MaxTokens: 150, MinTokens: 40},
		Performance: config.PerformanceConfig{MaxConcurrent: 1},
	}

	exec := rejectingExecutor{}
	rec, err := recognizer.New(cfg.Recognizer, t.TempDir(), exec, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	seg := segmenter.New(cfg.Segmenter, exec, logger.NewNop())
	proc := processor.New(cfg, store, rec, &stubSummarizer{out: "unused"}, seg, logger.NewNop())
	router := NewRouter(Options{Processor: proc, MaxUploadBytes: 1 << 20, Logger: logger.NewNop()})

	for _, path := range []string{"/transcribe/", "/summarize/", "/extract-timestamps/"} {
		t.Run(path, func(t *testing.T) {
			body, ctype := multipartBody(t, "file", "garbage.mp3", []byte("definitely not audio"))
			req := httptest.NewRequest(http.MethodPost, path, body)
			req.Header.Set("Content-Type", ctype)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500 (body %s)", w.Code, w.Body)
			}
			if msg, _ := decode(t, w)["error"].(string); !strings.Contains(msg, "Invalid data found") {
				t.Errorf("error = %q", msg)
			}
		})
	}
}
