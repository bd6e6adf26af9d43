package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nguyentantai21042004/voicebrief/internal/api/middleware"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/internal/processor"
)

type Options struct {
	Processor      processor.Processor
	RecognizerName string
	SummarizerName string
	MaxUploadBytes int64
	CORSOrigins    []string
	Logger         logger.Logger
}

func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(cors.Handler(middleware.CORSOptions(opts.CORSOrigins)))

	h := &handler{
		proc:           opts.Processor,
		recognizerName: opts.RecognizerName,
		summarizerName: opts.SummarizerName,
		logger:         opts.Logger,
	}

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBodySize(opts.MaxUploadBytes))

		for path, fn := range map[string]handlerFunc{
			"/upload-audio":       h.UploadAudio,
			"/transcribe":         h.Transcribe,
			"/summarize":          h.Summarize,
			"/extract-timestamps": h.ExtractTimestamps,
		} {
			r.Post(path+"/", fn)
			r.Post(path, fn)
		}
	})

	return r
}
