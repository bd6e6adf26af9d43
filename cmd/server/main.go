package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/voicebrief/internal/api"
	"github.com/nguyentantai21042004/voicebrief/internal/config"
	"github.com/nguyentantai21042004/voicebrief/internal/logger"
	"github.com/nguyentantai21042004/voicebrief/internal/processor"
	"github.com/nguyentantai21042004/voicebrief/internal/recognizer"
	"github.com/nguyentantai21042004/voicebrief/internal/segmenter"
	"github.com/nguyentantai21042004/voicebrief/internal/storage"
	"github.com/nguyentantai21042004/voicebrief/internal/summarizer"
	"github.com/nguyentantai21042004/voicebrief/internal/watcher"
	"github.com/nguyentantai21042004/voicebrief/pkg/executor"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	if err := run(cfg, *configPath, log); err != nil {
		log.Error(context.Background(), "voicebrief stopped: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, configPath string, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "System: %s/%s, CPU Cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())

	store := storage.New(cfg.Paths.Root)
	if err := store.Init(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	// Models are built once and shared by every request.
	exec := executor.New()
	rec, err := recognizer.New(cfg.Recognizer, cfg.Paths.Temp, exec, log)
	if err != nil {
		return fmt.Errorf("create recognizer: %w", err)
	}
	sum, err := summarizer.New(cfg.Summarizer, log)
	if err != nil {
		return fmt.Errorf("create summarizer: %w", err)
	}
	seg := segmenter.New(cfg.Segmenter, exec, log)

	proc := processor.New(cfg, store, rec, sum, seg, log)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: api.NewRouter(api.Options{
			Processor:      proc,
			RecognizerName: rec.Name(),
			SummarizerName: sum.Name(),
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			CORSOrigins:    cfg.Server.CORSOrigins,
			Logger:         log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	w, err := watcher.New(configPath, reloadLogLevel(log), log)
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer w.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "Listening on %s (recognizer %s, summarizer %s, max concurrent %d)",
			cfg.Server.Addr, rec.Name(), sum.Name(), cfg.Performance.MaxConcurrent)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("config watcher: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// reloadLogLevel applies logging.level from a changed config file. Other
// settings need a restart.
func reloadLogLevel(log logger.Logger) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("reload config: %w", err)
		}
		if err := log.SetLevel(cfg.Logging.Level); err != nil {
			return err
		}
		log.Info(ctx, "Log level set to %s", cfg.Logging.Level)
		return nil
	}
}
