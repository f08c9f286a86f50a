package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/delivery"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/processor"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/session"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/storage"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-summarizer/pkg/executor"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// Load configuration
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "Server stopped: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	ttl, err := time.ParseDuration(cfg.Server.SessionTTL)
	if err != nil {
		return fmt.Errorf("parse session ttl: %w", err)
	}
	if err := os.MkdirAll(cfg.Paths.Temp, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", cfg.Paths.Temp, err)
	}

	tr := transcriber.New(cfg.Transcription, log)

	var sum summarizer.Summarizer
	if cfg.Summarization.Enabled {
		sum, err = summarizer.New(cfg.Summarization, log)
		if err != nil {
			return fmt.Errorf("init summarizer: %w", err)
		}
	}

	archiver, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	proc := processor.New(cfg, processor.Deps{
		Executor:    executor.New(),
		Transcriber: tr,
		Summarizer:  sum,
		Archiver:    archiver,
	}, log)

	store := session.NewStore(ttl)
	go store.Run(ctx, time.Minute)

	ingester := media.NewIngester(cfg.Paths.Temp, cfg.Media.AllowedExtensions)
	h := delivery.NewHandler(proc, ingester, store, cfg, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           delivery.NewRouter(h, cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "Listening at %s (uploads up to %s, summarization: %v, archive: %v)",
			srv.Addr, humanize.IBytes(uint64(cfg.Server.MaxUploadBytes)), cfg.Summarization.Enabled, cfg.Storage.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info(ctx, "Shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info(ctx, "Server stopped")
	return nil
}
