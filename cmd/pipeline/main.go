package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/processor"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/storage"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/watcher"
	"github.com/nguyentantai21042004/meeting-summarizer/pkg/executor"
)

func main() {
	ctx := context.Background()

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

	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Transcription Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	var sum summarizer.Summarizer
	if cfg.Summarization.Enabled {
		sum, err = summarizer.New(cfg.Summarization, log)
		if err != nil {
			log.Error(ctx, "Failed to create summarizer: %v", err)
			os.Exit(1)
		}
	}

	archiver, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Error(ctx, "Failed to connect to storage: %v", err)
		os.Exit(1)
	}

	proc := processor.New(cfg, processor.Deps{
		Executor:    executor.New(),
		Transcriber: transcriber.New(cfg.Transcription, log),
		Summarizer:  sum,
		Archiver:    archiver,
	}, log)

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(watcher.Options{
		InputDir:          cfg.Paths.Input,
		AllowedExtensions: cfg.Media.AllowedExtensions,
		MaxConcurrent:     cfg.Performance.MaxConcurrent,
	}, proc.Process, log)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start watcher in goroutine
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Archived: %s", cfg.Paths.Archived)
	log.Info(ctx, "Transcription: %s (%s)", cfg.Transcription.Model, cfg.Transcription.BaseURL)
	if cfg.Summarization.Enabled {
		log.Info(ctx, "Summarization: %s", cfg.Summarization.Provider)
	}
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
		log.Info(ctx, "Shutting down gracefully...")
		cancel()
		<-done
	case err := <-done:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
