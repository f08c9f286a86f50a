package processor

import (
	"errors"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/report"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/storage"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-summarizer/pkg/executor"
)

var ErrSummarizationDisabled = errors.New("summarization is disabled")

type implProcessor struct {
	cfg         *config.Config
	extractor   AudioExtractor
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	renderer    *report.Renderer
	archiver    storage.Archiver
	logger      logger.Logger
	sem         *semaphore
}

// Deps are the remote services the processor calls. Summarizer may be nil
// when summarization is disabled; Archiver may be nil.
type Deps struct {
	Executor    executor.Executor
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Archiver    storage.Archiver
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Deps, log logger.Logger) Processor {
	archiver := deps.Archiver
	if archiver == nil {
		archiver = storage.Nop{}
	}
	return &implProcessor{
		cfg:         cfg,
		extractor:   media.NewExtractor(deps.Executor, cfg.FFmpeg, log).WithOutputDir(cfg.Paths.Temp),
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		renderer:    report.New(cfg.Report.RenderConfig()),
		archiver:    archiver,
		logger:      log,
		sem:         newSemaphore(cfg.Performance.MaxConcurrent),
	}
}
