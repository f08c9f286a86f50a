package transcriber

import (
	"time"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

type implTranscriber struct {
	client      *openai.Client
	model       string
	language    string
	temperature float32
	timeout     time.Duration
	logger      logger.Logger
}

// New creates a Transcriber for an OpenAI-compatible API such as Groq.
func New(cfg config.TranscriptionConfig, log logger.Logger) Transcriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Minute
	}

	return &implTranscriber{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		language:    cfg.Language,
		temperature: cfg.Temperature,
		timeout:     timeout,
		logger:      log,
	}
}
