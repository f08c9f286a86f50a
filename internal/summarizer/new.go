package summarizer

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

const (
	systemPrompt = "You are a helpful assistant that summarizes text."
	userPrompt   = "Please summarize the following transcription:\n\n%s"
)

// New creates the Summarizer selected by cfg.Provider.
func New(cfg config.SummarizationConfig, log logger.Logger) (Summarizer, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 2 * time.Minute
	}

	switch cfg.Provider {
	case "", "openai":
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		return &openaiSummarizer{
			client:      openai.NewClientWithConfig(clientCfg),
			model:       cfg.Model,
			temperature: cfg.Temperature,
			timeout:     timeout,
			logger:      log,
		}, nil

	case "gemini":
		if len(cfg.GeminiAPIKeys) == 0 {
			return nil, fmt.Errorf("gemini: no API keys")
		}
		return &geminiSummarizer{
			apiKeys: cfg.GeminiAPIKeys,
			model:   cfg.GeminiModel,
			baseURL: cfg.GeminiBaseURL,
			timeout: timeout,
			logger:  log,
		}, nil
	}

	return nil, fmt.Errorf("unknown summarization provider %q", cfg.Provider)
}
