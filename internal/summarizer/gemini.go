package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	"google.golang.org/genai"
)

// geminiSummarizer rotates through several API keys on quota errors.
type geminiSummarizer struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int

	model   string
	baseURL string
	timeout time.Duration
	logger  logger.Logger
}

func (s *geminiSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := systemPrompt + "\n\n" + fmt.Sprintf(userPrompt, transcript)

	var lastErr error
	for range len(s.apiKeys) {
		idx, key := s.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      key,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			if isQuotaError(err) {
				s.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", &ServiceError{Provider: "gemini", Err: fmt.Errorf("generate content: %w", err)}
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			if out := strings.TrimSpace(text.String()); out != "" {
				return out, nil
			}
		}
		return "", &ServiceError{Provider: "gemini", Err: errors.New("empty response")}
	}

	return "", &ServiceError{Provider: "gemini", StatusCode: 429, Err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (s *geminiSummarizer) key() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

func (s *geminiSummarizer) rotateKey() {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	s.mu.Unlock()
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
