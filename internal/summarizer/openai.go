package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

// openaiSummarizer talks to any OpenAI-compatible chat API (Groq by default).
type openaiSummarizer struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      logger.Logger
}

func (s *openaiSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info(ctx, "Summarizing %d characters with %s", len(transcript), s.model)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(userPrompt, transcript)},
		},
		Temperature: s.temperature,
	})
	if err != nil {
		se := &ServiceError{Provider: "openai", Err: fmt.Errorf("chat completion: %w", err)}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			se.StatusCode = apiErr.HTTPStatusCode
		}
		return "", se
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ServiceError{Provider: "openai", Err: errors.New("empty response")}
	}

	s.logger.Info(ctx, "Summary ready in %s", time.Since(start).Round(time.Millisecond))
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
