package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Transcribe uploads the audio file and returns the transcript text. An
// empty language uses the configured default.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	if language == "" {
		language = t.language
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	t.logger.Info(ctx, "Transcribing %s (model=%s, language=%s)", filepath.Base(audioPath), t.model, language)

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       t.model,
		FilePath:    audioPath,
		Language:    language,
		Temperature: t.temperature,
		Format:      openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", newServiceError(fmt.Errorf("create transcription: %w", err))
	}

	text := strings.TrimSpace(resp.Text)
	t.logger.Info(ctx, "Transcription completed in %s: %d characters", time.Since(start).Round(time.Millisecond), len(text))
	return text, nil
}
