package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
)

// Transcribe converts an upload to text. Video is reduced to its audio track
// first; the extracted file is removed before returning. At most
// performance.max_concurrent transcriptions run at once.
func (p *implProcessor) Transcribe(ctx context.Context, up *media.Upload, language string) (string, error) {
	if err := p.sem.acquire(ctx); err != nil {
		return "", fmt.Errorf("wait for slot: %w", err)
	}
	defer p.sem.release()

	start := time.Now()
	p.logger.Info(ctx, "Transcribing %s (%s, %s)", filepath.Base(up.Path), up.Kind, humanize.Bytes(uint64(max(up.Size, 0))))

	audioPath := up.Path
	if up.Kind == media.KindVideo {
		extracted, err := p.extractor.ExtractAudio(ctx, up.Path)
		if err != nil {
			return "", fmt.Errorf("extract audio: %w", err)
		}
		defer p.cleanupTempFile(ctx, extracted)
		audioPath = extracted
	}

	text, err := p.transcriber.Transcribe(ctx, audioPath, language)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	p.logger.Info(ctx, "Transcribed %s in %s", filepath.Base(up.Path), time.Since(start).Round(time.Millisecond))
	return text, nil
}

func (p *implProcessor) Summarize(ctx context.Context, transcript string) (string, error) {
	if p.summarizer == nil {
		return "", ErrSummarizationDisabled
	}
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return summary, nil
}
