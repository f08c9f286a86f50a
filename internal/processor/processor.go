package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
)

// Process orchestrates the watch-folder pipeline for one file: transcribe,
// write the transcript, PDF and DOCX reports and an optional summary to the
// output folder, then archive the source.
func (p *implProcessor) Process(ctx context.Context, mediaPath string) error {
	startTime := time.Now()
	filename := filepath.Base(mediaPath)
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting processing: %s", mediaPath)
	p.logger.Info(ctx, "========================================")

	info, err := os.Stat(mediaPath)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	up := &media.Upload{
		Path: mediaPath,
		Kind: media.KindFromExtension(filepath.Ext(mediaPath)),
		Ext:  media.NormalizeExtension(filepath.Ext(mediaPath)),
		Size: info.Size(),
	}
	if up.Kind == media.KindUnknown {
		return &media.UnsupportedMediaError{Path: mediaPath, Reason: "neither audio nor video"}
	}

	// Step 1: Transcribe
	transcript, err := p.Transcribe(ctx, up, "")
	if err != nil {
		return err
	}
	txtPath, err := p.writeOutput(base+".txt", []byte(transcript))
	if err != nil {
		return err
	}

	title := p.cfg.Report.Title
	if title == "" {
		title = base
	}

	// Step 2: PDF report
	doc, err := p.RenderPDF(ctx, base+".pdf", title, transcript)
	if err != nil {
		return err
	}
	if _, err := p.writeOutput(base+".pdf", doc.Bytes); err != nil {
		return err
	}

	// Step 3: Summary, best effort
	var summary string
	if p.summarizer != nil && strings.TrimSpace(transcript) != "" {
		summary, err = p.Summarize(ctx, transcript)
		if err != nil {
			p.logger.Warn(ctx, "Failed to summarize %s: %v", filename, err)
		} else {
			md := fmt.Sprintf("# %s\n\n%s\n", base, summary)
			if _, err := p.writeOutput(base+".summary.md", []byte(md)); err != nil {
				p.logger.Warn(ctx, "Failed to write summary: %v", err)
			}
		}
	}

	// Step 4: DOCX, best effort
	if b, err := p.RenderDOCX(ctx, title, transcript, summary); err != nil {
		p.logger.Warn(ctx, "Failed to render DOCX for %s: %v", filename, err)
	} else if _, err := p.writeOutput(base+".docx", b); err != nil {
		p.logger.Warn(ctx, "Failed to write DOCX: %v", err)
	}

	// Step 5: Move original to archived folder
	if err := p.moveToArchived(ctx, mediaPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Transcript: %s", txtPath)
	p.logger.Info(ctx, "Report pages: %d", doc.Pages)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}
