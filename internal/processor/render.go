package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/report"
)

const (
	pdfContentType  = "application/pdf"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

func (p *implProcessor) RenderPDF(ctx context.Context, name, title, transcript string) (*report.Document, error) {
	if title == "" {
		title = p.cfg.Report.Title
	}

	doc, err := p.renderer.RenderDocument(transcript, title, p.cfg.Report.Subtitle)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	for _, w := range doc.Warnings {
		p.logger.Warn(ctx, "Report layout: %v", w)
	}
	p.logger.Info(ctx, "Rendered %s: %d page(s)", name, doc.Pages)

	p.archive(ctx, name, doc.Bytes, pdfContentType)
	return doc, nil
}

func (p *implProcessor) RenderDOCX(ctx context.Context, title, transcript, summary string) ([]byte, error) {
	if title == "" {
		title = p.cfg.Report.Title
	}
	b, err := report.RenderDOCX(title, p.cfg.Report.Subtitle, transcript, summary)
	if err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return b, nil
}

// archive stores a copy of a rendered report. Failures are logged only.
func (p *implProcessor) archive(ctx context.Context, name string, data []byte, contentType string) {
	url, err := p.archiver.Archive(ctx, name, data, contentType)
	if err != nil {
		p.logger.Warn(ctx, "Failed to archive %s: %v", name, err)
		return
	}
	if url != "" {
		p.logger.Info(ctx, "Archived %s: %s", name, url)
	}
}
