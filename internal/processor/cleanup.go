package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// writeOutput writes data into the output folder under name.
func (p *implProcessor) writeOutput(name string, data []byte) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(p.cfg.Paths.Output, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return path, nil
}

// moveToArchived moves a processed source file out of the input folder
func (p *implProcessor) moveToArchived(ctx context.Context, mediaPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(mediaPath))

	p.logger.Info(ctx, "Archiving source: %s -> %s", mediaPath, destPath)

	if err := os.Rename(mediaPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
