package media

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	"github.com/nguyentantai21042004/meeting-summarizer/pkg/executor"
)

// Extractor pulls the audio track out of video files with ffmpeg.
type Extractor struct {
	exec   executor.Executor
	cfg    config.FFmpegConfig
	outDir string
	logger logger.Logger
}

func NewExtractor(exec executor.Executor, cfg config.FFmpegConfig, log logger.Logger) *Extractor {
	return &Extractor{exec: exec, cfg: cfg, logger: log}
}

// WithOutputDir makes ExtractAudio write into dir instead of next to the
// video. Watched input folders need this.
func (e *Extractor) WithOutputDir(dir string) *Extractor {
	e.outDir = dir
	return e
}

// HasAudio reports whether the file has at least one audio stream.
func (e *Extractor) HasAudio(ctx context.Context, path string) (bool, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		path,
	}
	out, err := e.exec.Execute(ctx, e.cfg.ProbePath, args...)
	if err != nil {
		var cmdErr *executor.CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode() > 0 {
			return false, &UnsupportedMediaError{Path: path, Reason: "unreadable media", Err: err}
		}
		return false, fmt.Errorf("ffprobe: %w", err)
	}
	return strings.Contains(out, "audio"), nil
}

// ExtractAudio writes the audio track of videoPath next to it, or into the
// output dir if one is set, and returns the new path. The caller owns the
// returned file.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	ok, err := e.HasAudio(ctx, videoPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &UnsupportedMediaError{Path: videoPath, Reason: "no audio track"}
	}

	format := e.cfg.AudioFormat
	audioPath := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "_audio." + format
	if e.outDir != "" {
		audioPath = filepath.Join(e.outDir, filepath.Base(audioPath))
	}

	// ffmpeg runs in the output directory, so paths must not be relative
	// to ours.
	in, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", videoPath, err)
	}
	out, err := filepath.Abs(audioPath)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", audioPath, err)
	}

	e.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// Mono, resampled; the upload limit of the speech API is tight.
	args := []string{
		"-i", in,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(e.cfg.SampleRate),
	}
	switch format {
	case "wav":
		args = append(args, "-c:a", "pcm_s16le")
	default:
		args = append(args, "-c:a", "libmp3lame", "-b:a", "64k")
	}
	args = append(args, "-threads", "0", "-y", out)

	if _, err := e.exec.ExecuteInDir(ctx, filepath.Dir(out), e.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	e.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
