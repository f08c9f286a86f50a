package processor

import (
	"context"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/report"
)

// Processor runs the transcription pipeline for the web tool and the
// watch-folder mode.
type Processor interface {
	// Transcribe extracts audio from video uploads and returns the transcript.
	Transcribe(ctx context.Context, up *media.Upload, language string) (string, error)
	Summarize(ctx context.Context, transcript string) (string, error)
	// RenderPDF renders the transcript report and archives a copy under name.
	RenderPDF(ctx context.Context, name, title, transcript string) (*report.Document, error)
	RenderDOCX(ctx context.Context, title, transcript, summary string) ([]byte, error)
	// Process handles one file dropped into the input folder end to end.
	Process(ctx context.Context, mediaPath string) error
}

// AudioExtractor pulls the audio track out of a video file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
}
