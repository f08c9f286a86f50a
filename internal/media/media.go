package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is the declared media type of an upload.
type Kind string

const (
	KindUnknown Kind = ""
	KindAudio   Kind = "audio"
	KindVideo   Kind = "video"
)

var ErrUnsupportedExtension = errors.New("media: unsupported file extension")

// UnsupportedMediaError is returned for files that carry no usable audio.
type UnsupportedMediaError struct {
	Path   string
	Reason string
	Err    error
}

func (e *UnsupportedMediaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsupported media %s: %s: %v", filepath.Base(e.Path), e.Reason, e.Err)
	}
	return fmt.Sprintf("unsupported media %s: %s", filepath.Base(e.Path), e.Reason)
}

func (e *UnsupportedMediaError) Unwrap() error {
	return e.Err
}

var videoExtensions = map[string]bool{
	"mp4": true, "mov": true, "mkv": true, "avi": true, "webm": true, "m4v": true, "flv": true,
}

var audioExtensions = map[string]bool{
	"wav": true, "mp3": true, "m4a": true, "ogg": true, "oga": true, "flac": true, "aac": true, "opus": true,
}

// KindFromMIME maps a Content-Type such as "video/mp4" to a Kind.
func KindFromMIME(mime string) Kind {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch {
	case strings.HasPrefix(mime, "audio/"):
		return KindAudio
	case strings.HasPrefix(mime, "video/"):
		return KindVideo
	}
	return KindUnknown
}

// KindFromExtension guesses a Kind from a file extension, with or without
// the leading dot.
func KindFromExtension(ext string) Kind {
	ext = NormalizeExtension(ext)
	switch {
	case videoExtensions[ext]:
		return KindVideo
	case audioExtensions[ext]:
		return KindAudio
	}
	return KindUnknown
}

func NormalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
