package delivery

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/processor"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/session"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/transcriber"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var (
		unsupported *media.UnsupportedMediaError
		trErr       *transcriber.ServiceError
		sumErr      *summarizer.ServiceError
	)
	switch {
	case errors.Is(err, media.ErrUnsupportedExtension), errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, summarizer.ErrEmptyTranscript):
		return http.StatusConflict
	case errors.Is(err, processor.ErrSummarizationDisabled):
		return http.StatusNotImplemented
	case errors.As(err, &trErr), errors.As(err, &sumErr):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		h.log.Warn(r.Context(), "%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeError(w, status, err.Error())
}
