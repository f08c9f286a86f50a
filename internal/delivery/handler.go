package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/media"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/processor"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/session"
)

// multipart parts above this size spill to disk
const maxMemory = 32 << 20

type Handler struct {
	proc     processor.Processor
	ingester *media.Ingester
	store    *session.Store
	server   config.ServerConfig
	report   config.ReportConfig
	log      logger.Logger
}

func NewHandler(proc processor.Processor, ingester *media.Ingester, store *session.Store, cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{
		proc:     proc,
		ingester: ingester,
		store:    store,
		server:   cfg.Server,
		report:   cfg.Report,
		log:      log,
	}
}

type summaryResponse struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// CreateTranscription accepts a multipart upload in field "file", transcribes
// it and stores the result for the follow-up summary and report calls.
func (h *Handler) CreateTranscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.server.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.server.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	up, err := h.ingester.Ingest(file, media.KindFromMIME(header.Header.Get("Content-Type")), ext)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer func() {
		if err := up.Cleanup(); err != nil {
			h.log.Warn(ctx, "Failed to remove upload: %v", err)
		}
	}()

	language := strings.TrimSpace(r.FormValue("language"))
	text, err := h.proc.Transcribe(ctx, up, language)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	t := h.store.Create(header.Filename, language, text)
	h.log.Info(ctx, "Stored transcript %s for %s", t.ID, header.Filename)
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) GetTranscription(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	t, ok := h.transcript(w, r, "Please transcribe the audio/video first.")
	if !ok {
		return
	}

	summary, err := h.proc.Summarize(r.Context(), t.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.store.SetSummary(t.ID, summary); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{ID: t.ID, Summary: summary})
}

// DownloadPDF streams the paginated transcript report.
func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	t, ok := h.transcript(w, r, "No transcription available. Please transcribe first.")
	if !ok {
		return
	}

	filename := downloadName(r.URL.Query().Get("filename"), h.report.Filename, ".pdf")
	doc, err := h.proc.RenderPDF(r.Context(), t.ID+"_"+filename, h.title(t), t.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAttachment(w, filename, "application/pdf", doc.Bytes)
}

func (h *Handler) DownloadDOCX(w http.ResponseWriter, r *http.Request) {
	t, ok := h.transcript(w, r, "No transcription available. Please transcribe first.")
	if !ok {
		return
	}

	def := strings.TrimSuffix(h.report.Filename, filepath.Ext(h.report.Filename)) + ".docx"
	filename := downloadName(r.URL.Query().Get("filename"), def, ".docx")
	b, err := h.proc.RenderDOCX(r.Context(), h.title(t), t.Text, t.Summary)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAttachment(w, filename, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", b)
}

// transcript loads the transcript named in the URL and rejects blank ones
// with msg.
func (h *Handler) transcript(w http.ResponseWriter, r *http.Request, msg string) (session.Transcript, bool) {
	t, err := h.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return t, false
	}
	if strings.TrimSpace(t.Text) == "" {
		writeError(w, http.StatusConflict, msg)
		return t, false
	}
	return t, true
}

func (h *Handler) title(t session.Transcript) string {
	if h.report.Title != "" {
		return h.report.Title
	}
	return strings.TrimSuffix(t.Filename, filepath.Ext(t.Filename))
}

// downloadName sanitizes a user supplied file name and forces ext.
func downloadName(name, def, ext string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		name = def
	}
	if name == "" {
		name = "transcription_report" + ext
	}
	if !strings.EqualFold(filepath.Ext(name), ext) {
		name += ext
	}
	return name
}
