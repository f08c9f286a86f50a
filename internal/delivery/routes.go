package delivery

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
)

//go:embed static/index.html
var indexHTML []byte

// NewRouter builds the web tool's HTTP handler.
func NewRouter(h *Handler, cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	RegisterRoutes(r, h, cfg.RateLimit)
	return r
}

// RegisterRoutes mounts the transcription API under /api. A positive
// perMinute limits requests per client IP.
func RegisterRoutes(r chi.Router, h *Handler, perMinute int) {
	r.Route("/api", func(api chi.Router) {
		if perMinute > 0 {
			api.Use(httprate.LimitByIP(perMinute, time.Minute))
		}

		api.Post("/transcriptions", h.CreateTranscription)
		api.Get("/transcriptions/{id}", h.GetTranscription)
		api.Post("/transcriptions/{id}/summary", h.CreateSummary)
		api.Get("/transcriptions/{id}/report.pdf", h.DownloadPDF)
		api.Get("/transcriptions/{id}/report.docx", h.DownloadDOCX)
	})
}
