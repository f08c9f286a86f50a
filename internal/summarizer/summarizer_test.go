package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/config"
	"github.com/nguyentantai21042004/meeting-summarizer/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SummarizationConfig
		wantErr bool
	}{
		{"openai", config.SummarizationConfig{Provider: "openai", APIKey: "k"}, false},
		{"default provider", config.SummarizationConfig{APIKey: "k"}, false},
		{"gemini", config.SummarizationConfig{Provider: "gemini", GeminiAPIKeys: []string{"k"}}, false},
		{"gemini without keys", config.SummarizationConfig{Provider: "gemini"}, true},
		{"unknown", config.SummarizationConfig{Provider: "other"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, logger.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOpenAISummarize(t *testing.T) {
	var req struct {
		Model       string  `json:"model"`
		Temperature float32 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":" - point one\n"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	s, err := New(config.SummarizationConfig{
		Provider:    "openai",
		APIKey:      "k",
		BaseURL:     srv.URL,
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.5,
	}, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	summary, err := s.Summarize(context.Background(), "we discussed the roadmap")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary != "- point one" {
		t.Errorf("Summarize() = %q", summary)
	}

	if req.Model != "llama-3.3-70b-versatile" || req.Temperature != 0.5 {
		t.Errorf("request model=%q temperature=%v", req.Model, req.Temperature)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[0].Content != systemPrompt {
		t.Fatalf("messages = %+v", req.Messages)
	}
	if !strings.HasSuffix(req.Messages[1].Content, "\n\nwe discussed the roadmap") {
		t.Errorf("user message = %q", req.Messages[1].Content)
	}
}

func TestOpenAISummarizeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"invalid api key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	s, _ := New(config.SummarizationConfig{APIKey: "bad", BaseURL: srv.URL, Model: "m"}, logger.NewNop())

	_, err := s.Summarize(context.Background(), "text")
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if se.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", se.StatusCode)
	}

	if _, err := s.Summarize(context.Background(), "  \n"); !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("blank transcript error = %v, want ErrEmptyTranscript", err)
	}
}

func geminiResponse(text string) string {
	return `{"candidates":[{"content":{"role":"model","parts":[{"text":"` + text + `"}]},"finishReason":"STOP"}]}`
}

func TestGeminiSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, geminiResponse("Gemini summary"))
	}))
	defer srv.Close()

	s, err := New(config.SummarizationConfig{
		Provider:      "gemini",
		GeminiAPIKeys: []string{"k1"},
		GeminiModel:   "gemini-2.5-flash",
		GeminiBaseURL: srv.URL,
	}, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	summary, err := s.Summarize(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary != "Gemini summary" {
		t.Errorf("Summarize() = %q", summary)
	}
}

func TestGeminiRotatesKeys(t *testing.T) {
	var limited atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("x-goog-api-key") == "k1" {
			limited.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
			io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
			return
		}
		io.WriteString(w, geminiResponse("from second key"))
	}))
	defer srv.Close()

	s, _ := New(config.SummarizationConfig{
		Provider:      "gemini",
		GeminiAPIKeys: []string{"k1", "k2"},
		GeminiModel:   "gemini-2.5-flash",
		GeminiBaseURL: srv.URL,
	}, logger.NewNop())

	summary, err := s.Summarize(context.Background(), "transcript")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary != "from second key" {
		t.Errorf("Summarize() = %q", summary)
	}
	if limited.Load() == 0 {
		t.Error("first key was never tried")
	}
	if idx, _ := s.(*geminiSummarizer).key(); idx != 1 {
		t.Errorf("current key = %d, want 1", idx)
	}
}

func TestRotateKeyWraps(t *testing.T) {
	s := &geminiSummarizer{apiKeys: []string{"a", "b", "c"}}
	for i := 0; i < 4; i++ {
		s.rotateKey()
	}
	if idx, key := s.key(); idx != 1 || key != "b" {
		t.Errorf("key() = %d %q, want 1 b", idx, key)
	}
}
