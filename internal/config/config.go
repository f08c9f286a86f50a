package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/meeting-summarizer/internal/report"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Summarization SummarizationConfig `yaml:"summarization"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Media         MediaConfig         `yaml:"media"`
	Paths         PathsConfig         `yaml:"paths"`
	Report        ReportConfig        `yaml:"report"`
	Storage       StorageConfig       `yaml:"storage"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RateLimit      int      `yaml:"rate_limit_per_minute"`
	SessionTTL     string   `yaml:"session_ttl"`
}

// TranscriptionConfig targets any OpenAI-compatible speech-to-text API.
type TranscriptionConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Language    string  `yaml:"language"`
	Temperature float32 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`
}

type SummarizationConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Provider      string   `yaml:"provider"` // openai | gemini
	APIKey        string   `yaml:"api_key"`
	BaseURL       string   `yaml:"base_url"`
	Model         string   `yaml:"model"`
	Temperature   float32  `yaml:"temperature"`
	GeminiAPIKeys []string `yaml:"gemini_api_keys"`
	GeminiModel   string   `yaml:"gemini_model"`
	GeminiBaseURL string   `yaml:"gemini_base_url"`
	Timeout       string   `yaml:"timeout"`
}

type FFmpegConfig struct {
	BinaryPath  string `yaml:"binary_path"`
	ProbePath   string `yaml:"probe_path"`
	AudioFormat string `yaml:"audio_format"` // mp3 | wav
	SampleRate  int    `yaml:"sample_rate"`
}

type MediaConfig struct {
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type ReportConfig struct {
	Title        string  `yaml:"title"`
	Subtitle     string  `yaml:"subtitle"`
	Filename     string  `yaml:"filename"`
	WrapWidth    int     `yaml:"wrap_width"`
	LineHeight   float64 `yaml:"line_height"`
	BottomMargin float64 `yaml:"bottom_margin"`
	LeftMargin   float64 `yaml:"left_margin"`
	BodyFontSize float64 `yaml:"body_font_size"`
	Compress     *bool   `yaml:"compress"`
}

// StorageConfig enables archiving rendered reports to S3-compatible storage.
type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Secure    bool   `yaml:"secure"`
	Prefix    string `yaml:"prefix"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads the YAML file at path, overlays secrets from the environment
// (and a .env file, if present) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	_ = godotenv.Load()
	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv copies secrets and deployment overrides from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	key := getenv("GROQ_API_KEY")
	if key == "" {
		key = getenv("OPENAI_API_KEY")
	}
	if key != "" {
		if c.Transcription.APIKey == "" {
			c.Transcription.APIKey = key
		}
		if c.Summarization.APIKey == "" {
			c.Summarization.APIKey = key
		}
	}

	if v := getenv("GEMINI_API_KEYS"); v != "" {
		c.Summarization.GeminiAPIKeys = splitList(v)
	}

	if v := getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}

	overrides := map[string]*string{
		"S3_ENDPOINT":   &c.Storage.Endpoint,
		"S3_ACCESS_KEY": &c.Storage.AccessKey,
		"S3_SECRET_KEY": &c.Storage.SecretKey,
		"S3_BUCKET":     &c.Storage.Bucket,
		"S3_REGION":     &c.Storage.Region,
	}
	for name, dst := range overrides {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}
}

func (c *Config) Validate() error {
	if c.Transcription.APIKey == "" {
		return fmt.Errorf("transcription.api_key is required (or set GROQ_API_KEY)")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Summarization.Provider == "" {
		c.Summarization.Provider = "openai"
	}
	if c.Summarization.APIKey == "" {
		c.Summarization.APIKey = c.Transcription.APIKey
	}
	switch c.Summarization.Provider {
	case "openai":
		if c.Summarization.Enabled && c.Summarization.APIKey == "" {
			return fmt.Errorf("summarization.api_key is required for provider openai")
		}
	case "gemini":
		if c.Summarization.Enabled && len(c.Summarization.GeminiAPIKeys) == 0 {
			return fmt.Errorf("summarization.gemini_api_keys is required for provider gemini (or set GEMINI_API_KEYS)")
		}
	default:
		return fmt.Errorf("summarization.provider %q is not supported", c.Summarization.Provider)
	}

	if c.Storage.Enabled && (c.Storage.Endpoint == "" || c.Storage.Bucket == "") {
		return fmt.Errorf("storage.endpoint and storage.bucket are required when storage is enabled")
	}

	if err := c.Report.RenderConfig().Geometry.Validate(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	c.setDefaults()
	return nil
}

// RenderConfig maps the report section onto renderer settings. Zero fields
// keep the renderer defaults.
func (r ReportConfig) RenderConfig() report.Config {
	c := report.DefaultConfig()
	if r.WrapWidth > 0 {
		c.Geometry.WrapWidth = r.WrapWidth
	}
	if r.LineHeight > 0 {
		c.Geometry.LineHeight = r.LineHeight
	}
	if r.BottomMargin > 0 {
		c.Geometry.BottomMargin = r.BottomMargin
	}
	if r.LeftMargin > 0 {
		c.Geometry.LeftMargin = r.LeftMargin
	}
	if r.BodyFontSize > 0 {
		c.BodyFont.Size = r.BodyFontSize
	}
	if r.Compress != nil {
		c.Compress = *r.Compress
	}
	return c
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = 200 << 20
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 30
	}
	if c.Server.SessionTTL == "" {
		c.Server.SessionTTL = "2h"
	}

	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "whisper-large-v3"
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "en"
	}
	if c.Transcription.Timeout == "" {
		c.Transcription.Timeout = "10m"
	}

	if c.Summarization.BaseURL == "" {
		c.Summarization.BaseURL = c.Transcription.BaseURL
	}
	if c.Summarization.Model == "" {
		c.Summarization.Model = "llama-3.3-70b-versatile"
	}
	if c.Summarization.Temperature == 0 {
		c.Summarization.Temperature = 0.5
	}
	if c.Summarization.GeminiModel == "" {
		c.Summarization.GeminiModel = "gemini-2.5-flash"
	}
	if c.Summarization.Timeout == "" {
		c.Summarization.Timeout = "2m"
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.AudioFormat == "" {
		c.FFmpeg.AudioFormat = "mp3"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}

	if len(c.Media.AllowedExtensions) == 0 {
		c.Media.AllowedExtensions = []string{"wav", "mp3", "mp4", "m4a", "ogg", "webm", "mov", "mkv"}
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = os.TempDir()
	}

	if c.Report.Subtitle == "" {
		c.Report.Subtitle = "Transcription Report"
	}
	if c.Report.Filename == "" {
		c.Report.Filename = "transcription_report.pdf"
	}

	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "reports"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
