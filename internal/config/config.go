package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"postmate/internal/domain"
)

const (
	DefaultServerPort  = "5000"
	DefaultMaxFileSize = 15 * 1024 * 1024
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort      string
	MaxFileSize     int64
	LogLevel        string
	LogFormat       string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	LLMProvider           string
	GCPProjectID          string
	GCPLocation           string
	GeminiModel           string
	GoogleCredentialsJSON string
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIModel           string

	OCRProvider     string
	OCRLanguage     string
	MistralAPIKey   string
	MistralOCRModel string
	PDFBackend      string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:      getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", DefaultServerPort)),
		MaxFileSize:     getEnvInt64OrDefault("MAX_FILE_SIZE", DefaultMaxFileSize),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", "console"),
		AllowedOrigins:  getEnvListOrDefault("ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),

		LLMProvider:           strings.ToLower(getEnvOrDefault("LLM_PROVIDER", "vertex")),
		GCPProjectID:          getEnvOrDefault("GCP_PROJECT_ID", ""),
		GCPLocation:           getEnvOrDefault("GCP_LOCATION", "us-central1"),
		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash-001"),
		GoogleCredentialsJSON: getEnvOrDefault("GOOGLE_CREDENTIALS", ""),
		OpenAIAPIKey:          getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:         getEnvOrDefault("OPENAI_BASE_URL", ""),
		OpenAIModel:           getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),

		OCRProvider:     strings.ToLower(getEnvOrDefault("OCR_PROVIDER", "vision")),
		OCRLanguage:     getEnvOrDefault("OCR_LANGUAGE", "eng"),
		MistralAPIKey:   getEnvOrDefault("MISTRAL_API_KEY", ""),
		MistralOCRModel: getEnvOrDefault("MISTRAL_OCR_MODEL", "mistral-ocr-latest"),
		PDFBackend:      strings.ToLower(getEnvOrDefault("PDF_BACKEND", "fitz")),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFormat returns console or json
func (c *AppConfig) GetLogFormat() string {
	return c.LogFormat
}

// GetAllowedOrigins returns the CORS allow-list
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

func (c *AppConfig) GetShutdownTimeout() time.Duration {
	return c.ShutdownTimeout
}

// GetLLMProvider returns vertex or openai
func (c *AppConfig) GetLLMProvider() string {
	return c.LLMProvider
}

func (c *AppConfig) GetGCPProjectID() string {
	return c.GCPProjectID
}

func (c *AppConfig) GetGCPLocation() string {
	return c.GCPLocation
}

func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

// GetGoogleCredentialsJSON returns inline service account JSON, if any
func (c *AppConfig) GetGoogleCredentialsJSON() string {
	return c.GoogleCredentialsJSON
}

func (c *AppConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

// GetOpenAIBaseURL returns an OpenAI-compatible endpoint (e.g. OpenRouter); empty means api.openai.com
func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

// GetOCRProvider returns vision or mistral
func (c *AppConfig) GetOCRProvider() string {
	return c.OCRProvider
}

// GetOCRLanguage returns the fixed OCR language code
func (c *AppConfig) GetOCRLanguage() string {
	return c.OCRLanguage
}

func (c *AppConfig) GetMistralAPIKey() string {
	return c.MistralAPIKey
}

func (c *AppConfig) GetMistralOCRModel() string {
	return c.MistralOCRModel
}

// GetPDFBackend returns fitz or native
func (c *AppConfig) GetPDFBackend() string {
	return c.PDFBackend
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
