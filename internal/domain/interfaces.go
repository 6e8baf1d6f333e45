package domain

import (
	"context"
	"time"
)

// PDFTextReader pulls embedded text out of a PDF.
type PDFTextReader interface {
	ReadText(ctx context.Context, data []byte) (string, error)
}

// OCREngine recognizes text in a raster image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte, language string) (string, error)
}

// SentimentScorer returns the lexicon valence sum of a text.
type SentimentScorer interface {
	Score(text string) int
}

// TextGenerator sends a single prompt to a language model.
// Implementations must be safe for concurrent use.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextExtractor turns upload bytes into trimmed text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, kind MediaKind) (*ExtractedText, error)
}

// MetricsEngine computes text statistics. It never fails.
type MetricsEngine interface {
	Compute(text string) Metrics
}

// InsightGenerator produces the three insight tiers.
// Failures are reported inside the returned set, not as an error.
type InsightGenerator interface {
	Generate(ctx context.Context, text string) InsightSet
}

// AnalysisService runs the full pipeline for one upload.
type AnalysisService interface {
	Analyze(ctx context.Context, doc *UploadedDocument) (*AnalysisReport, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetLogFormat() string
	GetAllowedOrigins() []string
	GetShutdownTimeout() time.Duration

	GetLLMProvider() string
	GetGCPProjectID() string
	GetGCPLocation() string
	GetGeminiModel() string
	GetGoogleCredentialsJSON() string
	GetOpenAIAPIKey() string
	GetOpenAIBaseURL() string
	GetOpenAIModel() string

	GetOCRProvider() string
	GetOCRLanguage() string
	GetMistralAPIKey() string
	GetMistralOCRModel() string
	GetPDFBackend() string
}
