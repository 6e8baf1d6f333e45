package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"postmate/internal/domain"
	"postmate/internal/infra/gcp"
	"postmate/internal/infra/gemini"
	"postmate/internal/infra/mistral"
	"postmate/internal/infra/openai"
	"postmate/internal/infra/pdftext"
	"postmate/internal/infra/vision"
	"postmate/internal/sentiment"
	"postmate/internal/service"
	"postmate/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	PDFReader domain.PDFTextReader
	OCREngine domain.OCREngine
	Generator domain.TextGenerator

	TextExtractor    domain.TextExtractor
	MetricsEngine    domain.MetricsEngine
	InsightGenerator domain.InsightGenerator
	AnalysisService  domain.AnalysisService

	closers []io.Closer
}

// ContainerOptions adjusts wiring for non-server entry points.
type ContainerOptions struct {
	// SkipInsights replaces the remote generator with a disabled one.
	SkipInsights bool
	// LogOutput defaults to stderr.
	LogOutput io.Writer
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context) *Container {
	return NewContainerWithOptions(ctx, NewConfig(), ContainerOptions{})
}

// NewContainerWithOptions wires every collaborator from cfg. Backends that
// cannot be built are logged and left unset: a missing OCR engine fails image
// extraction, a missing generator turns insights into a soft failure.
func NewContainerWithOptions(ctx context.Context, cfg domain.Config, opts ContainerOptions) *Container {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}
	appLogger := logger.New(logger.Options{
		Level:  cfg.GetLogLevel(),
		Format: cfg.GetLogFormat(),
		Output: out,
	})

	c := &Container{
		Config: cfg,
		Logger: appLogger,
	}

	c.PDFReader = newPDFReader(cfg, appLogger)

	ocr, err := c.newOCREngine(ctx)
	if err != nil {
		appLogger.Warn("OCR engine unavailable; image uploads will fail", "provider", cfg.GetOCRProvider(), "error", err)
	} else {
		c.OCREngine = ocr
	}

	var insights domain.InsightGenerator
	if opts.SkipInsights {
		insights = service.DisabledInsightGenerator{}
	} else {
		gen, err := c.newTextGenerator(ctx)
		if err != nil {
			appLogger.Warn("Text generator unavailable; insights will report an error", "provider", cfg.GetLLMProvider(), "error", err)
		} else {
			c.Generator = gen
		}
		insights = service.NewInsightGenerator(c.Generator, appLogger)
	}

	c.TextExtractor = service.NewTextExtractor(c.PDFReader, c.OCREngine, cfg.GetOCRLanguage(), appLogger)
	lexicon := sentiment.MustNew()
	appLogger.Debug("Sentiment lexicon loaded", "entries", lexicon.Size())
	c.MetricsEngine = service.NewMetricsEngine(lexicon)
	c.InsightGenerator = insights
	c.AnalysisService = service.NewAnalysisService(c.TextExtractor, c.MetricsEngine, c.InsightGenerator, appLogger)

	return c
}

func newPDFReader(cfg domain.Config, log domain.Logger) domain.PDFTextReader {
	switch cfg.GetPDFBackend() {
	case "native":
		return pdftext.NewNativeReader(log)
	case "fitz", "":
		return pdftext.NewFitzReader(log)
	default:
		log.Warn("Unknown PDF backend; using fitz", "backend", cfg.GetPDFBackend())
		return pdftext.NewFitzReader(log)
	}
}

func (c *Container) newOCREngine(ctx context.Context) (domain.OCREngine, error) {
	switch c.Config.GetOCRProvider() {
	case "mistral":
		return mistral.NewEngine(c.Config.GetMistralAPIKey(), c.Config.GetMistralOCRModel(), "")
	case "vision", "":
		opts, err := gcp.ClientOptions(ctx, c.Config.GetGoogleCredentialsJSON())
		if err != nil {
			return nil, err
		}
		engine, err := vision.NewEngine(ctx, opts...)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, engine)
		return engine, nil
	case "none":
		return nil, domain.ErrOCRUnavailable
	default:
		return nil, fmt.Errorf("unknown OCR provider %q", c.Config.GetOCRProvider())
	}
}

func (c *Container) newTextGenerator(ctx context.Context) (domain.TextGenerator, error) {
	switch c.Config.GetLLMProvider() {
	case "openai":
		gen, err := openai.NewGenerator(c.Config.GetOpenAIAPIKey(), c.Config.GetOpenAIBaseURL(), c.Config.GetOpenAIModel())
		if err != nil {
			return nil, err
		}
		c.Logger.Info("OpenAI generator ready", "model", gen.Model())
		return gen, nil
	case "vertex", "gemini", "":
		credentials := c.Config.GetGoogleCredentialsJSON()
		projectID, err := gcp.ResolveProjectID(ctx, c.Config.GetGCPProjectID(), credentials)
		if err != nil {
			return nil, err
		}
		opts, err := gcp.ClientOptions(ctx, credentials)
		if err != nil {
			return nil, err
		}
		gen, err := gemini.NewGenerator(ctx, projectID, c.Config.GetGCPLocation(), c.Config.GetGeminiModel(), opts...)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, gen)
		c.Logger.Info("Vertex AI generator ready", "project", projectID, "location", c.Config.GetGCPLocation(), "model", gen.Model())
		return gen, nil
	case "none":
		return nil, domain.ErrGeneratorUnavailable
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", c.Config.GetLLMProvider())
	}
}

// Close releases remote clients.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}
