package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"postmate/internal/domain"

	"golang.org/x/sync/errgroup"
)

// AnalysisServiceImpl runs extraction, then metrics and insights side by side.
type AnalysisServiceImpl struct {
	extractor domain.TextExtractor
	metrics   domain.MetricsEngine
	insights  domain.InsightGenerator
	logger    domain.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	extractor domain.TextExtractor,
	metrics domain.MetricsEngine,
	insights domain.InsightGenerator,
	logger domain.Logger,
) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{
		extractor: extractor,
		metrics:   metrics,
		insights:  insights,
		logger:    logger,
	}
}

// Analyze runs the pipeline for one upload.
//
// Errors: ErrUnsupportedType and *domain.ValidationError for bad uploads,
// ErrEmptyExtraction and ErrExtractionFailed from the extractor, the context
// error when the caller went away, and anything else for internal failures.
// A failed insight set is not an error; it is carried in the report.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, doc *domain.UploadedDocument) (*domain.AnalysisReport, error) {
	if doc == nil {
		return nil, &domain.ValidationError{Field: "file", Message: "no file uploaded"}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	extracted, err := s.extractor.Extract(ctx, doc.Bytes, doc.Kind)
	if err != nil {
		return nil, err
	}

	var (
		metrics  domain.Metrics
		insights domain.InsightSet
		g        errgroup.Group
	)
	g.Go(func() (err error) {
		defer recoverBranch("metrics", &err)
		metrics = s.metrics.Compute(extracted.Content)
		return nil
	})
	g.Go(func() (err error) {
		defer recoverBranch("insights", &err)
		insights = s.insights.Generate(ctx, extracted.Content)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Analysis branch failed", err, "filename", doc.OriginalFilename)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &domain.AnalysisReport{
		Filename:         doc.OriginalFilename,
		MIMEType:         doc.DeclaredMIMEType,
		SizeBytes:        int64(len(doc.Bytes)),
		ExtractedText:    extracted.Content,
		Metrics:          metrics,
		Insights:         insights,
		InsightSections:  ParseInsightSet(insights),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}
	if report.MIMEType == "" {
		report.MIMEType = doc.Kind.CanonicalMIMEType()
	}

	s.logger.Info("Analysis completed",
		"filename", doc.OriginalFilename,
		"kind", doc.Kind,
		"words", metrics.WordCount,
		"insights_ok", !insights.Failed(),
		"duration_ms", report.ProcessingTimeMs,
	)
	return report, nil
}

// ErrBranchPanic marks a panic recovered inside a concurrent branch.
var ErrBranchPanic = errors.New("analysis branch panicked")

func recoverBranch(name string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: %v", ErrBranchPanic, name, r)
	}
}
