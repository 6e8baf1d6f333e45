package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"postmate/internal/domain"
)

// TextExtractorService routes an upload to the PDF reader or the OCR engine.
type TextExtractorService struct {
	pdf         domain.PDFTextReader
	ocr         domain.OCREngine
	ocrLanguage string
	logger      domain.Logger
}

// NewTextExtractor creates a new extractor. ocrLanguage is passed verbatim to
// the OCR engine for every image.
func NewTextExtractor(pdf domain.PDFTextReader, ocr domain.OCREngine, ocrLanguage string, logger domain.Logger) *TextExtractorService {
	return &TextExtractorService{
		pdf:         pdf,
		ocr:         ocr,
		ocrLanguage: ocrLanguage,
		logger:      logger,
	}
}

// Extract returns the trimmed text of data. It fails with ErrUnsupportedType
// before touching a backend, with an ExtractionError when the backend fails,
// and with ErrEmptyExtraction when nothing but whitespace came back.
func (e *TextExtractorService) Extract(ctx context.Context, data []byte, kind domain.MediaKind) (*domain.ExtractedText, error) {
	if !kind.IsSupported() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		raw string
		err error
	)
	switch {
	case kind == domain.MediaKindPDF:
		if e.pdf == nil {
			return nil, &domain.ExtractionError{Kind: kind, Err: errors.New("pdf reader not configured")}
		}
		raw, err = e.pdf.ReadText(ctx, data)
	case kind.IsImage():
		if e.ocr == nil {
			return nil, &domain.ExtractionError{Kind: kind, Err: domain.ErrOCRUnavailable}
		}
		raw, err = e.ocr.Recognize(ctx, data, e.ocrLanguage)
	}
	if err != nil {
		// A cancelled request is not a backend failure.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		e.logger.Error("Text extraction failed", err, "kind", kind, "bytes", len(data))
		return nil, &domain.ExtractionError{Kind: kind, Err: err}
	}

	text := strings.TrimSpace(sanitizeText(raw))
	e.logger.Debug("Text extracted", "kind", kind, "chars", len(text), "duration_ms", time.Since(start).Milliseconds())
	if text == "" {
		return nil, domain.ErrEmptyExtraction
	}
	return &domain.ExtractedText{Content: text}, nil
}

// sanitizeText drops NUL and other C0 control characters that PDF text layers
// and OCR output sometimes carry. Tab, newline and carriage return are kept.
func sanitizeText(text string) string {
	if !strings.ContainsFunc(text, isStrayControl) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isStrayControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isStrayControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return r < 0x20 || r == 0x7F
}
