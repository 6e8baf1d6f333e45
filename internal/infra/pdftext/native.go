package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"postmate/internal/domain"

	"github.com/ledongthuc/pdf"
)

// NativeReader extracts page text without cgo.
type NativeReader struct {
	logger domain.Logger
}

func NewNativeReader(logger domain.Logger) *NativeReader {
	return &NativeReader{logger: logger}
}

// ReadText mirrors FitzReader.ReadText. The parser panics on some malformed
// streams, so panics surface as errors.
func (r *NativeReader) ReadText(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, perr := page.GetPlainText(nil)
		if perr != nil {
			r.logger.Warn("Failed to extract text from page", "page", i, "total", numPages, "error", perr)
			continue
		}
		if t := strings.TrimSpace(content); t != "" {
			pages = append(pages, t)
		}
	}

	r.logger.Debug("PDF text extracted", "backend", "native", "pages", numPages, "pages_with_text", len(pages))
	return strings.Join(pages, "\n\n"), nil
}
