// Package pdftext implements domain.PDFTextReader on MuPDF (go-fitz) and on a
// pure-Go reader (ledongthuc/pdf).
package pdftext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"postmate/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// DefaultPageTimeout bounds how long MuPDF may spend on a single page.
const DefaultPageTimeout = 30 * time.Second

// FitzReader extracts page text with MuPDF.
type FitzReader struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewFitzReader creates a MuPDF backed reader.
func NewFitzReader(logger domain.Logger) *FitzReader {
	return &FitzReader{
		logger:      logger,
		pageTimeout: DefaultPageTimeout,
	}
}

// ReadText returns the text of every page in order, pages separated by a
// blank line. Pages that fail or time out are skipped with a warning.
func (r *FitzReader) ReadText(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	type pageResult struct {
		text string
		err  error
	}

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		timer := time.NewTimer(r.pageTimeout)
		var res pageResult
		select {
		case res = <-resultCh:
			timer.Stop()
		case <-timer.C:
			res.err = fmt.Errorf("timeout after %v", r.pageTimeout)
		case <-ctx.Done():
			timer.Stop()
			<-resultCh // doc.Close must not race the page worker
			return "", ctx.Err()
		}

		if res.err != nil {
			r.logger.Warn("Failed to extract text from page", "page", pageNum+1, "total", numPages, "error", res.err)
			continue
		}
		if text := strings.TrimSpace(res.text); text != "" {
			pages = append(pages, text)
		}
	}

	r.logger.Debug("PDF text extracted", "backend", "fitz", "pages", numPages, "pages_with_text", len(pages))
	return strings.Join(pages, "\n\n"), nil
}
