package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrUnsupportedType      = errors.New("unsupported media type")
	ErrExtractionFailed     = errors.New("text extraction failed")
	ErrEmptyExtraction      = errors.New("no text extracted")
	ErrInsightGeneration    = errors.New("insight generation failed")
	ErrGeneratorUnavailable = errors.New("text generator not configured")
	ErrOCRUnavailable       = errors.New("ocr engine not configured")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// ExtractionError wraps a backend failure for a given media kind.
// errors.Is(err, ErrExtractionFailed) holds for every ExtractionError.
type ExtractionError struct {
	Kind MediaKind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrExtractionFailed, e.Err}
}
