package domain

import (
	"net/http"
	"path/filepath"
	"strings"
)

// MediaKind is the family of an uploaded file, derived from its declared MIME type.
type MediaKind string

const (
	MediaKindUnknown MediaKind = ""
	MediaKindPDF     MediaKind = "pdf"
	MediaKindPNG     MediaKind = "png"
	MediaKindJPEG    MediaKind = "jpeg"
)

// supportedMIMETypes is the upload allow-list. image/jpg is not a registered
// type but browsers and older clients still send it.
var supportedMIMETypes = map[string]MediaKind{
	"application/pdf": MediaKindPDF,
	"image/png":       MediaKindPNG,
	"image/jpeg":      MediaKindJPEG,
	"image/jpg":       MediaKindJPEG,
}

// ParseMediaKind maps a declared MIME type onto a MediaKind.
// Parameters (e.g. "; charset=binary") and case are ignored.
func ParseMediaKind(mimeType string) (MediaKind, bool) {
	base, _, _ := strings.Cut(mimeType, ";")
	kind, ok := supportedMIMETypes[strings.ToLower(strings.TrimSpace(base))]
	return kind, ok
}

// SupportedMIMETypes returns the accepted declared MIME types.
func SupportedMIMETypes() []string {
	return []string{"application/pdf", "image/png", "image/jpeg", "image/jpg"}
}

// SniffMediaKind returns the kind identified by the payload's leading bytes,
// or MediaKindUnknown.
func SniffMediaKind(data []byte) MediaKind {
	kind, _ := ParseMediaKind(http.DetectContentType(data))
	return kind
}

// MediaKindFromFilename guesses the kind from the file extension.
func MediaKindFromFilename(name string) MediaKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaKindPDF
	case ".png":
		return MediaKindPNG
	case ".jpg", ".jpeg":
		return MediaKindJPEG
	}
	return MediaKindUnknown
}

// IsSupported reports whether the kind is one the extractor can handle.
func (k MediaKind) IsSupported() bool {
	switch k {
	case MediaKindPDF, MediaKindPNG, MediaKindJPEG:
		return true
	}
	return false
}

// IsImage reports whether the kind goes through OCR.
func (k MediaKind) IsImage() bool {
	return k == MediaKindPNG || k == MediaKindJPEG
}

// CanonicalMIMEType returns the registered MIME type for the kind.
func (k MediaKind) CanonicalMIMEType() string {
	switch k {
	case MediaKindPDF:
		return "application/pdf"
	case MediaKindPNG:
		return "image/png"
	case MediaKindJPEG:
		return "image/jpeg"
	}
	return ""
}

// UploadedDocument is a single upload as received from the client.
// It lives for one request and is never persisted.
type UploadedDocument struct {
	Bytes            []byte
	Kind             MediaKind
	DeclaredMIMEType string
	OriginalFilename string
	SizeBytes        int64
}

// Validate checks the upload before any extraction work is attempted.
func (d *UploadedDocument) Validate() error {
	if d.OriginalFilename == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}
	if len(d.Bytes) == 0 {
		return &ValidationError{Field: "file", Message: "file is empty"}
	}
	if d.SizeBytes != 0 && d.SizeBytes != int64(len(d.Bytes)) {
		return &ValidationError{Field: "file", Message: "size does not match payload"}
	}
	if !d.Kind.IsSupported() {
		return ErrUnsupportedType
	}
	return nil
}

// ExtractedText is the trimmed, non-empty text pulled out of an upload.
type ExtractedText struct {
	Content string `json:"content"`
}
