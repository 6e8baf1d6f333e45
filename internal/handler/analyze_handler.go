package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"postmate/internal/domain"
	apperrors "postmate/pkg/errors"
)

const (
	// multipartOverhead leaves room for boundaries and part headers on top
	// of the file itself.
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
)

const (
	msgNoFile        = "No file uploaded. Please upload PDF, JPG, or PNG."
	msgUnsupported   = "File type not supported. Please upload PDF, JPG, or PNG."
	msgEmptyText     = "No text extracted. Try clearer image or selectable PDF."
	msgProcessing    = "Processing failed"
	msgInvalidUpload = "Invalid upload"
)

// AnalyzeHandler serves POST /api/analyze.
type AnalyzeHandler struct {
	analysisService domain.AnalysisService
	maxFileSize     int64
	logger          domain.Logger
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysisService domain.AnalysisService, maxFileSize int64, logger domain.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// Analyze reads the "file" part, checks it against the allow-list and runs
// the analysis pipeline.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(h.logger, r)
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeAppError(w, h.tooLarge())
		case errors.Is(err, http.ErrNotMultipart):
			writeError(w, http.StatusBadRequest, msgNoFile)
		default:
			writeErrorWithDetails(w, http.StatusBadRequest, msgInvalidUpload, err.Error())
		}
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgNoFile)
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeAppError(w, h.tooLarge())
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		writeErrorWithDetails(w, http.StatusBadRequest, msgInvalidUpload, err.Error())
		return
	}
	if int64(len(data)) > h.maxFileSize {
		writeAppError(w, h.tooLarge())
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "Uploaded file is empty.")
		return
	}

	declared := header.Header.Get("Content-Type")
	kind, ok := domain.ParseMediaKind(declared)
	if !ok {
		log.Warn("Rejected upload with unsupported type", "mimetype", declared, "accepted", domain.SupportedMIMETypes())
		writeAppError(w, apperrors.NewUnsupportedTypeError(msgUnsupported, domain.ErrUnsupportedType))
		return
	}
	if sniffed := domain.SniffMediaKind(data); sniffed != kind {
		log.Warn("Rejected upload whose content does not match its type", "mimetype", declared, "sniffed", string(sniffed))
		writeAppError(w, apperrors.NewUnsupportedTypeError(msgUnsupported, domain.ErrUnsupportedType))
		return
	}

	doc := &domain.UploadedDocument{
		Bytes:            data,
		Kind:             kind,
		DeclaredMIMEType: declared,
		OriginalFilename: sanitizeFilename(header.Filename),
		SizeBytes:        int64(len(data)),
	}

	report, err := h.analysisService.Analyze(r.Context(), doc)
	if err != nil {
		appErr := toAppError(err)
		status := apperrors.GetStatusCode(appErr)
		if apperrors.IsType(appErr, apperrors.ErrorTypeInternal) {
			log.Error("Analysis failed", err, "filename", doc.OriginalFilename, "status", status)
		} else {
			log.Warn("Analysis failed", "filename", doc.OriginalFilename, "status", status, "error", err)
		}
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// fieldLogger is implemented by loggers that can bind fields to every line.
type fieldLogger interface {
	With(fields ...interface{}) domain.Logger
}

// requestLogger binds the request id to base when the logger supports it.
func requestLogger(base domain.Logger, r *http.Request) domain.Logger {
	id := RequestIDFromContext(r.Context())
	if fl, ok := base.(fieldLogger); ok && id != "" {
		return fl.With("request_id", id)
	}
	return base
}

func (h *AnalyzeHandler) tooLarge() *apperrors.AppError {
	return apperrors.NewTooLargeError(fmt.Sprintf("File too large. Maximum size is %s.", formatBytes(h.maxFileSize)))
}

// toAppError maps pipeline errors onto HTTP responses.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validation *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return apperrors.NewUnsupportedTypeError(msgUnsupported, err)
	case errors.As(err, &validation):
		return apperrors.NewValidationError(msgInvalidUpload, validation.Error())
	case errors.Is(err, domain.ErrEmptyExtraction):
		return apperrors.NewProcessingError(msgEmptyText, err)
	default:
		// extraction failures, cancellation and recovered panics
		return apperrors.NewInternalError(msgProcessing, err)
	}
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	if name == "" || name == "." || name == "/" {
		return "upload"
	}
	return name
}

func formatBytes(n int64) string {
	const mb = 1 << 20
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
