package handler

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "postmate/pkg/errors"
)

type contextKey string

const requestIDContextKey contextKey = "request_id"

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RequestIDFromContext returns the id assigned by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

func writeErrorWithDetails(w http.ResponseWriter, statusCode int, message, details string) {
	writeJSON(w, statusCode, errorResponse{Error: message, Details: details})
}

func writeAppError(w http.ResponseWriter, err *apperrors.AppError) {
	writeErrorWithDetails(w, err.StatusCode, err.Message, err.Details)
}
