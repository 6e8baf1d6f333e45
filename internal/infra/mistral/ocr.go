// Package mistral implements domain.OCREngine on the Mistral OCR API.
package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultEndpoint = "https://api.mistral.ai/v1/ocr"
	DefaultModel    = "mistral-ocr-latest"
)

// imageRefs matches the placeholders Mistral emits for embedded images.
var imageRefs = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

type ocrPage struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

type ocrResponse struct {
	Pages []ocrPage `json:"pages"`
}

// Engine calls the OCR endpoint with the image inlined as a data URL.
// The API detects language itself; the language argument is ignored.
type Engine struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewEngine creates a Mistral OCR engine. An empty endpoint uses DefaultEndpoint.
func NewEngine(apiKey, model, endpoint string) (*Engine, error) {
	if apiKey == "" {
		return nil, errors.New("missing MISTRAL_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Engine{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Recognize returns the markdown of every page joined by blank lines.
func (e *Engine) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	dataURL := "data:" + http.DetectContentType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)
	body := map[string]any{
		"model": e.model,
		"document": map[string]any{
			"type":      "image_url",
			"image_url": dataURL,
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mistral ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return "", fmt.Errorf("mistral ocr error %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	var parsed ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode mistral ocr response: %w", err)
	}

	parts := make([]string, 0, len(parsed.Pages))
	for _, p := range parsed.Pages {
		if text := strings.TrimSpace(imageRefs.ReplaceAllString(p.Markdown, "")); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}
