// Package vision implements domain.OCREngine on Google Cloud Vision.
package vision

import (
	"context"
	"errors"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// Engine wraps a single ImageAnnotatorClient shared by all requests.
type Engine struct {
	client *vision.ImageAnnotatorClient
}

// NewEngine creates a Vision OCR engine. Without options the client uses
// Application Default Credentials.
func NewEngine(ctx context.Context, opts ...option.ClientOption) (*Engine, error) {
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &Engine{client: client}, nil
}

// Recognize runs document text detection on one image.
func (e *Engine) Recognize(ctx context.Context, image []byte, language string) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{
					LanguageHints: languageHints(language),
				},
			},
		},
	}

	resp, err := e.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API call failed: %w", err)
	}
	return textFromResponse(resp)
}

// Close releases the client connection.
func (e *Engine) Close() error {
	return e.client.Close()
}

func textFromResponse(resp *visionpb.BatchAnnotateImagesResponse) (string, error) {
	if resp == nil || len(resp.Responses) == 0 {
		return "", errors.New("no response from Vision API")
	}
	r := resp.Responses[0]
	if r.Error != nil && r.Error.Message != "" {
		return "", fmt.Errorf("vision API error: %s", r.Error.Message)
	}
	if r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "" {
		return r.FullTextAnnotation.Text, nil
	}
	// TEXT_DETECTION style responses put the whole block in the first annotation.
	if len(r.TextAnnotations) > 0 {
		return r.TextAnnotations[0].Description, nil
	}
	return "", nil
}

// tesseractToBCP47 maps the three-letter codes used in configuration to the
// hints Vision understands.
var tesseractToBCP47 = map[string]string{
	"eng": "en",
	"deu": "de",
	"fra": "fr",
	"spa": "es",
	"ita": "it",
	"por": "pt",
	"nld": "nl",
}

func languageHints(language string) []string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return nil
	}
	if code, ok := tesseractToBCP47[language]; ok {
		return []string{code}
	}
	return []string{language}
}
