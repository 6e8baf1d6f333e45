// Package gemini implements domain.TextGenerator on Vertex AI Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.0-flash-001"

// Generator wraps one Vertex AI client and model handle. Both are built once
// and shared across requests; GenerateContent does not mutate the model.
type Generator struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGenerator creates a new Vertex AI backed generator
func NewGenerator(ctx context.Context, projectID, location, modelName string, opts ...option.ClientOption) (*Generator, error) {
	if projectID == "" {
		return nil, errors.New("gemini: project id is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	client, err := genai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex ai client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &Generator{
		client:    client,
		model:     model,
		modelName: modelName,
	}, nil
}

// Generate sends prompt as a single user turn and returns the text parts.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini call failed: %w", err)
	}
	return textFromResponse(resp)
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.modelName
}

// Close releases the underlying gRPC connection.
func (g *Generator) Close() error {
	return g.client.Close()
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from model")
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", errors.New("response blocked by safety filters")
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", errors.New("empty response from model")
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("model returned no text parts")
	}
	return sb.String(), nil
}
