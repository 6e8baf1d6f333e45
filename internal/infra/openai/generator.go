// Package openai implements domain.TextGenerator on any OpenAI-compatible
// chat completions endpoint (OpenAI, OpenRouter, local gateways).
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
)

// Generator holds one API client; go-openai clients are safe for concurrent use.
type Generator struct {
	client      *goopenai.Client
	model       string
	temperature float32
}

// NewGenerator creates a generator. An empty baseURL targets api.openai.com.
func NewGenerator(apiKey, baseURL, model string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("openai: api key is required")
	}
	if model == "" {
		model = goopenai.GPT4oMini
	}
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Generator{
		client:      goopenai.NewClientWithConfig(cfg),
		model:       model,
		temperature: 0.7,
	}, nil
}

// Generate sends prompt as a single user message.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []goopenai.ChatCompletionMessage{
			{
				Role:    goopenai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices from model")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty response from model")
	}
	return content, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}
