package gemini

import (
	"context"
	"strings"
	"testing"

	"cloud.google.com/go/vertexai/genai"
)

func TestTextFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr string
	}{
		{
			name:    "nil response",
			resp:    nil,
			wantErr: "empty response",
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: "empty response",
		},
		{
			name: "joined text parts",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{
						genai.Text("Narrative\n---\n"),
						genai.Text("1. **Tip**: post daily"),
					}},
					FinishReason: genai.FinishReasonStop,
				}},
			},
			want: "Narrative\n---\n1. **Tip**: post daily",
		},
		{
			name: "safety block",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
			wantErr: "safety",
		},
		{
			name: "no content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
			},
			wantErr: "empty response",
		},
		{
			name: "non-text parts only",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png", Data: []byte{1}}}},
				}},
			},
			wantErr: "no text parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textFromResponse(tt.resp)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewGenerator_RequiresProject(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "", "us-central1", ""); err == nil {
		t.Fatalf("expected error without project id")
	}
}
