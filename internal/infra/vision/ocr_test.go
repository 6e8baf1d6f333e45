package vision

import (
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
)

func TestTextFromResponse(t *testing.T) {
	tests := []struct {
		name    string
		resp    *visionpb.BatchAnnotateImagesResponse
		want    string
		wantErr bool
	}{
		{name: "nil", resp: nil, wantErr: true},
		{name: "no responses", resp: &visionpb.BatchAnnotateImagesResponse{}, wantErr: true},
		{
			name: "full text annotation",
			resp: &visionpb.BatchAnnotateImagesResponse{Responses: []*visionpb.AnnotateImageResponse{{
				FullTextAnnotation: &visionpb.TextAnnotation{Text: "Big launch today\n#news"},
			}}},
			want: "Big launch today\n#news",
		},
		{
			name: "text annotations fallback",
			resp: &visionpb.BatchAnnotateImagesResponse{Responses: []*visionpb.AnnotateImageResponse{{
				TextAnnotations: []*visionpb.EntityAnnotation{{Description: "whole block"}, {Description: "whole"}},
			}}},
			want: "whole block",
		},
		{
			name: "nothing found",
			resp: &visionpb.BatchAnnotateImagesResponse{Responses: []*visionpb.AnnotateImageResponse{{}}},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textFromResponse(tt.resp)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
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

func TestLanguageHints(t *testing.T) {
	tests := map[string][]string{
		"eng":   {"en"},
		" DEU ": {"de"},
		"ja":    {"ja"},
		"":      nil,
	}
	for in, want := range tests {
		got := languageHints(in)
		if len(got) != len(want) {
			t.Fatalf("languageHints(%q): expected %v, got %v", in, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("languageHints(%q): expected %v, got %v", in, want, got)
			}
		}
	}
}
