package mistral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestEngine_Recognize(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("missing bearer token")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pages":[
			{"index":0,"markdown":"# Launch\n![img-0.jpeg](img-0.jpeg)\nBig news"},
			{"index":1,"markdown":"  "},
			{"index":2,"markdown":"#growth"}
		]}`))
	}))
	defer srv.Close()

	engine, err := NewEngine("key", "", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := engine.Recognize(context.Background(), pngHeader, "eng")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "# Launch\n\nBig news\n\n#growth" {
		t.Fatalf("unexpected text %q", text)
	}

	if got["model"] != DefaultModel {
		t.Fatalf("expected default model, got %v", got["model"])
	}
	doc, _ := got["document"].(map[string]interface{})
	if doc["type"] != "image_url" {
		t.Fatalf("expected image_url document, got %v", doc["type"])
	}
	url, _ := doc["image_url"].(string)
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("expected png data url, got %.40s", url)
	}
}

func TestEngine_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"rate limit"}`))
	}))
	defer srv.Close()

	engine, _ := NewEngine("key", "m", srv.URL)
	_, err := engine.Recognize(context.Background(), pngHeader, "eng")
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
}

func TestNewEngine_RequiresKey(t *testing.T) {
	if _, err := NewEngine("", "", ""); err == nil {
		t.Fatalf("expected error without api key")
	}
}
