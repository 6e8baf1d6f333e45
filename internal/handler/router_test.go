package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouter(origins ...string) (http.Handler, *mockAnalysisService) {
	svc := &mockAnalysisService{}
	logger := NewMockHandlerLogger()
	return NewRouter(NewAnalyzeHandler(svc, 1<<20, logger), logger, origins), svc
}

func TestNewRouter_Health(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"ok":true}` {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestNewRouter_Analyze(t *testing.T) {
	router, svc := newTestRouter()

	body, ct := multipartBody(t, "post.png", "image/png", pngBytes)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if svc.calls != 1 {
		t.Fatalf("expected one analysis call, got %d", svc.calls)
	}
}

func TestNewRouter_NotFound(t *testing.T) {
	router, _ := newTestRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"error":"Not found"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/analyze", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rr.Code)
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router, svc := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code >= 300 {
		t.Fatalf("expected successful preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, http.MethodPost) {
		t.Fatalf("expected POST to be allowed, got %q", got)
	}
	if svc.calls != 0 {
		t.Fatalf("preflight must not reach the handler")
	}
}

func TestNewRouter_CORSRestrictedOrigins(t *testing.T) {
	router, _ := newTestRouter("https://app.example.com")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected allowed origin to be echoed, got %q", got)
	}
}
