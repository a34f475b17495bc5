package core

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skycheck/internal/config"

	"skycheck/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewServer(&config.Config{Environment: "local"}, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func TestRecoverer(t *testing.T) {
	s := testServer(t)

	handler := s.Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var resp APIErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("recoverer must write valid JSON: %v", err)
	}
	if resp.Error.Code != string(types.ErrCodeInternalUnexpected) {
		t.Errorf("Code = %q", resp.Error.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Error("panic value must not leak to clients")
	}
}

func TestRequestIDMiddleware_Generates(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("request ID must be generated when absent")
	}
	if got := w.Header().Get("X-Request-Id"); got != seen {
		t.Errorf("response header %q does not match context ID %q", got, seen)
	}
}

func TestRequestIDMiddleware_Propagates(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = types.GetRequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "caller-id")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if seen != "caller-id" {
		t.Errorf("request ID = %q, want caller-id", seen)
	}
}

func TestRequestIDMiddleware_EnrichesContextLogger(t *testing.T) {
	var buf strings.Builder
	base := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestIDMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		types.LoggerFromContext(r.Context()).Info("cache degraded")
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "caller-id")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	out := buf.String()
	if !strings.Contains(out, "request_id=caller-id") {
		t.Errorf("context logger must carry the request ID, got: %s", out)
	}
	if !strings.Contains(out, "cache degraded") {
		t.Errorf("log record lost: %s", out)
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	s := testServer(t)
	handler := s.SecurityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	handler := NewCORSMiddleware([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the next handler")
	}))

	r := httptest.NewRequest(http.MethodOptions, "/", nil)
	r.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing wildcard CORS origin")
	}
}

func TestCORSMiddleware_AllowedList(t *testing.T) {
	handler := NewCORSMiddleware([]string{"https://app.example.com"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if w.Header().Get("Vary") != "Origin" {
		t.Error("non-wildcard origins must set Vary: Origin")
	}

	// Unlisted origin gets no CORS headers.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unlisted origin must not receive CORS headers")
	}
}

func TestRequestLogger_Redaction(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger, []string{"Authorization"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	r := httptest.NewRequest(http.MethodGet, "/secret", nil)
	r.Header.Set("Authorization", "Bearer top-secret-token")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	out := buf.String()
	if strings.Contains(out, "top-secret-token") {
		t.Error("redacted header value leaked into the log")
	}
	if !strings.Contains(out, "REDACTED") {
		t.Error("redaction marker missing from log output")
	}
	if !strings.Contains(out, "status=418") {
		t.Errorf("status missing from log output: %s", out)
	}
}
