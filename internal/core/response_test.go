package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skycheck/internal/types"
)

func testRequest(t *testing.T, method, body string) *http.Request {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, "/test", nil)
	} else {
		r = httptest.NewRequest(method, "/test", strings.NewReader(body))
	}
	return r.WithContext(types.WithRequestID(r.Context(), "req-123"))
}

func TestJSON_WritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, testRequest(t, http.MethodGet, ""), http.StatusOK, APIResponse{Data: map[string]string{"k": "v"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
}

func TestError_AppErrorMapsStatus(t *testing.T) {
	w := httptest.NewRecorder()
	appErr := types.NewAppErrorWithDetails(
		types.ErrCodeValidationInvalidLat,
		"latitude out of range",
		nil,
		map[string]any{"lat": 95.0},
	)
	Error(w, testRequest(t, http.MethodGet, ""), appErr)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp APIErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Code != "validation_invalid_latitude" {
		t.Errorf("Code = %q", resp.Error.Code)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want req-123", resp.Error.RequestID)
	}
	if resp.Error.Details["lat"] != 95.0 {
		t.Errorf("Details = %v", resp.Error.Details)
	}
}

func TestError_WrappedAppError(t *testing.T) {
	w := httptest.NewRecorder()
	inner := types.NewAppError(types.ErrCodeNotFoundSite, "no such site", nil)
	Error(w, testRequest(t, http.MethodGet, ""), errors.Join(errors.New("outer"), inner))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestError_GenericErrorDoesNotLeak(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, testRequest(t, http.MethodGet, ""), errors.New("pg: connection refused at 10.0.0.3"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.3") {
		t.Error("internal error details must not leak to clients")
	}

	var resp APIErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error.Code != string(types.ErrCodeInternalUnexpected) {
		t.Errorf("Code = %q", resp.Error.Code)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name":"ok"}`, false},
		{"empty body", ``, true},
		{"malformed", `{"name":`, true},
		{"unknown field", `{"name":"ok","extra":1}`, true},
		{"two values", `{"name":"a"}{"name":"b"}`, true},
		{"wrong type", `{"name":5}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := testRequest(t, http.MethodPost, tt.body)

			var dst payload
			err := DecodeJSON(w, r, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var appErr *types.AppError
				if !errors.As(err, &appErr) {
					t.Fatalf("got %T, want AppError", err)
				}
				if appErr.HTTPStatus() != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", appErr.HTTPStatus())
				}
			}
		})
	}
}
