package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteData(rec, http.StatusOK, map[string]string{"userId": "user_1"}); err != nil {
		t.Fatalf("WriteData: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Error("success = false, want true")
	}
	if body.Data["userId"] != "user_1" {
		t.Errorf("data = %v", body.Data)
	}
}

func TestWriteErrorCode(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorCode(rec, http.StatusForbidden, CodeInsufficientPermissions, "Insufficient permissions")

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}

	var body ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Code != "INSUFFICIENT_PERMISSIONS" {
		t.Errorf("code = %q", body.Code)
	}
	if body.Error != "Insufficient permissions" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name       string
		write      func(http.ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{"auth required", WriteAuthRequired, http.StatusUnauthorized, "AUTH_REQUIRED"},
		{"missing auth", WriteMissingAuth, http.StatusUnauthorized, "MISSING_AUTH"},
		{"missing organization", WriteMissingOrganization, http.StatusForbidden, "MISSING_ORGANIZATION"},
		{"insufficient permissions", WriteInsufficientPermissions, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS"},
		{"middleware error", WriteMiddlewareError, http.StatusInternalServerError, "MIDDLEWARE_ERROR"},
		{"internal error", WriteInternalError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestMiddlewareErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMiddlewareError(rec)

	var body ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "Internal server error" {
		t.Errorf("error message leaks detail: %q", body.Error)
	}
}

func TestSetNoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	SetNoStore(rec)

	if got := rec.Header().Get("Cache-Control"); got != "private, no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
	if got := rec.Header().Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q", got)
	}
	if got := rec.Header().Get("Expires"); got != "0" {
		t.Errorf("Expires = %q", got)
	}
}
