package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// CORSヘッダーが設定オリジンで付与されることを検証
func TestCORSMiddleware_Headers(t *testing.T) {
	handler := NewCORSMiddleware("https://example.com")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("Allow-Origin = %q, want %q", got, "https://example.com")
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q, want %q", got, "true")
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-Session-Id" {
		t.Errorf("Allow-Headers = %q, want %q", got, "Content-Type, X-Session-Id")
	}
}

// OPTIONSプリフライトが204で短絡し、次ハンドラーへ到達しないことを検証
func TestCORSMiddleware_Preflight(t *testing.T) {
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})
	handler := NewCORSMiddleware("https://example.com")(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/subscribe", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if reached {
		t.Error("next handler should not be reached for preflight")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods header on preflight response")
	}
}
