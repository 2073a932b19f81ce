package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// テスト用の小さいバーストを持つ設定を返す。
func testRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(1.0 / 60.0),
		GeneralBurst:    3,
		SubscribeRate:   rate.Limit(1.0 / 60.0),
		SubscribeBurst:  2,
		CleanupInterval: time.Hour,
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// バースト超過で429が返り、Retry-Afterが設定されることを検証
func TestRateLimiter_GeneralMiddleware_Exceeded(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}
}

// 異なるIPのクライアントは独立してカウントされることを検証
func TestRateLimiter_PerClientIsolation(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	// 1つ目のIPをバースト上限まで使い切る
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// 別IPは制限されない
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d for a different client", rec.Code, http.StatusOK)
	}
	if n := rl.GeneralLimiterCount(); n != 2 {
		t.Errorf("GeneralLimiterCount() = %d, want 2", n)
	}
}

// subscribe専用の制限がAPI全般の制限と独立して動作することを検証
func TestRateLimiter_SubscribeIndependentOfGeneral(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig())
	defer rl.Stop()

	general := rl.GeneralMiddleware()(okHandler())
	subscribe := rl.SubscribeMiddleware()(okHandler())

	// subscribeのバースト(2)を使い切る
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		subscribe.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("subscribe %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	subscribe.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("subscribe status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// 同一IPでもAPI全般の方はまだ通る
	req = httptest.NewRequest(http.MethodGet, "/api/config", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec = httptest.NewRecorder()
	general.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("general status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// クライアントIPの解決ルールを検証
func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr only", "192.0.2.1:1234", "", "192.0.2.1"},
		{"forwarded single", "10.0.0.1:1234", "203.0.113.5", "203.0.113.5"},
		{"forwarded chain uses first", "10.0.0.1:1234", "203.0.113.5, 10.0.0.2, 10.0.0.1", "203.0.113.5"},
		{"forwarded with spaces", "10.0.0.1:1234", "  203.0.113.5  ", "203.0.113.5"},
		{"remote addr without port", "192.0.2.1", "", "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

// cleanupが古いエントリのみ削除することを検証
func TestRateLimiter_Cleanup(t *testing.T) {
	cfg := testRateLimiterConfig()
	cfg.CleanupInterval = 10 * time.Millisecond
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if n := rl.GeneralLimiterCount(); n != 1 {
		t.Fatalf("GeneralLimiterCount() = %d, want 1", n)
	}

	// lastAccessをTTL(2*CleanupInterval)より過去へずらす
	rl.generalMu.Lock()
	for _, cl := range rl.generalLimiters {
		cl.lastAccess = time.Now().Add(-time.Hour)
	}
	rl.generalMu.Unlock()

	rl.cleanup()

	if n := rl.GeneralLimiterCount(); n != 0 {
		t.Errorf("GeneralLimiterCount() after cleanup = %d, want 0", n)
	}
}
