// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hitoshi/launchpage/internal/model"
)

const (
	// SessionCookieName はセッショントークンを保持するHttpOnly Cookieの名前。
	SessionCookieName = "sessionId"
	// SessionHeaderName はCookieを使えないクライアント向けのヘッダーフォールバック。
	SessionHeaderName = "X-Session-Id"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// adminUserContextKey はリクエストコンテキストに管理者を格納するためのキー。
var adminUserContextKey = contextKey("admin_user")

// SessionValidator はセッショントークンの検証に必要なインターフェース。
// session.Storeの部分集合として定義する。
type SessionValidator interface {
	Validate(token string) (model.AdminUser, error)
}

// SessionTokenFromRequest はリクエストからセッショントークンを取り出す。
// Cookieを優先し、なければX-Session-Idヘッダーを参照する。
func SessionTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.Header.Get(SessionHeaderName)
}

// NewSessionMiddleware はセッショントークンを検証するミドルウェアを返す。
// 検証に成功した管理者をリクエストコンテキストに注入する。
// トークンが無い・無効・期限切れのリクエストには401を返す
// （期限切れエントリはストア側で検証時に削除される）。
func NewSessionMiddleware(validator SessionValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionTokenFromRequest(r)
			if token == "" {
				writeUnauthorized(w, model.NewUnauthorizedError())
				return
			}

			user, err := validator.Validate(token)
			if err != nil {
				apiErr, ok := err.(*model.APIError)
				if !ok {
					apiErr = model.NewUnauthorizedError()
				}
				writeUnauthorized(w, apiErr)
				return
			}

			ctx := context.WithValue(r.Context(), adminUserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminUserFromContext はリクエストコンテキストから管理者を取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func AdminUserFromContext(ctx context.Context) (model.AdminUser, error) {
	user, ok := ctx.Value(adminUserContextKey).(model.AdminUser)
	if !ok || user.Username == "" {
		return model.AdminUser{}, fmt.Errorf("admin user not found in context")
	}
	return user, nil
}

// ContextWithAdminUser はコンテキストに管理者を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithAdminUser(ctx context.Context, user model.AdminUser) context.Context {
	return context.WithValue(ctx, adminUserContextKey, user)
}

// writeUnauthorized は401レスポンスを統一フォーマットで書き込む。
func writeUnauthorized(w http.ResponseWriter, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"code":    apiErr.Code,
		"message": apiErr.Message,
	})
}
