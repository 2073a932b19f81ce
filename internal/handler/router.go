package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/launchpage/internal/metrics"
	"github.com/hitoshi/launchpage/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionValidator  middleware.SessionValidator
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス
	MetricsRecorder  middleware.HTTPMetricsRecorder
	SubscribeMetrics SubscribeMetrics
	Gatherer         prometheus.Gatherer

	// サービス
	SubscriberService SubscriberServiceInterface
	AuthService       AuthServiceInterface
	ConfigService     ConfigServiceInterface
	AuthConfig        AuthHandlerConfig

	// ヘルスチェック
	HealthChecker Pinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → Metrics
//
// 公開APIにはIP単位の全般レート制限、/api/subscribeには専用レート制限を追加する。
// 管理ルートはセッションミドルウェアで保護する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.MetricsRecorder != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.MetricsRecorder))
	}

	subscriberHandler := NewSubscriberHandler(deps.SubscriberService, deps.SubscribeMetrics)
	adminHandler := NewAdminHandler(deps.SubscriberService)
	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	configHandler := NewConfigHandler(deps.ConfigService)
	healthHandler := NewHealthHandler(deps.HealthChecker)

	sessionMiddleware := middleware.NewSessionMiddleware(deps.SessionValidator)

	// --- 認証不要のルート ---
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 購読（subscribe専用のレート制限を追加）
		r.With(deps.RateLimiter.SubscribeMiddleware()).Post("/api/subscribe", subscriberHandler.Subscribe)
		r.Post("/api/check-email", subscriberHandler.CheckEmail)
		r.Post("/api/unsubscribe", subscriberHandler.Unsubscribe)

		// ログインとログアウト。ログアウトは冪等で、無効なトークンでも
		// Cookieをクリアして成功を返すため認証を要求しない。
		r.Post("/api/admin/login", authHandler.Login)
		r.Post("/api/admin/logout", authHandler.Logout)

		// 公開ページ向けサイト設定
		r.Get("/api/config", configHandler.GetConfig)
	})

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/admin/check-auth", authHandler.CheckAuth)

		// 購読者管理
		r.Route("/api/subscriptions", func(r chi.Router) {
			r.Get("/", adminHandler.ListSubscriptions)
			r.Post("/bulk-delete", adminHandler.BulkDelete)
			r.Delete("/{id}", adminHandler.DeleteSubscription)
		})

		// サイト設定の更新
		r.Post("/api/config/update-target-date", configHandler.UpdateTargetDate)
		r.Post("/api/config/update-project-name", configHandler.UpdateProjectName)
	})

	// ヘルスチェックとメトリクスはレート制限の対象外
	r.Get("/api/health", healthHandler.Health)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}
