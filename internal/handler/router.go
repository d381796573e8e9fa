package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/homecare/internal/middleware"
)

// Pinger はヘルスチェックで疎通確認する対象を表す。
// インメモリストレージの場合はnilを許容する。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	HTTPMetrics       middleware.HTTPMetricsRecorder

	// ドメインサービス
	UserService    UserServiceInterface
	CatalogService CatalogServiceInterface
	BookingService BookingServiceInterface
	ReviewService  ReviewServiceInterface
	StatsSource    StatsSourceInterface

	// 運用エンドポイント
	DB             Pinger       // ヘルスチェック対象。nilの場合はDB確認をスキップ
	MetricsHandler http.Handler // /metrics。nilの場合はルートを登録しない
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging → RateLimit(General)
//
// 運用エンドポイント（/health、/metrics）はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.HTTPMetrics))

	userHandler := NewUserHandler(deps.UserService)
	serviceHandler := NewServiceHandler(deps.CatalogService)
	bookingHandler := NewBookingHandler(deps.BookingService)
	reviewHandler := NewReviewHandler(deps.ReviewService)
	statsHandler := NewStatsHandler(deps.StatsSource)

	// --- 運用エンドポイント ---

	r.Get("/health", healthHandler(deps.DB))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- APIルート ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// ユーザー管理
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", userHandler.ListUsers)
			r.Get("/me", userHandler.Me)
			r.Patch("/{id}", userHandler.UpdateUser)
		})

		// サービスカタログ
		r.Get("/api/services", serviceHandler.ListServices)

		// 予約管理
		r.Route("/api/bookings", func(r chi.Router) {
			r.Get("/", bookingHandler.ListBookings)
			// POST /api/bookings - 予約作成（書き込み専用レート制限を追加）
			r.With(deps.RateLimiter.WriteMiddleware()).Post("/", bookingHandler.CreateBooking)
			r.Patch("/{id}", bookingHandler.UpdateBooking)
		})

		// レビュー管理
		r.Route("/api/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.ListReviews)
			r.With(deps.RateLimiter.WriteMiddleware()).Post("/", reviewHandler.CreateReview)
		})

		// ダッシュボード統計
		r.Get("/api/dashboard/stats", statsHandler.GetStats)
	})

	return r
}

// healthHandler はヘルスチェックのHTTPハンドラーを返す。
// dbがnilでない場合はDBへの疎通を確認し、失敗時は503を返す。
func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				slog.Error("health check failed", slog.String("error", err.Error()))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
