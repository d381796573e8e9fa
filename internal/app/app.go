// Package app はアプリケーションの起動と依存関係のワイヤリングを提供する。
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/homecare/internal/booking"
	"github.com/hitoshi/homecare/internal/cache"
	"github.com/hitoshi/homecare/internal/catalog"
	"github.com/hitoshi/homecare/internal/config"
	"github.com/hitoshi/homecare/internal/database"
	"github.com/hitoshi/homecare/internal/handler"
	"github.com/hitoshi/homecare/internal/logger"
	"github.com/hitoshi/homecare/internal/metrics"
	"github.com/hitoshi/homecare/internal/middleware"
	"github.com/hitoshi/homecare/internal/review"
	"github.com/hitoshi/homecare/internal/security"
	"github.com/hitoshi/homecare/internal/seed"
	"github.com/hitoshi/homecare/internal/stats"
	"github.com/hitoshi/homecare/internal/storage"
	"github.com/hitoshi/homecare/internal/user"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	case CommandSeed:
		return runSeed(cfg)
	default:
		return runServe(cfg)
	}
}

// openStore は設定に応じたストレージバックエンドを初期化する。
// postgresの場合は疎通確認済みの*sql.DBを併せて返す（memoryの場合はnil）。
func openStore(cfg *config.Config) (storage.Store, *sql.DB, error) {
	if cfg.StorageBackend == config.StorageBackendMemory {
		slog.Info("using in-memory storage")
		return storage.NewMemoryStore(), nil, nil
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")
	return storage.NewPostgresStore(db), db, nil
}

// runServe はAPIサーバーモードで起動する。
// ストレージを初期化し、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. ストレージの初期化
	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// 2. 初期データの投入
	if cfg.SeedOnStartup {
		if err := seed.Seed(context.Background(), store); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	// 3. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 4. ドメインサービスの初期化
	sanitizer := security.NewTextSanitizer()
	mode := booking.ParseTransitionMode(cfg.BookingTransitionMode)

	userService := user.NewService(store, sanitizer)
	catalogService := catalog.NewService(store)
	bookingService := booking.NewService(store, sanitizer, mode, collector)
	reviewService := review.NewService(store, sanitizer)

	// 5. 統計集計の初期化（Redisが設定されていればリードスルーキャッシュを挟む）
	var statsSource handler.StatsSourceInterface = stats.NewAggregator(store)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewClient(context.Background(), cfg.RedisAddr)
		if err != nil {
			slog.Warn("Redisに接続できないため統計キャッシュを無効化します",
				slog.String("addr", cfg.RedisAddr),
				slog.String("error", err.Error()),
			)
		} else {
			defer redisClient.Close()
			statsSource = cache.NewStatsCache(statsSource, redisClient, cfg.StatsCacheTTL)
			slog.Info("stats cache enabled",
				slog.String("addr", cfg.RedisAddr),
				slog.Duration("ttl", cfg.StatsCacheTTL),
			)
		}
	}

	// 6. レート制限の初期化（configはreq/min単位、rate.Limitはreq/sec単位）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.WriteRate = rate.Limit(float64(cfg.RateLimitWrite) / 60.0)
	rateLimiterCfg.WriteBurst = cfg.RateLimitWrite
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 7. ルーターの構築
	deps := &handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		HTTPMetrics:       collector,

		UserService:    userService,
		CatalogService: catalogService,
		BookingService: bookingService,
		ReviewService:  reviewService,
		StatsSource:    statsSource,

		MetricsHandler: metrics.Handler(registry),
	}
	if db != nil {
		deps.DB = db
	}

	router := handler.NewRouter(deps)

	// 8. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required for migrate")
	}

	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runSeed は初期データの投入のみを実行して終了する。
func runSeed(cfg *config.Config) error {
	store, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	if err := seed.Seed(context.Background(), store); err != nil {
		return fmt.Errorf("failed to seed data: %w", err)
	}
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
