// Package config はアプリケーション設定の読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ストレージバックエンドの種別
const (
	StorageBackendMemory   = "memory"
	StorageBackendPostgres = "postgres"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Storage
	StorageBackend string // memory または postgres
	DatabaseURL    string // postgresの場合のみ必須

	// Redis（未設定の場合は統計キャッシュを無効化）
	RedisAddr     string
	StatsCacheTTL time.Duration

	// Rate Limit
	RateLimitGeneral int // API全般（req/min/IP）
	RateLimitWrite   int // 書き込み系（req/min/IP）

	// Booking
	BookingTransitionMode string // strict または permissive

	// Seed
	SeedOnStartup bool

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// STORAGE_BACKEND=postgresの場合はDATABASE_URLが必須となる。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.StorageBackend = getEnvString("STORAGE_BACKEND", StorageBackendMemory)
	if cfg.StorageBackend != StorageBackendMemory && cfg.StorageBackend != StorageBackendPostgres {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q (must be %q or %q)",
			cfg.StorageBackend, StorageBackendMemory, StorageBackendPostgres)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.StorageBackend == StorageBackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: [DATABASE_URL]")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.StatsCacheTTL = getEnvDuration("STATS_CACHE_TTL", 30*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitWrite = getEnvInt("RATE_LIMIT_WRITE", 30)
	cfg.BookingTransitionMode = getEnvString("BOOKING_TRANSITION_MODE", "strict")
	cfg.SeedOnStartup = getEnvBool("SEED_ON_STARTUP", true)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:5173")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
