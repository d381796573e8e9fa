// Package cache はRedisを使った読み取りキャッシュを提供する。
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hitoshi/homecare/internal/stats"
)

// statsKey は統計スナップショットのキャッシュキー。
const statsKey = "homecare:stats"

// StatsSource は統計を算出できるものを表す。
type StatsSource interface {
	Compute(ctx context.Context) (*stats.Summary, error)
}

// StatsCache は統計集計の結果をRedisにキャッシュするリードスルー層。
// Redisが利用できない場合は集計に直接フォールバックする。
type StatsCache struct {
	source StatsSource
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache はStatsCacheの新しいインスタンスを生成する。
func NewStatsCache(source StatsSource, client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

// Compute はキャッシュ済みの統計を返す。キャッシュミス時は集計して保存する。
func (c *StatsCache) Compute(ctx context.Context) (*stats.Summary, error) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err == nil {
		var s stats.Summary
		if err := json.Unmarshal(raw, &s); err == nil {
			return &s, nil
		}
		// 壊れたエントリは捨てて集計し直す
		slog.Warn("キャッシュエントリの解析に失敗しました", "key", statsKey)
	} else if err != redis.Nil {
		slog.Warn("Redisからの取得に失敗しました", "key", statsKey, "error", err)
	}

	s, err := c.source.Compute(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(s); err == nil {
		if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
			slog.Warn("Redisへの保存に失敗しました", "key", statsKey, "error", err)
		}
	}
	return s, nil
}

// NewClient はRedisクライアントを生成し、疎通を確認する。
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
