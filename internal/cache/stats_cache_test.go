package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hitoshi/homecare/internal/stats"
)

// StatsCache自体もStatsSourceとして利用できる
var _ StatsSource = (*StatsCache)(nil)

type stubSource struct {
	summary *stats.Summary
	calls   int
}

func (s *stubSource) Compute(ctx context.Context) (*stats.Summary, error) {
	s.calls++
	return s.summary, nil
}

// Redisが利用できない場合でも集計にフォールバックすることを検証
func TestStatsCache_Compute_FallsBackWithoutRedis(t *testing.T) {
	source := &stubSource{summary: &stats.Summary{TotalBookings: 3, Revenue: 4500}}
	// 接続できないアドレスを指定してフォールバック経路を通す
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewStatsCache(source, client, time.Minute)

	s, err := c.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if s.TotalBookings != 3 || s.Revenue != 4500 {
		t.Errorf("summary = %+v, want TotalBookings=3 Revenue=4500", s)
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1", source.calls)
	}
}
