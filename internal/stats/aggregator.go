// Package stats はダッシュボード向けの統計集計を提供する。
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/hitoshi/homecare/internal/model"
	"github.com/hitoshi/homecare/internal/storage"
)

// trendDays はトレンドに含める日数（今日を含む直近7日）。
const trendDays = 7

// defaultSatisfaction は顧客満足度の固定値。
// レビュー集計が十分に溜まるまでの暫定値として返す。
const defaultSatisfaction = 4.8

// TrendPoint は1日あたりの予約件数。
type TrendPoint struct {
	Date  string
	Count int
}

// CategoryStat はサービスカテゴリ別の予約件数。
type CategoryStat struct {
	Category string
	Count    int
}

// Summary はダッシュボードに表示する統計のスナップショット。
type Summary struct {
	TotalBookings     int
	ActiveBookings    int
	CompletedBookings int
	Revenue           int64
	ActiveProviders   int
	Satisfaction      float64
	BookingsTrend     []TrendPoint
	CategoryStats     []CategoryStat
}

// Aggregator は予約・ユーザー・サービスのデータから統計を算出する。
type Aggregator struct {
	store storage.Store
	now   func() time.Time
}

// NewAggregator はAggregatorの新しいインスタンスを生成する。
func NewAggregator(store storage.Store) *Aggregator {
	return &Aggregator{
		store: store,
		now:   time.Now,
	}
}

// Compute は現在のデータから統計を集計して返す。
// 収益は支払状況に関わらず全予約のtotalPriceの合計とする。
func (a *Aggregator) Compute(ctx context.Context) (*Summary, error) {
	bookings, err := a.store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	providers, err := a.store.ListUsersByRole(ctx, model.RoleProvider)
	if err != nil {
		return nil, err
	}
	services, err := a.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		ActiveProviders: len(providers),
		Satisfaction:    defaultSatisfaction,
	}
	for _, b := range bookings {
		s.TotalBookings++
		s.Revenue += b.TotalPrice
		if b.IsActive() {
			s.ActiveBookings++
		}
		if b.Status == model.BookingStatusCompleted {
			s.CompletedBookings++
		}
	}
	s.BookingsTrend = a.computeTrend(bookings)
	s.CategoryStats = computeCategoryStats(bookings, services)
	return s, nil
}

// computeTrend は今日を含む直近7日間の日別予約件数を返す。
// 予約のscheduledDateをカレンダー日付で集計する。
func (a *Aggregator) computeTrend(bookings []*model.Booking) []TrendPoint {
	today := a.now()
	counts := make(map[string]int, trendDays)
	trend := make([]TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		counts[date] = 0
		trend = append(trend, TrendPoint{Date: date})
	}
	for _, b := range bookings {
		date := b.ScheduledDate.Format("2006-01-02")
		if _, ok := counts[date]; ok {
			counts[date]++
		}
	}
	for i := range trend {
		trend[i].Count = counts[trend[i].Date]
	}
	return trend
}

// computeCategoryStats はサービスカテゴリ別の予約件数を返す。
// カテゴリが解決できない予約（サービスが見つからない場合）は除外する。
func computeCategoryStats(bookings []*model.Booking, services []*model.Service) []CategoryStat {
	categoryByService := make(map[int64]string, len(services))
	for _, svc := range services {
		categoryByService[svc.ID] = svc.Category
	}

	counts := make(map[string]int)
	for _, b := range bookings {
		category, ok := categoryByService[b.ServiceID]
		if !ok {
			continue
		}
		counts[category]++
	}

	stats := make([]CategoryStat, 0, len(counts))
	for category, count := range counts {
		stats = append(stats, CategoryStat{Category: category, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}
