package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/homecare/internal/stats"
)

// mockStatsSource はStatsSourceInterfaceのモック実装。
type mockStatsSource struct {
	computeFn func(ctx context.Context) (*stats.Summary, error)
}

func (m *mockStatsSource) Compute(ctx context.Context) (*stats.Summary, error) {
	if m.computeFn != nil {
		return m.computeFn(ctx)
	}
	return &stats.Summary{}, nil
}

func TestStatsHandler_GetStats_Success(t *testing.T) {
	src := &mockStatsSource{
		computeFn: func(ctx context.Context) (*stats.Summary, error) {
			return &stats.Summary{
				TotalBookings:     5,
				ActiveBookings:    3,
				CompletedBookings: 1,
				Revenue:           45000,
				ActiveProviders:   2,
				Satisfaction:      4.8,
				BookingsTrend:     []stats.TrendPoint{{Date: "2025-03-15", Count: 2}},
				CategoryStats:     []stats.CategoryStat{{Category: "Nursing", Count: 3}},
			}, nil
		},
	}
	h := NewStatsHandler(src)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	h.GetStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["totalBookings"] != float64(5) {
		t.Errorf("totalBookings = %v, want 5", body["totalBookings"])
	}
	if body["revenue"] != float64(45000) {
		t.Errorf("revenue = %v, want 45000", body["revenue"])
	}
	if body["satisfaction"] != 4.8 {
		t.Errorf("satisfaction = %v, want 4.8", body["satisfaction"])
	}
	trend, ok := body["bookingsTrend"].([]any)
	if !ok || len(trend) != 1 {
		t.Fatalf("bookingsTrend = %v", body["bookingsTrend"])
	}
	point := trend[0].(map[string]any)
	if point["date"] != "2025-03-15" || point["count"] != float64(2) {
		t.Errorf("trend point = %v", point)
	}
}

func TestStatsHandler_GetStats_SourceError(t *testing.T) {
	src := &mockStatsSource{
		computeFn: func(ctx context.Context) (*stats.Summary, error) {
			return nil, errors.New("store unavailable")
		},
	}
	h := NewStatsHandler(src)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	h.GetStats(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
