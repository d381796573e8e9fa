package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/homecare/internal/stats"
)

// StatsSourceInterface は統計ハンドラーが必要とする集計インターフェース。
// キャッシュ層（cache.StatsCache）と直接集計（stats.Aggregator）のどちらも満たす。
type StatsSourceInterface interface {
	// Compute はダッシュボード統計を返す。
	Compute(ctx context.Context) (*stats.Summary, error)
}

// StatsHandler はダッシュボード統計のHTTPハンドラー。
type StatsHandler struct {
	source StatsSourceInterface
}

// NewStatsHandler はStatsHandlerを生成する。
func NewStatsHandler(source StatsSourceInterface) *StatsHandler {
	return &StatsHandler{
		source: source,
	}
}

// GetStats はダッシュボード統計を取得する。
// GET /api/dashboard/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	s, err := h.source.Compute(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toStatsResponse(s))
}
