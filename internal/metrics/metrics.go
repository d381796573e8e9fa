// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hitoshi/homecare/internal/model"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミドルウェアやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPRequest(method string, statusCode int)
	RecordHTTPDuration(duration time.Duration)
	RecordBookingCreated()
	RecordStatusTransition(from, to model.BookingStatus)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests      *prometheus.CounterVec
	httpDuration      prometheus.Histogram
	bookingsCreated   prometheus.Counter
	statusTransitions *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homecare_http_requests_total",
			Help: "HTTPメソッド・ステータスコード別のリクエスト数",
		}, []string{"method", "status_code"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "homecare_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homecare_bookings_created_total",
			Help: "作成された予約の合計数",
		}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homecare_booking_status_transitions_total",
			Help: "予約ステータス遷移の回数",
		}, []string{"from", "to"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.bookingsCreated,
		c.statusTransitions,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエストの完了を記録する。
func (c *Collector) RecordHTTPRequest(method string, statusCode int) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPDuration はHTTPリクエストの処理時間を記録する。
func (c *Collector) RecordHTTPDuration(duration time.Duration) {
	c.httpDuration.Observe(duration.Seconds())
}

// RecordBookingCreated は予約の作成を記録する。
func (c *Collector) RecordBookingCreated() {
	c.bookingsCreated.Inc()
}

// RecordStatusTransition は予約ステータスの遷移を記録する。
func (c *Collector) RecordStatusTransition(from, to model.BookingStatus) {
	c.statusTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
