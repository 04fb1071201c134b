// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestDuration(duration time.Duration)
	RecordStatusUpdate(status string)
	RecordInterviewRoundsUpdate()
	RecordLogin(success bool)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus       *prometheus.CounterVec
	requestDuration  prometheus.Histogram
	statusUpdates    *prometheus.CounterVec
	roundsUpdates    prometheus.Counter
	logins           *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireman_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hireman_request_duration_seconds",
			Help:    "HTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireman_status_updates_total",
			Help: "応募ステータス更新の合計数（更新後ステータス別）",
		}, []string{"status"}),
		roundsUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hireman_interview_rounds_updates_total",
			Help: "面接ラウンド数更新の合計数",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hireman_logins_total",
			Help: "ログイン試行の合計数（成否別）",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestDuration,
		c.statusUpdates,
		c.roundsUpdates,
		c.logins,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理時間を記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// RecordStatusUpdate は応募ステータス更新を更新後ステータス別に記録する。
func (c *Collector) RecordStatusUpdate(status string) {
	c.statusUpdates.WithLabelValues(status).Inc()
}

// RecordInterviewRoundsUpdate は面接ラウンド数の更新を記録する。
func (c *Collector) RecordInterviewRoundsUpdate() {
	c.roundsUpdates.Inc()
}

// RecordLogin はログイン試行の成否を記録する。
func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
