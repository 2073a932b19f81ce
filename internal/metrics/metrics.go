// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する。
type Collector struct {
	subscribeTotal   *prometheus.CounterVec
	unsubscribeTotal prometheus.Counter
	httpStatus       *prometheus.CounterVec
	requestDuration  prometheus.Histogram
	activeSessions   prometheus.GaugeFunc
}

// SessionCounter はアクティブセッション数の取得に必要なインターフェース。
// session.Storeの部分集合として定義する。
type SessionCounter interface {
	Len() int
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer, sessions SessionCounter) *Collector {
	c := &Collector{
		subscribeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpage_subscribe_total",
			Help: "subscribe操作の結果種別ごとの合計数",
		}, []string{"outcome"}),
		unsubscribeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "launchpage_unsubscribe_total",
			Help: "購読解除の合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "launchpage_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "launchpage_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		activeSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "launchpage_admin_sessions_active",
			Help: "現在有効な管理者セッション数",
		}, func() float64 {
			return float64(sessions.Len())
		}),
	}

	reg.MustRegister(
		c.subscribeTotal,
		c.unsubscribeTotal,
		c.httpStatus,
		c.requestDuration,
		c.activeSessions,
	)

	return c
}

// RecordSubscribe はsubscribe操作の結果を記録する。
func (c *Collector) RecordSubscribe(outcome string) {
	c.subscribeTotal.WithLabelValues(outcome).Inc()
}

// RecordUnsubscribe は購読解除を記録する。
func (c *Collector) RecordUnsubscribe() {
	c.unsubscribeTotal.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestDuration はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestDuration(duration time.Duration) {
	c.requestDuration.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
