// Package metrics provides Prometheus metrics for the reminder service.
// HTTP metrics:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//
// Monitor metrics:
//   - monitor_ticks_total, notifications_emitted_total{kind}
//   - push_dispatch_total{provider,result}, board_active_notifications
//
// All metrics are registered with the Prometheus default registry
// during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen in last ~5 minutes)",
		},
	)

	MonitorTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "monitor_ticks_total",
			Help: "Schedule monitor ticks executed",
		},
	)

	NotificationsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Notifications emitted by the schedule monitor",
		},
		[]string{"kind"},
	)

	PushDispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_dispatch_total",
			Help: "Push notification attempts by provider and result",
		},
		[]string{"provider", "result"},
	)

	BoardActiveNotifications = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_active_notifications",
			Help: "Notifications currently shown on the board",
		},
	)

	DatasetReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reloads_total",
			Help: "Dataset loads by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(MonitorTicksTotal)
	prometheus.MustRegister(NotificationsEmittedTotal)
	prometheus.MustRegister(PushDispatchTotal)
	prometheus.MustRegister(BoardActiveNotifications)
	prometheus.MustRegister(DatasetReloadsTotal)
}
