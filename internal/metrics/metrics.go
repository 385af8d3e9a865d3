package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	DBQueryDuration   *prometheus.HistogramVec
	RosterReplaced    prometheus.Counter
	RosterSize        prometheus.Gauge
	NotificationsSent *prometheus.CounterVec
}

// NewMetrics registers every collector with reg. Tests pass a fresh
// prometheus.NewRegistry() so registrations never collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staff_dashboard_http_requests_total",
			Help: "Total HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staff_dashboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "staff_dashboard_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'get_employees', 'replace_employees', 'delete_employee'
		RosterReplaced: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "staff_dashboard_roster_replaced_total",
			Help: "Total times the employee collection was replaced.",
		}),
		RosterSize: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "staff_dashboard_roster_size",
			Help: "Number of employees after the last replace.",
		}),
		NotificationsSent: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "staff_dashboard_notifications_total",
			Help: "Roster notifications published to the queue.",
		}, []string{"status"}),
	}

	m.NotificationsSent.WithLabelValues("success")
	m.NotificationsSent.WithLabelValues("failure")

	return m
}
