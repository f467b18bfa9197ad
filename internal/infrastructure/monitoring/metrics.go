package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartAddsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_adds_total",
			Help: "Total number of add-to-cart operations",
		},
		[]string{"result"},
	)

	CartUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_updates_total",
			Help: "Total number of cart quantity updates",
		},
	)

	CartRemovalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_removals_total",
			Help: "Total number of cart line removals",
		},
	)

	CartFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_failures_total",
			Help: "Total number of failed cart operations",
		},
		[]string{"operation"},
	)

	CartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_items",
			Help: "Current number of items in the cart",
		},
	)

	CartSubtotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_subtotal",
			Help: "Current cart subtotal",
		},
	)

	NotificationsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_published_total",
			Help: "Total number of published cart notifications",
		},
		[]string{"kind"},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)
)

func RecordCartAdd(merged bool) {
	result := "added"
	if merged {
		result = "merged"
	}
	CartAddsTotal.WithLabelValues(result).Inc()
}

func RecordCartUpdate() {
	CartUpdatesTotal.Inc()
}

func RecordCartRemoval() {
	CartRemovalsTotal.Inc()
}

func RecordCartFailure(operation string) {
	CartFailuresTotal.WithLabelValues(operation).Inc()
}

func UpdateCartGauges(items int, subtotal float64) {
	CartItems.Set(float64(items))
	CartSubtotal.Set(subtotal)
}

func RecordNotification(kind string) {
	NotificationsPublishedTotal.WithLabelValues(kind).Inc()
}

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		DBQueryDuration.WithLabelValues(queryType, table).Observe(time.Since(start).Seconds())
	}
}
