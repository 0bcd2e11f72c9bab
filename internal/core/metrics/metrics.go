package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DatabaseQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries executed",
		},
		[]string{"query_type", "success"},
	)

	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type"},
	)

	TransactionRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "database_transaction_retries_total",
			Help: "Transactions retried after a serialization failure or deadlock",
		},
	)

	TransactionConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "database_transaction_conflicts_total",
			Help: "Transactions abandoned after exhausting retries",
		},
	)

	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
	)

	BannerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banner_operations_total",
			Help: "Total number of banner ranking operations processed",
		},
		[]string{"operation", "success"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveQuery records the outcome and latency of one repository call.
func ObserveQuery(queryType string, start time.Time, err error) {
	DatabaseQueriesTotal.WithLabelValues(queryType, strconv.FormatBool(err == nil)).Inc()
	DatabaseQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// ObserveBannerOperation counts a ranking mutation.
func ObserveBannerOperation(operation string, err error) {
	BannerOperationsTotal.WithLabelValues(operation, strconv.FormatBool(err == nil)).Inc()
}
