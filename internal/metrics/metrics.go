package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_tracker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_tracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_tracker_http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_tracker_store_operation_duration_seconds",
			Help:    "Duration of storage operations",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"backend", "operation"},
	)

	CalendarRangeDays = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "worker_tracker_calendar_range_days",
			Help:    "Number of days in aggregated calendar ranges",
			Buckets: []float64{1, 7, 31, 92, 183, 366},
		},
	)

	TaskCompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_tracker_task_completions_total",
			Help: "Completion transitions by task type",
		},
		[]string{"task_type"},
	)

	RemindersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_tracker_reminders_created_total",
			Help: "Notification records created by the reminder worker",
		},
	)
)

// TrackStoreOperation: defer metrics.TrackStoreOperation("postgres", "create_task").ObserveDuration()
func TrackStoreOperation(backend, operation string) *prometheus.Timer {
	return prometheus.NewTimer(StoreOperationDuration.WithLabelValues(backend, operation))
}

func TrackCompletion(taskType string) {
	TaskCompletionsTotal.WithLabelValues(taskType).Inc()
}
