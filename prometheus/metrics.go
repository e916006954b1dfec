package prometheus

import (
	"time"

	"github.com/RobertoSuarez97/almacenBackend/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Product pipeline metrics
	ProductOperationsCounter prometheus.CounterVec

	// Remote asset store metrics
	FtpUploadsTotal   prometheus.CounterVec
	FtpUploadDuration prometheus.Histogram

	// Checkout metrics
	PreferencesCreatedCounter prometheus.Counter
	WebhooksReceivedCounter   prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product write operations",
		},
		[]string{"operation", "outcome"},
	)

	FtpUploadsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_ftp_uploads_total",
			Help: "Total number of FTP upload attempts",
		},
		[]string{"outcome"},
	)

	FtpUploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_ftp_upload_duration_seconds",
			Help:    "Duration of FTP uploads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PreferencesCreatedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_checkout_preferences_total",
			Help: "Total number of payment preferences created",
		},
	)

	WebhooksReceivedCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_checkout_webhooks_total",
			Help: "Total number of payment webhooks received",
		},
		[]string{"type"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product write operations
func RecordProductOperation(operation, outcome string) {
	ProductOperationsCounter.WithLabelValues(operation, outcome).Inc()
}

// RecordFtpUpload records one FTP upload attempt
func RecordFtpUpload(outcome string, startTime time.Time) {
	FtpUploadsTotal.WithLabelValues(outcome).Inc()
	FtpUploadDuration.Observe(time.Since(startTime).Seconds())
}
