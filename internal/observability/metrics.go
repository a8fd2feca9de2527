package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequestsTotal  *prometheus.CounterVec
	httpLatencySeconds *prometheus.HistogramVec
	httpErrorsTotal    *prometheus.CounterVec

	studentsArchivedTotal       *prometheus.CounterVec
	notificationsPublishedTotal *prometheus.CounterVec
	realtimeClientsActive       *prometheus.GaugeVec

	dashboardCacheTotal *prometheus.CounterVec

	uploadRequestsTotal  *prometheus.CounterVec
	uploadRejectedTotal  *prometheus.CounterVec
	uploadLatencySeconds prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "drivedesk_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		studentsArchivedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_students_archived_total",
			Help: "Students archived automatically, by the record that triggered it.",
		}, []string{"trigger"})

		notificationsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_notifications_published_total",
			Help: "Notifications delivered to live subscribers, by type.",
		}, []string{"type"})

		realtimeClientsActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "drivedesk_realtime_clients_active",
			Help: "Connected notification streams, by transport.",
		}, []string{"transport"})

		dashboardCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_dashboard_cache_total",
			Help: "Dashboard cache lookups, by outcome.",
		}, []string{"result"})

		uploadRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_upload_requests_total",
			Help: "Stored document uploads, by detected type.",
		}, []string{"type"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "drivedesk_upload_rejected_total",
			Help: "Rejected document uploads, by reason.",
		}, []string{"reason"})

		uploadLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "drivedesk_upload_latency_seconds",
			Help:    "Time spent validating and storing uploads.",
			Buckets: prometheus.DefBuckets,
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			studentsArchivedTotal,
			notificationsPublishedTotal,
			realtimeClientsActive,
			dashboardCacheTotal,
			uploadRequestsTotal,
			uploadRejectedTotal,
			uploadLatencySeconds,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// StudentsArchived counts automatic archivals.
func StudentsArchived() *prometheus.CounterVec {
	RegisterMetrics()
	return studentsArchivedTotal
}

// NotificationsPublished counts notifications fanned out to subscribers.
func NotificationsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsPublishedTotal
}

// RealtimeClients tracks connected SSE and WebSocket clients.
func RealtimeClients() *prometheus.GaugeVec {
	RegisterMetrics()
	return realtimeClientsActive
}

// DashboardCache counts dashboard cache hits and misses.
func DashboardCache() *prometheus.CounterVec {
	RegisterMetrics()
	return dashboardCacheTotal
}

// UploadRequests counts stored uploads.
func UploadRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRequestsTotal
}

// UploadRejected counts rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// UploadLatency observes upload processing time.
func UploadLatency() prometheus.Histogram {
	RegisterMetrics()
	return uploadLatencySeconds
}
