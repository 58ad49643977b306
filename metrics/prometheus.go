package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_api_requests_total",
			Help: "Total number of marketplace API requests.",
		},
		[]string{"marketplace", "endpoint", "status"},
	)
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_api_request_duration_seconds",
			Help:    "Histogram of marketplace API request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"marketplace", "endpoint", "status"},
	)
	recordsSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_records_submitted_total",
			Help: "Stock and price records accepted by a marketplace.",
		},
		[]string{"marketplace", "kind"},
	)
	batchesSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_batches_submitted_total",
			Help: "Submission calls made to a marketplace.",
		},
		[]string{"marketplace", "kind"},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(recordsSubmittedTotal)
	prometheus.MustRegister(batchesSubmittedTotal)
}

// RecordRequest записывает метрики для запроса к API маркетплейса.
func RecordRequest(marketplace, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	apiRequestsTotal.WithLabelValues(marketplace, endpoint, status).Inc()
	apiRequestDuration.WithLabelValues(marketplace, endpoint, status).Observe(duration.Seconds())
}

// RecordSubmission записывает метрики для успешно отправленного батча.
func RecordSubmission(marketplace, kind string, records int) {
	recordsSubmittedTotal.WithLabelValues(marketplace, kind).Add(float64(records))
	batchesSubmittedTotal.WithLabelValues(marketplace, kind).Inc()
}

// classifyStatus классифицирует HTTP-статус код в строку.
func classifyStatus(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "2xx"
	} else if statusCode >= 300 && statusCode < 400 {
		return "3xx"
	} else if statusCode >= 400 && statusCode < 500 {
		return "4xx"
	} else if statusCode >= 500 && statusCode < 600 {
		return "5xx"
	}
	return "unknown"
}

// MetricsHandler возвращает HTTP-обработчик для экспорта метрик Prometheus.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
