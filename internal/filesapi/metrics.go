package filesapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики исходящих запросов к files API.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wm_files_api_requests_total",
			Help: "Общее количество запросов Web Module к files API",
		},
		[]string{"operation", "status_class"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wm_files_api_request_duration_seconds",
			Help:    "Длительность запросов к files API в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Операции files API (значения лейбла operation).
const (
	opGetFile      = "get_file"
	opCreateUpload = "create_upload"
	opCreateReport = "create_report"
)

// observe записывает результат запроса. status == 0 — сетевая ошибка.
func observe(operation string, status int, started time.Time) {
	upstreamRequestsTotal.WithLabelValues(operation, statusClass(status)).Inc()
	upstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// statusClass сворачивает статус в класс: 2xx, 4xx, 5xx, error.
func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
