// metrics.go — Prometheus-метрики входящих запросов.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wm_http_requests_total",
			Help: "Количество HTTP-запросов к Web Module по маршруту и статусу.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wm_http_request_duration_seconds",
			Help:    "Время обработки HTTP-запросов Web Module, секунды.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 60},
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wm_http_requests_in_flight",
		Help: "Запросы, обрабатываемые в данный момент.",
	})
)

// MetricsMiddleware считает запросы и время их обработки.
// Длинные бакеты гистограммы покрывают пересылку загрузок.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			start := time.Now()
			rec := recordStatus(w)
			next.ServeHTTP(rec, r)

			route := normalizePath(r.URL.Path)
			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

// knownRoutes — маршруты без параметров, попадающие в метки как есть.
var knownRoutes = map[string]bool{
	"/": true, "/upload": true, "/report": true, "/terms": true, "/dmca": true,
	"/robots.txt": true, "/sitemap.xml": true, "/set-language": true,
	"/health/live": true, "/health/ready": true, "/metrics": true,
}

// normalizePath сводит путь к шаблону маршрута, чтобы метки не росли
// от slug и случайных URL:
//
//	/files/example-pack-1 → /files/{slug}
//	/static/css/app.css   → /static/*
//	/wp-admin             → /other
func normalizePath(path string) string {
	switch {
	case knownRoutes[path]:
		return path
	case strings.HasPrefix(path, "/files/") && len(path) > len("/files/"):
		return "/files/{slug}"
	case strings.HasPrefix(path, "/static/wasm/"):
		return "/static/wasm/*"
	case strings.HasPrefix(path, "/static/"):
		return "/static/*"
	default:
		return "/other"
	}
}
