// health.go — служебные endpoints Web Module: liveness, readiness и /metrics.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minecrox/web-module/internal/config"
)

const serviceName = "web-module"

// Статусы проверок.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
)

// ReadinessChecker — источник статуса files API.
type ReadinessChecker interface {
	// CheckReady возвращает статус (ok | degraded | fail) и пояснение.
	CheckReady() (status string, message string)
}

// HealthHandler обслуживает /health/live, /health/ready и /metrics.
type HealthHandler struct {
	filesAPI ReadinessChecker
	metrics  http.Handler
	now      func() time.Time
}

// NewHealthHandler создаёт обработчик. При filesAPI == nil мониторинг
// зависимостей выключен и readiness всегда ok.
func NewHealthHandler(filesAPI ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		filesAPI: filesAPI,
		metrics:  promhttp.Handler(),
		now:      time.Now,
	}
}

type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthResponse — тело liveness и readiness; checks есть только у readiness.
type healthResponse struct {
	Status    string                 `json:"status"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]checkResult `json:"checks,omitempty"`
}

func (h *HealthHandler) response(status string) healthResponse {
	return healthResponse{
		Status:    status,
		Service:   serviceName,
		Version:   config.Version,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
}

// HealthLive — GET /health/live. Процесс отвечает — значит жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, h.response(statusOK))
}

// HealthReady — GET /health/ready. Без files API страницы файлов и
// загрузка не работают, поэтому fail даёт 503.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	filesAPI := checkResult{Status: statusOK, Message: "мониторинг отключён"}
	if h.filesAPI != nil {
		filesAPI.Status, filesAPI.Message = h.filesAPI.CheckReady()
	}

	resp := h.response(overallStatus(filesAPI.Status))
	resp.Checks = map[string]checkResult{"files_api": filesAPI}

	code := http.StatusOK
	if resp.Status == statusFail {
		code = http.StatusServiceUnavailable
	}
	writeHealth(w, code, resp)
}

// GetMetrics — GET /metrics.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

func writeHealth(w http.ResponseWriter, code int, resp healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

// overallStatus — худший из статусов: fail > degraded > ok.
func overallStatus(statuses ...string) string {
	result := statusOK
	for _, s := range statuses {
		switch s {
		case statusFail:
			return statusFail
		case statusDegraded:
			result = statusDegraded
		}
	}
	return result
}
