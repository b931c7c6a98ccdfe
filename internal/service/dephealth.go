// dephealth.go — мониторинг files API через topologymetrics.
//
// Проверка: HTTP GET <серверный базовый URL>/healthz, зависимость critical.
// Метрики app_dependency_* публикуются на /metrics рядом с остальными.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // HTTP checker factory
	"github.com/prometheus/client_golang/prometheus"
)

// FilesAPIDependency — имя files API в метриках и ключах Health().
const FilesAPIDependency = "files-api"

const filesAPIHealthPath = "/healthz"

// DephealthConfig — параметры мониторинга.
type DephealthConfig struct {
	// ServiceID — вершина графа текущего приложения
	ServiceID string
	// Group — группа в метриках (WM_DEPHEALTH_GROUP)
	Group string
	// FilesAPIURL — серверный базовый URL files API
	FilesAPIURL string
	// CheckInterval — период проверки
	CheckInterval time.Duration
	// Registerer — реестр метрик; nil — глобальный (тесты передают свой)
	Registerer prometheus.Registerer
}

// DephealthService следит за доступностью files API.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт монитор. Проверки начинаются после Start.
func NewDephealthService(cfg DephealthConfig, logger *slog.Logger) (*DephealthService, error) {
	opts := []dephealth.Option{
		dephealth.WithLogger(logger),
		dephealth.HTTP(FilesAPIDependency,
			dephealth.FromURL(cfg.FilesAPIURL),
			dephealth.WithHTTPHealthPath(filesAPIHealthPath),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		),
	}
	if cfg.Registerer != nil {
		opts = append(opts, dephealth.WithRegisterer(cfg.Registerer))
	}

	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}
	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодические проверки.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг files API запущен")
	return ds.dh.Start(ctx)
}

// Stop останавливает проверки.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг files API остановлен")
}

// Health — состояние по ключам "files-api:host:port".
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// CheckReady — статус files API для /health/ready.
// Пока первая проверка не прошла, статус degraded.
func (ds *DephealthService) CheckReady() (status, message string) {
	seen := false
	for key, healthy := range ds.dh.Health() {
		if key != FilesAPIDependency && !strings.HasPrefix(key, FilesAPIDependency+":") {
			continue
		}
		seen = true
		if !healthy {
			return "fail", "files API недоступен"
		}
	}
	if !seen {
		return "degraded", "проверка files API ещё не выполнялась"
	}
	return "ok", ""
}
