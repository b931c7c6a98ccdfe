// Точка входа Web Module — веб-интерфейс файлового хостинга MineCrox.
// Загружает конфигурацию, каталоги переводов, создаёт клиент files API,
// сервис производных артефактов, мониторинг зависимостей (topologymetrics),
// обработчики страниц и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/minecrox/web-module/internal/api/handlers"
	"github.com/minecrox/web-module/internal/config"
	"github.com/minecrox/web-module/internal/filesapi"
	"github.com/minecrox/web-module/internal/report"
	"github.com/minecrox/web-module/internal/server"
	"github.com/minecrox/web-module/internal/service"
	uihandlers "github.com/minecrox/web-module/internal/ui/handlers"
	"github.com/minecrox/web-module/internal/ui/i18n"
	"github.com/minecrox/web-module/internal/upload"
)

func main() {
	// 1. .env (если есть) — переменные окружения имеют приоритет
	envErr := godotenv.Load()

	// 2. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 3. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Web Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)
	if envErr == nil {
		logger.Info("Загружен файл .env")
	}

	// Предупреждения о дефолтных значениях
	if os.Getenv("WM_DEPHEALTH_GROUP") == "" {
		logger.Warn("WM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}
	if !cfg.APIBase.HasInternal() {
		logger.Info("WM_INTERNAL_API_BASE_URL не задан, серверные запросы идут на публичный адрес",
			slog.String("public", cfg.APIBase.Public()),
		)
	}

	// 4. Каталоги переводов
	bundle := i18n.NewBundle(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Клиент files API (серверный адрес)
	filesClient := filesapi.New(cfg.APIBase.Server(), cfg.APITimeout, cfg.UploadTimeout, logger)
	logger.Info("Клиент files API создан",
		slog.String("base_url", filesClient.BaseURL()),
		slog.String("timeout", cfg.APITimeout.String()),
	)

	// 6. Производные артефакты (ссылка на скачивание, сниппет server.properties)
	artifacts := service.NewArtifactService(cfg.APIBase.Public(), cfg.ArtifactCacheSize)

	// 7. topologymetrics — мониторинг files API
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var readiness handlers.ReadinessChecker
	dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthConfig{
		ServiceID:     "web-module",
		Group:         cfg.DephealthGroup,
		FilesAPIURL:   cfg.APIBase.Server(),
		CheckInterval: cfg.DephealthCheckInterval,
	}, logger)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
		dephealthSvc = nil
	} else {
		readiness = dephealthSvc
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 8. Обработчики страниц
	site := uihandlers.NewSite(cfg)
	if site.CaptchaRequired() {
		logger.Info("Anti-bot виджет включён, токен обязателен для загрузки и жалоб")
	}
	if site.WasmEnabled {
		logger.Info("wasm-клиент подключён", slog.String("dir", cfg.WasmDir))
	}

	components := server.Components{
		Health: handlers.NewHealthHandler(readiness),
		Bundle: bundle,
		Pages:  uihandlers.NewPagesHandler(site, logger),
		Files:  uihandlers.NewFilesHandler(filesClient, artifacts, site, logger),
		Upload: uihandlers.NewUploadHandler(
			upload.NewWorkflow(filesClient, site.CaptchaRequired(), logger),
			site, cfg.MaxUploadSize, logger,
		),
		Report: uihandlers.NewReportHandler(
			report.NewWorkflow(filesClient, site.CaptchaRequired(), logger),
			site, logger,
		),
		SEO: uihandlers.NewSEOHandler(site, logger),
	}

	// 9. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, components)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 10. Остановка фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Web Module остановлен")
}
