// Пакет server — HTTP-сервер Web Module с graceful shutdown.
// Без TLS — TLS termination на ingress.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/minecrox/web-module/internal/api/handlers"
	"github.com/minecrox/web-module/internal/api/middleware"
	"github.com/minecrox/web-module/internal/config"
	uihandlers "github.com/minecrox/web-module/internal/ui/handlers"
	"github.com/minecrox/web-module/internal/ui/i18n"
	"github.com/minecrox/web-module/internal/ui/static"
)

// Components — обработчики, из которых собирается роутер.
type Components struct {
	Health *handlers.HealthHandler
	Bundle *i18n.Bundle
	Pages  *uihandlers.PagesHandler
	Files  *uihandlers.FilesHandler
	Upload *uihandlers.UploadHandler
	Report *uihandlers.ReportHandler
	SEO    *uihandlers.SEOHandler
}

// Server — HTTP-сервер Web Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, logger *slog.Logger, c Components) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      NewRouter(cfg, logger, c),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// NewRouter собирает chi-роутер со всеми маршрутами.
func NewRouter(cfg *config.Config, logger *slog.Logger, c Components) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(chimw.RealIP)
	router.Use(middleware.RequestID())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimw.Recoverer)

	// Health и метрики
	router.Get("/health/live", c.Health.HealthLive)
	router.Get("/health/ready", c.Health.HealthReady)
	router.Get("/metrics", c.Health.GetMetrics)

	// Статика: wasm-клиент из каталога, остальное встроено в бинарник
	if cfg.WasmDir != "" {
		router.Handle("/static/wasm/*", http.StripPrefix("/static/wasm/", http.FileServer(http.Dir(cfg.WasmDir))))
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	// Crawl policy
	router.Get("/robots.txt", c.SEO.HandleRobots)
	router.Get("/sitemap.xml", c.SEO.HandleSitemap)

	// Страницы (язык из cookie / Accept-Language)
	router.Group(func(r chi.Router) {
		r.Use(i18n.Middleware(c.Bundle))

		r.Get("/", c.Pages.HandleHome)
		r.Get("/terms", c.Pages.HandleTerms)
		r.Get("/dmca", c.Pages.HandleDMCA)
		r.Get("/files/{slug}", c.Files.HandleFile)
		r.Get("/upload", c.Upload.HandleForm)
		r.Post("/upload", c.Upload.HandleSubmit)
		r.Get("/report", c.Report.HandleForm)
		r.Post("/report", c.Report.HandleSubmit)
		r.Post("/set-language", uihandlers.HandleSetLanguage)
	})

	router.NotFound(i18n.Middleware(c.Bundle)(http.HandlerFunc(c.Pages.HandleNotFound)).ServeHTTP)

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
