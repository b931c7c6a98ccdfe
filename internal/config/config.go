// Пакет config — загрузка и валидация конфигурации Web Module
// из переменных окружения (префикс WM_).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/minecrox/web-module/internal/apibase"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// rawConfig — значения переменных окружения до валидации.
// Разбор выполняет caarlos0/env, значения по умолчанию заданы в тегах.
type rawConfig struct {
	Port      int    `env:"WM_PORT" envDefault:"8040"`
	LogLevel  string `env:"WM_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"WM_LOG_FORMAT" envDefault:"json"`

	PublicAPIBaseURL   string        `env:"WM_PUBLIC_API_BASE_URL" envDefault:"http://localhost:8000"`
	InternalAPIBaseURL string        `env:"WM_INTERNAL_API_BASE_URL"`
	APITimeout         time.Duration `env:"WM_API_TIMEOUT" envDefault:"15s"`
	UploadTimeout      time.Duration `env:"WM_UPLOAD_TIMEOUT" envDefault:"5m"`
	MaxUploadSize      int64         `env:"WM_MAX_UPLOAD_SIZE" envDefault:"104857600"`

	Domain           string `env:"WM_DOMAIN" envDefault:"minecrox.ktoxz.id.vn"`
	TurnstileSiteKey string `env:"WM_TURNSTILE_SITE_KEY"`
	WasmDir          string `env:"WM_WASM_DIR"`

	ArtifactCacheSize int `env:"WM_ARTIFACT_CACHE_SIZE" envDefault:"1024"`

	DephealthGroup         string        `env:"WM_DEPHEALTH_GROUP" envDefault:"minecrox"`
	DephealthCheckInterval time.Duration `env:"WM_DEPHEALTH_CHECK_INTERVAL" envDefault:"15s"`

	HTTPReadTimeout  time.Duration `env:"WM_HTTP_READ_TIMEOUT" envDefault:"30s"`
	HTTPWriteTimeout time.Duration `env:"WM_HTTP_WRITE_TIMEOUT" envDefault:"5m"`
	HTTPIdleTimeout  time.Duration `env:"WM_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout  time.Duration `env:"WM_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Config содержит все параметры конфигурации Web Module.
// Создаётся один раз при старте и передаётся компонентам явно.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Files API ---

	// Базовые URL внешнего API (публичный + внутренний)
	APIBase *apibase.Resolver
	// Таймаут запросов получения файла и жалоб
	APITimeout time.Duration
	// Таймаут пересылки загрузки во внешний API
	UploadTimeout time.Duration
	// Максимальный размер multipart-тела загрузки в байтах
	MaxUploadSize int64

	// --- Сайт ---

	// Публичный домен сайта (robots.txt, sitemap.xml)
	Domain string
	// Site key anti-bot виджета (пусто — поле-заглушка для токена)
	TurnstileSiteKey string
	// Директория с app.wasm и wasm_exec.js (пусто — без wasm-клиента)
	WasmDir string

	// Размер memo производных артефактов (download URL, сниппет)
	ArtifactCacheSize int

	// --- topologymetrics ---

	// Группа в метриках зависимостей
	DephealthGroup string
	// Интервал проверки files API
	DephealthCheckInterval time.Duration

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если значения некорректны.
func Load() (*Config, error) {
	var raw rawConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("разбор переменных окружения: %w", err)
	}

	cfg := &Config{}
	var err error

	// --- Сервер ---

	if raw.Port < 1 || raw.Port > 65535 {
		return nil, fmt.Errorf("WM_PORT: значение %d вне допустимого диапазона 1-65535", raw.Port)
	}
	cfg.Port = raw.Port

	cfg.LogLevel, err = parseLogLevel(raw.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("WM_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = raw.LogFormat
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("WM_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Files API ---

	cfg.APIBase, err = apibase.New(raw.PublicAPIBaseURL, raw.InternalAPIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("WM_PUBLIC_API_BASE_URL/WM_INTERNAL_API_BASE_URL: %w", err)
	}

	if raw.APITimeout <= 0 {
		return nil, fmt.Errorf("WM_API_TIMEOUT: значение должно быть положительным, получено %s", raw.APITimeout)
	}
	cfg.APITimeout = raw.APITimeout

	if raw.UploadTimeout <= 0 {
		return nil, fmt.Errorf("WM_UPLOAD_TIMEOUT: значение должно быть положительным, получено %s", raw.UploadTimeout)
	}
	cfg.UploadTimeout = raw.UploadTimeout

	if raw.MaxUploadSize < 1 {
		return nil, fmt.Errorf("WM_MAX_UPLOAD_SIZE: значение должно быть положительным, получено %d", raw.MaxUploadSize)
	}
	cfg.MaxUploadSize = raw.MaxUploadSize

	// --- Сайт ---

	cfg.Domain = strings.TrimSpace(raw.Domain)
	if cfg.Domain == "" || strings.Contains(cfg.Domain, "/") {
		return nil, fmt.Errorf("WM_DOMAIN: недопустимое значение %q, ожидается имя хоста без схемы", raw.Domain)
	}

	cfg.TurnstileSiteKey = strings.TrimSpace(raw.TurnstileSiteKey)
	cfg.WasmDir = strings.TrimSpace(raw.WasmDir)

	if raw.ArtifactCacheSize < 1 || raw.ArtifactCacheSize > 1_000_000 {
		return nil, fmt.Errorf("WM_ARTIFACT_CACHE_SIZE: значение %d вне допустимого диапазона 1-1000000", raw.ArtifactCacheSize)
	}
	cfg.ArtifactCacheSize = raw.ArtifactCacheSize

	// --- topologymetrics ---

	cfg.DephealthGroup = raw.DephealthGroup
	cfg.DephealthCheckInterval = raw.DephealthCheckInterval

	// --- Таймауты ---

	cfg.HTTPReadTimeout = raw.HTTPReadTimeout
	cfg.HTTPWriteTimeout = raw.HTTPWriteTimeout
	cfg.HTTPIdleTimeout = raw.HTTPIdleTimeout
	cfg.ShutdownTimeout = raw.ShutdownTimeout

	return cfg, nil
}

// SiteURL возвращает базовый URL сайта (https://<domain>).
func (c *Config) SiteURL() string {
	return "https://" + c.Domain
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
