package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8040 {
		t.Errorf("Port = %d, ожидается 8040", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.APIBase.Public() != "http://localhost:8000" {
		t.Errorf("APIBase.Public() = %q, ожидается http://localhost:8000", cfg.APIBase.Public())
	}
	if cfg.APIBase.Server() != "http://localhost:8000" {
		t.Errorf("APIBase.Server() = %q, ожидается fallback на публичный", cfg.APIBase.Server())
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("APITimeout = %v, ожидается 15s", cfg.APITimeout)
	}
	if cfg.UploadTimeout != 5*time.Minute {
		t.Errorf("UploadTimeout = %v, ожидается 5m", cfg.UploadTimeout)
	}
	if cfg.MaxUploadSize != 100*1024*1024 {
		t.Errorf("MaxUploadSize = %d, ожидается 104857600", cfg.MaxUploadSize)
	}
	if cfg.Domain != "minecrox.ktoxz.id.vn" {
		t.Errorf("Domain = %q, ожидается minecrox.ktoxz.id.vn", cfg.Domain)
	}
	if cfg.SiteURL() != "https://minecrox.ktoxz.id.vn" {
		t.Errorf("SiteURL() = %q", cfg.SiteURL())
	}
	if cfg.TurnstileSiteKey != "" {
		t.Errorf("TurnstileSiteKey = %q, ожидается пустая строка", cfg.TurnstileSiteKey)
	}
	if cfg.ArtifactCacheSize != 1024 {
		t.Errorf("ArtifactCacheSize = %d, ожидается 1024", cfg.ArtifactCacheSize)
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setEnvs(t, map[string]string{
		"WM_PORT":                  "3000",
		"WM_LOG_LEVEL":             "debug",
		"WM_LOG_FORMAT":            "text",
		"WM_PUBLIC_API_BASE_URL":   "https://api.example.com/",
		"WM_INTERNAL_API_BASE_URL": "http://backend:8000",
		"WM_API_TIMEOUT":           "3s",
		"WM_DOMAIN":                "example.com",
		"WM_TURNSTILE_SITE_KEY":    " site-key ",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, ожидается 3000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.APIBase.Public() != "https://api.example.com" {
		t.Errorf("APIBase.Public() = %q", cfg.APIBase.Public())
	}
	if cfg.APIBase.Server() != "http://backend:8000" {
		t.Errorf("APIBase.Server() = %q", cfg.APIBase.Server())
	}
	if cfg.APITimeout != 3*time.Second {
		t.Errorf("APITimeout = %v, ожидается 3s", cfg.APITimeout)
	}
	if cfg.TurnstileSiteKey != "site-key" {
		t.Errorf("TurnstileSiteKey = %q, ожидается site-key", cfg.TurnstileSiteKey)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"порт вне диапазона", "WM_PORT", "70000"},
		{"порт не число", "WM_PORT", "abc"},
		{"уровень логов", "WM_LOG_LEVEL", "verbose"},
		{"формат логов", "WM_LOG_FORMAT", "xml"},
		{"публичный URL", "WM_PUBLIC_API_BASE_URL", "ftp://api"},
		{"внутренний URL", "WM_INTERNAL_API_BASE_URL", "not a url"},
		{"таймаут API", "WM_API_TIMEOUT", "0s"},
		{"размер загрузки", "WM_MAX_UPLOAD_SIZE", "0"},
		{"домен со схемой", "WM_DOMAIN", "https://example.com"},
		{"размер memo", "WM_ARTIFACT_CACHE_SIZE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() с %s=%q: ожидалась ошибка", tt.key, tt.val)
			}
		})
	}
}
