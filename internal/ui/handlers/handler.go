// Пакет handlers — HTTP-обработчики страниц Web Module.
// Файл handler.go — общие части: параметры сайта, рендеринг, IP клиента.
package handlers

import (
	"bytes"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/minecrox/web-module/internal/config"
	"github.com/minecrox/web-module/internal/ui/pages"
)

// Site — параметры сайта, общие для всех страниц.
// Формируется один раз из конфигурации.
type Site struct {
	// URL — https://<domain>, без завершающего /
	URL string
	// PublicAPIBase — публичная база files API
	PublicAPIBase string
	// TurnstileSiteKey — ключ anti-bot виджета (пусто — без виджета)
	TurnstileSiteKey string
	// WasmEnabled — подключать wasm-клиент
	WasmEnabled bool
}

// NewSite собирает параметры сайта из конфигурации.
func NewSite(cfg *config.Config) Site {
	return Site{
		URL:              cfg.SiteURL(),
		PublicAPIBase:    cfg.APIBase.Public(),
		TurnstileSiteKey: cfg.TurnstileSiteKey,
		WasmEnabled:      cfg.WasmDir != "",
	}
}

// CaptchaRequired сообщает, включён ли anti-bot виджет.
func (s Site) CaptchaRequired() bool {
	return s.TurnstileSiteKey != ""
}

// meta возвращает базовые метаданные страницы с путём path.
func (s Site) meta(path string) pages.Meta {
	return pages.Meta{
		CanonicalURL:     s.URL + path,
		WasmEnabled:      s.WasmEnabled,
		TurnstileSiteKey: s.TurnstileSiteKey,
		CurrentPath:      path,
		PublicAPIBase:    s.PublicAPIBase,
	}
}

// render рендерит компонент в буфер и отдаёт его со статусом status.
// При ошибке рендеринга отдаёт 500: частично записанная страница не уходит клиенту.
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, status int, c templ.Component, page string) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		logger.Error("Ошибка рендеринга "+page, slog.String("error", err.Error()))
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// clientIP возвращает IP клиента из RemoteAddr.
// RemoteAddr уже учитывает X-Forwarded-For / X-Real-IP через middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

// captchaToken возвращает токен anti-bot виджета из формы.
// Виджет пишет токен в cf-turnstile-response, ручное поле — captcha_token.
func captchaToken(r *http.Request) string {
	if token := strings.TrimSpace(r.FormValue("cf-turnstile-response")); token != "" {
		return token
	}
	return strings.TrimSpace(r.FormValue("captcha_token"))
}
