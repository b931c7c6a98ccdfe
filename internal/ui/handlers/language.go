// language.go — обработчик переключения языка.
package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minecrox/web-module/internal/ui/i18n"
)

// HandleSetLanguage обрабатывает POST /set-language.
// Устанавливает cookie "lang" и перенаправляет обратно.
// Параметр lang: "en" или "ru" (из формы или query).
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := r.FormValue("lang")
	if lang == "" {
		lang = r.URL.Query().Get("lang")
	}

	// Только поддерживаемые языки
	if !i18n.IsSupported(lang) {
		lang = i18n.DefaultLang
	}

	// Cookie "lang" на 1 год
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.LangCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false, // читается wasm-клиентом
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})

	http.Redirect(w, r, redirectTarget(r), http.StatusSeeOther)
}

// redirectTarget — локальный путь для возврата: поле redirect формы,
// затем Referer того же хоста, иначе "/".
func redirectTarget(r *http.Request) string {
	if p := r.FormValue("redirect"); isLocalPath(p) {
		return p
	}

	if ref := r.Header.Get("Referer"); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Host == r.Host && isLocalPath(u.Path) {
			if u.RawQuery != "" {
				return u.Path + "?" + u.RawQuery
			}
			return u.Path
		}
	}

	return "/"
}

// isLocalPath: абсолютный путь без схемы и хоста ("//evil" и "/\evil" отклоняются).
func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
