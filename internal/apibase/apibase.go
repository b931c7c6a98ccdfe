// Пакет apibase — выбор базового URL внешнего files API.
//
// Два резолвера:
//   - Public — URL, который попадает в HTML и должен быть доступен из браузера;
//   - Server — URL для запросов, выполняемых до отправки страницы в браузер
//     (может указывать на внутренний сетевой адрес). Если внутренний адрес
//     не задан, используется публичный.
package apibase

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolver — неизменяемая пара базовых URL, вычисляется один раз при старте.
type Resolver struct {
	public   string
	internal string
}

// New создаёт Resolver. public — обязательный, internal — опциональный.
// Trailing slash убирается, схема должна быть http или https.
func New(public, internal string) (*Resolver, error) {
	pub, err := normalize(public)
	if err != nil {
		return nil, fmt.Errorf("публичный API URL: %w", err)
	}
	if pub == "" {
		return nil, fmt.Errorf("публичный API URL не задан")
	}

	in, err := normalize(internal)
	if err != nil {
		return nil, fmt.Errorf("внутренний API URL: %w", err)
	}

	return &Resolver{public: pub, internal: in}, nil
}

// Public возвращает базовый URL для ссылок, отдаваемых в браузер.
func (r *Resolver) Public() string {
	return r.public
}

// Server возвращает базовый URL для серверных запросов.
// Fallback на публичный, если внутренний не настроен.
func (r *Resolver) Server() string {
	if r.internal != "" {
		return r.internal
	}
	return r.public
}

// HasInternal сообщает, задан ли отдельный внутренний адрес.
func (r *Resolver) HasInternal() bool {
	return r.internal != ""
}

// normalize проверяет URL и убирает trailing slash. Пустая строка допустима.
func normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("некорректный URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("недопустимая схема %q в %q, допустимые: http, https", u.Scheme, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("в URL %q не указан хост", raw)
	}

	return strings.TrimRight(raw, "/"), nil
}

// EncodeComponent кодирует строку для подстановки в один сегмент URL.
// Без изменений остаются A-Z a-z 0-9 и - _ . ! ~ * ' ( ), всё остальное
// кодируется по байтам UTF-8 в %XX (верхний регистр). Кодирование
// инъективно: разные строки дают разные результаты.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
