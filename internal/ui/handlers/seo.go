// seo.go — robots.txt и sitemap.xml.
// Страницы файлов доступны только по ссылке: robots.txt закрывает /files/,
// sitemap перечисляет только статические страницы.
package handlers

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// sitemapEntry — статическая страница в sitemap.
type sitemapEntry struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// sitemapPages — страницы sitemap в порядке вывода.
var sitemapPages = []sitemapEntry{
	{Path: "/", ChangeFreq: "daily", Priority: "1.0"},
	{Path: "/upload", ChangeFreq: "weekly", Priority: "0.8"},
	{Path: "/report", ChangeFreq: "monthly", Priority: "0.4"},
	{Path: "/terms", ChangeFreq: "yearly", Priority: "0.2"},
	{Path: "/dmca", ChangeFreq: "yearly", Priority: "0.2"},
}

// robotsAllow — пути, открытые для индексации.
var robotsAllow = []string{"/", "/upload", "/terms", "/dmca", "/report"}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SEOHandler — обработчик robots.txt и sitemap.xml.
type SEOHandler struct {
	site   Site
	now    func() time.Time
	logger *slog.Logger
}

// NewSEOHandler создаёт новый SEOHandler.
func NewSEOHandler(site Site, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		site:   site,
		now:    time.Now,
		logger: logger.With(slog.String("component", "ui.seo")),
	}
}

// HandleRobots обрабатывает GET /robots.txt.
func (h *SEOHandler) HandleRobots(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	for _, p := range robotsAllow {
		b.WriteString("Allow: " + p + "\n")
	}
	b.WriteString("Disallow: /files/\n")
	b.WriteString("\nSitemap: " + h.site.URL + "/sitemap.xml\n")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

// HandleSitemap обрабатывает GET /sitemap.xml.
func (h *SEOHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	lastMod := h.now().UTC().Format(time.RFC3339)

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range sitemapPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.site.URL + p.Path,
			LastMod:    lastMod,
			ChangeFreq: p.ChangeFreq,
			Priority:   p.Priority,
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		h.logger.Error("Ошибка формирования sitemap", slog.String("error", err.Error()))
		http.Error(w, "Ошибка формирования sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
