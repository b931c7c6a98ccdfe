// pages.go — статические страницы: главная, условия, DMCA, 404.
package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/minecrox/web-module/internal/ui/i18n"
	"github.com/minecrox/web-module/internal/ui/pages"
)

// PagesHandler — обработчик статических страниц.
type PagesHandler struct {
	site   Site
	logger *slog.Logger
}

// NewPagesHandler создаёт новый PagesHandler.
func NewPagesHandler(site Site, logger *slog.Logger) *PagesHandler {
	return &PagesHandler{
		site:   site,
		logger: logger.With(slog.String("component", "ui.pages")),
	}
}

// HandleHome обрабатывает GET /.
func (h *PagesHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	meta := h.site.meta("/")
	meta.Title = i18n.T(ctx, "home.meta_title")
	meta.Description = i18n.T(ctx, "home.meta_description")
	meta.JSONLD = homeJSONLD(ctx, h.site.URL)

	render(w, r, h.logger, http.StatusOK, pages.Home(pages.HomeData{Meta: meta, FAQ: pages.HomeFAQ}), "home page")
}

// HandleTerms обрабатывает GET /terms.
func (h *PagesHandler) HandleTerms(w http.ResponseWriter, r *http.Request) {
	meta := h.site.meta("/terms")
	meta.Title = i18n.Tf(r.Context(), "page.title", i18n.T(r.Context(), "terms.title"))
	render(w, r, h.logger, http.StatusOK, pages.Terms(pages.StaticData{Meta: meta}), "terms page")
}

// HandleDMCA обрабатывает GET /dmca.
func (h *PagesHandler) HandleDMCA(w http.ResponseWriter, r *http.Request) {
	meta := h.site.meta("/dmca")
	meta.Title = i18n.Tf(r.Context(), "page.title", i18n.T(r.Context(), "dmca.title"))
	render(w, r, h.logger, http.StatusOK, pages.DMCA(pages.StaticData{Meta: meta}), "dmca page")
}

// HandleNotFound — обработчик неизвестных маршрутов.
func (h *PagesHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, h.logger, h.site)
}

// renderNotFound отдаёт страницу 404.
func renderNotFound(w http.ResponseWriter, r *http.Request, logger *slog.Logger, site Site) {
	meta := site.meta(r.URL.Path)
	meta.NoIndex = true
	meta.CanonicalURL = ""
	meta.Title = i18n.Tf(r.Context(), "page.title", i18n.T(r.Context(), "notfound.title"))
	render(w, r, logger, http.StatusNotFound, pages.NotFound(pages.StaticData{Meta: meta}), "not found page")
}

// homeJSONLD — Organization, WebSite и FAQPage главной страницы.
func homeJSONLD(ctx context.Context, siteURL string) template.JS {
	type answer struct {
		Type string `json:"@type"`
		Text string `json:"text"`
	}
	type question struct {
		Type           string `json:"@type"`
		Name           string `json:"name"`
		AcceptedAnswer answer `json:"acceptedAnswer"`
	}

	faq := make([]question, 0, len(pages.HomeFAQ))
	for _, e := range pages.HomeFAQ {
		faq = append(faq, question{
			Type:           "Question",
			Name:           i18n.T(ctx, e.Question),
			AcceptedAnswer: answer{Type: "Answer", Text: i18n.T(ctx, e.Answer)},
		})
	}

	doc := map[string]any{
		"@context": "https://schema.org",
		"@graph": []any{
			map[string]any{"@type": "Organization", "name": "MineCrox", "url": siteURL},
			map[string]any{
				"@type": "WebSite",
				"name":  "MineCrox",
				"url":   siteURL,
				"potentialAction": map[string]any{
					"@type":       "SearchAction",
					"target":      siteURL + "/files/{search_term_string}",
					"query-input": "required name=search_term_string",
				},
			},
			map[string]any{"@type": "FAQPage", "mainEntity": faq},
		},
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return template.JS(raw) //nolint:gosec // json.Marshal экранирует HTML-символы
}
