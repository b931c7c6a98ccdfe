// files.go — страница файла GET /files/{slug}:
// запрос записи в files API (без кеша), вычисление ссылки и сниппета,
// рендер двух раскладок. Ошибка поиска — страница 404.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/minecrox/web-module/internal/apibase"
	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/filesapi"
	"github.com/minecrox/web-module/internal/format"
	"github.com/minecrox/web-module/internal/service"
	"github.com/minecrox/web-module/internal/ui/i18n"
	"github.com/minecrox/web-module/internal/ui/pages"
	"github.com/minecrox/web-module/internal/ui/tabs"
)

// FileFetcher — получение записи файла по slug.
type FileFetcher interface {
	GetFile(ctx context.Context, slug string) (*model.FileRecord, error)
}

// FilesHandler — обработчик страницы файла.
type FilesHandler struct {
	api       FileFetcher
	artifacts *service.ArtifactService
	site      Site
	logger    *slog.Logger
}

// NewFilesHandler создаёт новый FilesHandler.
func NewFilesHandler(api FileFetcher, artifacts *service.ArtifactService, site Site, logger *slog.Logger) *FilesHandler {
	return &FilesHandler{
		api:       api,
		artifacts: artifacts,
		site:      site,
		logger:    logger.With(slog.String("component", "ui.files")),
	}
}

// HandleFile обрабатывает GET /files/{slug}.
func (h *FilesHandler) HandleFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := slugParam(r)

	// Страница содержит счётчики и срок хранения: не кешируется и не индексируется
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Robots-Tag", "noindex, nofollow")

	file, err := h.api.GetFile(ctx, slug)
	if err != nil {
		if errors.Is(err, filesapi.ErrNotFound) {
			h.logger.Debug("Файл не найден", slog.String("slug", slug))
			renderNotFound(w, r, h.logger, h.site)
			return
		}

		h.logger.Error("Ошибка запроса файла",
			slog.String("slug", slug),
			slog.String("error", err.Error()),
		)
		meta := h.site.meta(r.URL.Path)
		meta.NoIndex = true
		meta.Title = i18n.Tf(ctx, "page.title", i18n.T(ctx, "error.title"))
		render(w, r, h.logger, http.StatusBadGateway,
			pages.Error(pages.StaticData{Meta: meta, Message: model.UserMessage{Key: "error.upstream"}}), "error page")
		return
	}

	active, _ := tabs.Parse(r.URL.Query().Get("tab"))
	data := h.fileData(ctx, file, active)

	render(w, r, h.logger, http.StatusOK, pages.File(data), "file page")
}

// fileData собирает данные страницы файла.
func (h *FilesHandler) fileData(ctx context.Context, file *model.FileRecord, active tabs.Tab) pages.FileData {
	art := h.artifacts.Derive(file)
	path := "/files/" + apibase.EncodeComponent(file.Slug)

	description := ""
	if file.HasDescription() {
		description = *file.Description
	}

	meta := h.site.meta(path)
	meta.NoIndex = true
	meta.Title = i18n.Tf(ctx, "page.title", file.Filename)
	meta.Description = description
	if meta.Description == "" {
		meta.Description = i18n.Tf(ctx, "file.default_description", file.Filename)
	}
	meta.JSONLD = fileJSONLD(file, art.DownloadURL, description)

	data := pages.FileData{
		Meta:            meta,
		Filename:        file.Filename,
		Slug:            file.Slug,
		Badges:          fileBadges(ctx, file),
		FileDescription: description,
		Tags:            file.DisplayTags(),
		DownloadURL:     art.DownloadURL,
		CopyFields: []pages.CopyField{
			{Key: "download_url", LabelKey: "file.download_url", Value: art.DownloadURL},
			{Key: "sha1", LabelKey: "file.sha1", Value: art.SHA1},
			{Key: "server_properties", LabelKey: "file.server_properties", Value: art.ServerConfigSnippet, Multiline: true},
		},
		Downloads: strconv.FormatInt(file.DownloadCount, 10),
		Size:      format.Bytes(float64(file.FileSize)),
		Uploaded:  format.ShortDate(&file.CreatedAt),
		Expires:   format.ShortDate(&file.ExpireAt),
		ActiveTab: string(active),
		ReportURL: "/report?slug=" + url.QueryEscape(file.Slug),
	}

	for _, t := range tabs.All {
		data.Tabs = append(data.Tabs, pages.TabLink{
			ID:       string(t),
			LabelKey: "file.tab." + string(t),
			Href:     path + "?tab=" + string(t),
			Active:   t == active,
		})
	}

	return data
}

// fileBadges — тип файла, версия Minecraft и загрузчик (если заданы).
func fileBadges(ctx context.Context, file *model.FileRecord) []pages.Badge {
	var badges []pages.Badge
	if file.FileType != "" {
		badges = append(badges, pages.Badge{Text: file.FileType})
	}
	if file.MinecraftVersion != nil && *file.MinecraftVersion != "" {
		badges = append(badges, pages.Badge{Text: i18n.Tf(ctx, "file.mc_version", *file.MinecraftVersion)})
	}
	if file.Loader != nil && *file.Loader != "" {
		badges = append(badges, pages.Badge{Text: *file.Loader})
	}
	return badges
}

// softwareApplication — JSON-LD schema.org/SoftwareApplication.
type softwareApplication struct {
	Context             string `json:"@context"`
	Type                string `json:"@type"`
	Name                string `json:"name"`
	ApplicationCategory string `json:"applicationCategory"`
	OperatingSystem     string `json:"operatingSystem"`
	SoftwareVersion     string `json:"softwareVersion,omitempty"`
	Description         string `json:"description,omitempty"`
	DownloadURL         string `json:"downloadUrl"`
}

// fileJSONLD сериализует JSON-LD страницы файла.
// json.Marshal экранирует <, > и &, поэтому вывод безопасен внутри <script>.
func fileJSONLD(file *model.FileRecord, downloadURL, description string) template.JS {
	doc := softwareApplication{
		Context:             "https://schema.org",
		Type:                "SoftwareApplication",
		Name:                file.Filename,
		ApplicationCategory: "GameApplication",
		OperatingSystem:     "Minecraft",
		Description:         description,
		DownloadURL:         downloadURL,
	}
	if file.MinecraftVersion != nil {
		doc.SoftwareVersion = *file.MinecraftVersion
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return template.JS(raw) //nolint:gosec // json.Marshal экранирует HTML-символы
}

// slugParam возвращает slug из URL в декодированном виде.
// chi отдаёт параметр из RawPath (экранированный), если он задан.
func slugParam(r *http.Request) string {
	slug := chi.URLParam(r, "slug")
	if r.URL.RawPath == "" {
		return slug
	}
	if decoded, err := url.PathUnescape(slug); err == nil {
		return decoded
	}
	return slug
}
