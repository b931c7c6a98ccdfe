// upload.go — страница загрузки GET/POST /upload.
// POST пересылает файл в files API и при успехе отвечает 303 на страницу файла.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/format"
	"github.com/minecrox/web-module/internal/ui/i18n"
	"github.com/minecrox/web-module/internal/ui/pages"
	"github.com/minecrox/web-module/internal/upload"
)

// multipartMemory — часть тела формы, которая держится в памяти;
// остальное ParseMultipartForm сбрасывает во временные файлы.
const multipartMemory = 8 << 20

// UploadHandler — обработчик страницы загрузки.
type UploadHandler struct {
	workflow      *upload.Workflow
	site          Site
	maxUploadSize int64
	logger        *slog.Logger
}

// NewUploadHandler создаёт новый UploadHandler.
func NewUploadHandler(workflow *upload.Workflow, site Site, maxUploadSize int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		workflow:      workflow,
		site:          site,
		maxUploadSize: maxUploadSize,
		logger:        logger.With(slog.String("component", "ui.upload")),
	}
}

// HandleForm обрабатывает GET /upload.
func (h *UploadHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, http.StatusOK, pages.Upload(h.data(r.Context())), "upload page")
}

// HandleSubmit обрабатывает POST /upload.
func (h *UploadHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.data(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("Превышен размер загрузки", slog.Int64("limit", h.maxUploadSize))
			data.Error = model.UserMessage{Text: i18n.Tf(ctx, "upload.error.too_large", data.MaxUploadSize)}
			render(w, r, h.logger, http.StatusRequestEntityTooLarge, pages.Upload(data), "upload page")
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			h.logger.Warn("Некорректная multipart-форма", slog.String("error", err.Error()))
		}
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	sub := &upload.Submission{CaptchaToken: captchaToken(r)}
	data.CaptchaToken = r.FormValue("captcha_token")

	file, header, err := r.FormFile("upload")
	if err == nil {
		defer func(f multipart.File) { _ = f.Close() }(file)
		sub.File = &upload.File{Name: header.Filename, Content: file}
		data.Filename = header.Filename
	}

	res, err := h.workflow.Submit(ctx, sub, clientIP(r))
	if err != nil {
		data.Error = upload.DisplayMessage(err)
		data.Advisory = sub.Advisory()
		render(w, r, h.logger, http.StatusUnprocessableEntity, pages.Upload(data), "upload page")
		return
	}

	h.logger.Info("Файл загружен", slog.String("slug", res.Slug))
	http.Redirect(w, r, res.Location, http.StatusSeeOther)
}

// data — данные пустой формы загрузки.
func (h *UploadHandler) data(ctx context.Context) pages.UploadData {
	meta := h.site.meta("/upload")
	meta.Title = i18n.Tf(ctx, "page.title", i18n.T(ctx, "upload.title"))
	meta.Description = i18n.T(ctx, "upload.lead")

	return pages.UploadData{
		Meta:            meta,
		CaptchaRequired: h.workflow.CaptchaRequired(),
		MaxUploadSize:   format.Bytes(float64(h.maxUploadSize)),
	}
}
