// report.go — страница жалобы GET/POST /report.
// GET ?slug= подставляет slug в форму.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/minecrox/web-module/internal/report"
	"github.com/minecrox/web-module/internal/ui/i18n"
	"github.com/minecrox/web-module/internal/ui/pages"
)

// ReportHandler — обработчик страницы жалобы.
type ReportHandler struct {
	workflow *report.Workflow
	site     Site
	logger   *slog.Logger
}

// NewReportHandler создаёт новый ReportHandler.
func NewReportHandler(workflow *report.Workflow, site Site, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		workflow: workflow,
		site:     site,
		logger:   logger.With(slog.String("component", "ui.report")),
	}
}

// HandleForm обрабатывает GET /report.
func (h *ReportHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	data := h.data(r.Context())
	data.Slug = r.URL.Query().Get("slug")
	render(w, r, h.logger, http.StatusOK, pages.Report(data), "report page")
}

// HandleSubmit обрабатывает POST /report.
func (h *ReportHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := h.data(ctx)

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("Некорректная форма жалобы", slog.String("error", err.Error()))
	}

	form := &report.Form{
		Slug:         r.PostFormValue("slug"),
		Reason:       r.PostFormValue("reason"),
		Email:        r.PostFormValue("email"),
		CaptchaToken: captchaToken(r),
	}
	data.Slug = form.Slug
	data.Reason = form.Reason
	data.Email = form.Email
	data.CaptchaToken = r.PostFormValue("captcha_token")

	if err := h.workflow.Submit(ctx, form, clientIP(r)); err != nil {
		data.Error = report.DisplayMessage(err)
		render(w, r, h.logger, http.StatusUnprocessableEntity, pages.Report(data), "report page")
		return
	}

	data.Sent = true
	render(w, r, h.logger, http.StatusOK, pages.Report(data), "report page")
}

// data — данные пустой формы жалобы.
func (h *ReportHandler) data(ctx context.Context) pages.ReportData {
	meta := h.site.meta("/report")
	meta.Title = i18n.Tf(ctx, "page.title", i18n.T(ctx, "report.title"))
	meta.Description = i18n.T(ctx, "report.lead")

	return pages.ReportData{
		Meta:            meta,
		CaptchaRequired: h.workflow.CaptchaRequired(),
	}
}
