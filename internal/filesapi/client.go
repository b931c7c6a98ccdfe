// Пакет filesapi — HTTP-клиент внешнего files API MineCrox.
// Получение записи файла по slug, пересылка загрузок и жалоб.
// Все запросы идут по серверному базовому URL (apibase.Resolver.Server).
package filesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/minecrox/web-module/internal/api/middleware"
	"github.com/minecrox/web-module/internal/apibase"
	"github.com/minecrox/web-module/internal/domain/model"
)

// maxErrorBody — сколько байт тела ошибки читается для сообщения пользователю.
const maxErrorBody = 64 << 10

// Client — HTTP-клиент files API.
type Client struct {
	httpClient   *http.Client
	uploadClient *http.Client
	baseURL      string
	logger       *slog.Logger
}

// New создаёт клиент files API.
// baseURL — серверный базовый URL (внутренний или публичный).
// timeout — таймаут получения файла и жалоб (WM_API_TIMEOUT).
// uploadTimeout — таймаут пересылки загрузки (WM_UPLOAD_TIMEOUT).
func New(baseURL string, timeout, uploadTimeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		uploadClient: &http.Client{Timeout: uploadTimeout},
		baseURL:      strings.TrimRight(baseURL, "/"),
		logger:       logger.With(slog.String("component", "files_api_client")),
	}
}

// BaseURL возвращает базовый URL, по которому работает клиент.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetFile запрашивает публичную запись файла по slug.
// GET /api/v1/files/{slug}
//
// Запрос всегда идёт мимо кэшей (no-cache, no-store): запись содержит счётчик
// скачиваний и продлеваемый expire_at. Любой не-2xx ответ — ErrNotFound.
func (c *Client) GetFile(ctx context.Context, slug string) (*model.FileRecord, error) {
	reqURL := c.baseURL + "/api/v1/files/" + apibase.EncodeComponent(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("создание запроса GetFile: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, max-age=0")
	req.Header.Set("Pragma", "no-cache")
	c.setRequestID(ctx, req)

	started := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		observe(opGetFile, 0, started)
		return nil, fmt.Errorf("запрос GetFile к %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	observe(opGetFile, resp.StatusCode, started)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("Файл не найден в files API",
			slog.String("slug", slug),
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("files API вернул статус %d для slug %q: %w", resp.StatusCode, slug, ErrNotFound)
	}

	var record model.FileRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("декодирование записи файла: %w", err)
	}

	return &record, nil
}

// UploadInput — данные загрузки для пересылки в files API.
type UploadInput struct {
	// Filename — имя файла из формы
	Filename string
	// Content — содержимое файла (читается один раз, потоково)
	Content io.Reader
	// CaptchaToken — токен anti-bot виджета; пустой не отправляется
	CaptchaToken string
	// ClientIP — IP посетителя, передаётся как X-Forwarded-For
	ClientIP string
}

// CreateUpload пересылает файл в files API.
// POST /api/v1/uploads (multipart: upload, captcha_token)
//
// Тело формируется потоково через io.Pipe, файл не буферизуется в памяти.
// Не-2xx ответ — *UploadFailedError с телом ответа как есть.
func (c *Client) CreateUpload(ctx context.Context, in UploadInput) (*model.UploadCreated, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeUploadForm(mw, in))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/uploads", pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return nil, fmt.Errorf("создание запроса CreateUpload: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	c.setForwardedFor(req, in.ClientIP)
	c.setRequestID(ctx, req)

	started := time.Now()
	resp, err := c.uploadClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		observe(opCreateUpload, 0, started)
		return nil, fmt.Errorf("запрос CreateUpload к %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	observe(opCreateUpload, resp.StatusCode, started)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("files API отклонил загрузку",
			slog.String("filename", in.Filename),
			slog.Int("status", resp.StatusCode),
		)
		return nil, &UploadFailedError{
			Status:  resp.StatusCode,
			Message: failureMessage(body, "Upload failed", resp.StatusCode),
		}
	}

	var created model.UploadCreated
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("декодирование ответа загрузки: %w", err)
	}
	if created.Slug == "" {
		return nil, fmt.Errorf("в ответе загрузки нет slug")
	}

	attrs := []slog.Attr{
		slog.String("slug", created.Slug),
		slog.String("id", created.ID),
		slog.String("filename", in.Filename),
		slog.String("landing_page_url", created.LandingPageURL),
	}
	if rp := created.ResourcePack; rp != nil {
		attrs = append(attrs, slog.Group("resource_pack",
			slog.String("download_url", rp.DownloadURL),
			slog.String("sha1", rp.SHA1),
		))
	}
	c.logger.LogAttrs(ctx, slog.LevelInfo, "Файл загружен", attrs...)

	return &created, nil
}

// writeUploadForm записывает multipart-тело загрузки.
func writeUploadForm(mw *multipart.Writer, in UploadInput) error {
	part, err := mw.CreateFormFile("upload", in.Filename)
	if err != nil {
		return fmt.Errorf("создание части upload: %w", err)
	}
	if _, err := io.Copy(part, in.Content); err != nil {
		return fmt.Errorf("запись файла в multipart: %w", err)
	}

	if token := strings.TrimSpace(in.CaptchaToken); token != "" {
		if err := mw.WriteField("captcha_token", token); err != nil {
			return fmt.Errorf("запись captcha_token: %w", err)
		}
	}

	return mw.Close()
}

// CreateReport отправляет жалобу на файл.
// POST /api/v1/reports (JSON: slug, reason, email, captcha_token)
// Не-2xx ответ — *ReportFailedError.
func (c *Client) CreateReport(ctx context.Context, report model.ReportRequest, clientIP string) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("сериализация жалобы: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/reports", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("создание запроса CreateReport: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setForwardedFor(req, clientIP)
	c.setRequestID(ctx, req)

	started := time.Now()
	resp, err := c.httpClient.Do(req) //nolint:gosec // G704: URL из конфигурации
	if err != nil {
		observe(opCreateReport, 0, started)
		return fmt.Errorf("запрос CreateReport к %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	observe(opCreateReport, resp.StatusCode, started)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("files API отклонил жалобу",
			slog.String("slug", report.Slug),
			slog.Int("status", resp.StatusCode),
		)
		return &ReportFailedError{
			Status:  resp.StatusCode,
			Message: failureMessage(body, "Report failed", resp.StatusCode),
		}
	}

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	c.logger.Info("Жалоба отправлена", slog.String("slug", report.Slug))
	return nil
}

// setForwardedFor передаёт IP посетителя, чтобы API применял свои лимиты к нему.
func (c *Client) setForwardedFor(req *http.Request, clientIP string) {
	if clientIP != "" {
		req.Header.Set("X-Forwarded-For", clientIP)
	}
}

// setRequestID пробрасывает идентификатор входящего запроса.
func (c *Client) setRequestID(ctx context.Context, req *http.Request) {
	if id := middleware.GetRequestID(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}
}
