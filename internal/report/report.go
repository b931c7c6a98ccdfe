// Пакет report — сценарий отправки жалобы на файл.
// Переходы: idle → sending → (sent | error).
package report

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/filesapi"
)

// Ограничения полей (совпадают со схемой files API).
const (
	MaxSlugLen   = 255
	MinReasonLen = 3
	MaxReasonLen = 2000
	MaxEmailLen  = 320
)

// Ошибки локальной проверки.
var (
	ErrSlugRequired    = errors.New("не указан slug")
	ErrSlugTooLong     = errors.New("slug слишком длинный")
	ErrReasonTooShort  = errors.New("причина слишком короткая")
	ErrReasonTooLong   = errors.New("причина слишком длинная")
	ErrEmailTooLong    = errors.New("email слишком длинный")
	ErrEmailInvalid    = errors.New("некорректный email")
	ErrCaptchaRequired = errors.New("не пройдена проверка captcha")
	ErrBusy            = errors.New("жалоба уже отправляется")
)

// Status — состояние формы жалобы.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusSending Status = "sending"
	StatusSent    Status = "sent"
	StatusError   Status = "error"
)

// Reporter — отправка жалобы во внешний API.
type Reporter interface {
	CreateReport(ctx context.Context, report model.ReportRequest, clientIP string) error
}

// Form — поля формы жалобы.
type Form struct {
	Slug         string
	Reason       string
	Email        string
	CaptchaToken string

	mu     sync.Mutex
	status Status
}

// Status возвращает текущее состояние формы.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == "" {
		return StatusIdle
	}
	return f.status
}

func (f *Form) set(s Status) {
	f.mu.Lock()
	f.status = s
	f.mu.Unlock()
}

// begin переводит форму в sending. Повторная отправка до завершения — ErrBusy.
func (f *Form) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusSending {
		return ErrBusy
	}
	f.status = StatusSending
	return nil
}

// Validate проверяет поля формы. Длины считаются в символах.
func Validate(slug, reason, email string) error {
	slug = strings.TrimSpace(slug)
	reason = strings.TrimSpace(reason)
	email = strings.TrimSpace(email)

	switch {
	case slug == "":
		return ErrSlugRequired
	case utf8.RuneCountInString(slug) > MaxSlugLen:
		return ErrSlugTooLong
	case utf8.RuneCountInString(reason) < MinReasonLen:
		return ErrReasonTooShort
	case utf8.RuneCountInString(reason) > MaxReasonLen:
		return ErrReasonTooLong
	case utf8.RuneCountInString(email) > MaxEmailLen:
		return ErrEmailTooLong
	case email != "" && !strings.Contains(email, "@"):
		return ErrEmailInvalid
	}
	return nil
}

// Workflow выполняет отправку жалоб.
type Workflow struct {
	api             Reporter
	captchaRequired bool
	logger          *slog.Logger
}

// NewWorkflow создаёт сценарий жалобы.
func NewWorkflow(api Reporter, captchaRequired bool, logger *slog.Logger) *Workflow {
	return &Workflow{
		api:             api,
		captchaRequired: captchaRequired,
		logger:          logger.With(slog.String("component", "report")),
	}
}

// CaptchaRequired сообщает, включён ли anti-bot виджет.
func (w *Workflow) CaptchaRequired() bool {
	return w.captchaRequired
}

// Submit проверяет форму и отправляет жалобу.
// Ошибка проверки не приводит к запросу в API.
func (w *Workflow) Submit(ctx context.Context, f *Form, clientIP string) error {
	if f.Status() == StatusSending {
		return ErrBusy
	}
	if err := Validate(f.Slug, f.Reason, f.Email); err != nil {
		f.set(StatusError)
		return err
	}
	token := strings.TrimSpace(f.CaptchaToken)
	if w.captchaRequired && token == "" {
		f.set(StatusError)
		return ErrCaptchaRequired
	}

	if err := f.begin(); err != nil {
		return err
	}

	req := model.ReportRequest{
		Slug:         strings.TrimSpace(f.Slug),
		Reason:       strings.TrimSpace(f.Reason),
		CaptchaToken: token,
	}
	if email := strings.TrimSpace(f.Email); email != "" {
		req.Email = &email
	}

	if err := w.api.CreateReport(ctx, req, clientIP); err != nil {
		f.set(StatusError)
		w.logger.Warn("Жалоба не отправлена",
			slog.String("slug", req.Slug),
			slog.String("error", err.Error()),
		)
		return err
	}

	f.set(StatusSent)
	return nil
}

// DisplayMessage приводит ошибку сценария к сообщению для пользователя.
func DisplayMessage(err error) model.UserMessage {
	var failed *filesapi.ReportFailedError
	switch {
	case err == nil:
		return model.UserMessage{}
	case errors.Is(err, ErrSlugRequired):
		return model.UserMessage{Key: "report.error.slug_required"}
	case errors.Is(err, ErrSlugTooLong):
		return model.UserMessage{Key: "report.error.slug_too_long"}
	case errors.Is(err, ErrReasonTooShort):
		return model.UserMessage{Key: "report.error.reason_too_short"}
	case errors.Is(err, ErrReasonTooLong):
		return model.UserMessage{Key: "report.error.reason_too_long"}
	case errors.Is(err, ErrEmailTooLong), errors.Is(err, ErrEmailInvalid):
		return model.UserMessage{Key: "report.error.email_invalid"}
	case errors.Is(err, ErrCaptchaRequired):
		return model.UserMessage{Key: "report.error.captcha_required"}
	case errors.Is(err, ErrBusy):
		return model.UserMessage{Key: "report.error.busy"}
	case errors.As(err, &failed):
		return model.UserMessage{Text: failed.Message}
	default:
		return model.UserMessage{Key: "report.error.generic"}
	}
}
