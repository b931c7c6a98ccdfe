// Пакет upload — сценарий загрузки файла.
//
// Переходы: idle → submitting → (succeeded | failed).
// Проверка расширения выполняется до отправки и носит рекомендательный
// характер: предупреждение показывается, но загрузка не блокируется.
// Флаг submitting снимается при любом исходе, включая панику в клиенте API.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/minecrox/web-module/internal/apibase"
	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/filesapi"
)

// AllowedExtensions — расширения, которые принимает files API.
var AllowedExtensions = []string{".zip"}

// Ошибки локальной проверки.
var (
	// ErrNoFile — файл не выбран, запрос в API не отправляется.
	ErrNoFile = errors.New("файл не выбран")
	// ErrCaptchaRequired — включён anti-bot виджет, но токен пуст.
	ErrCaptchaRequired = errors.New("не пройдена проверка captcha")
	// ErrBusy — предыдущая отправка этой формы ещё не завершилась.
	ErrBusy = errors.New("загрузка уже выполняется")
)

// Status — состояние отправки.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Uploader — пересылка файла во внешний API.
type Uploader interface {
	CreateUpload(ctx context.Context, in filesapi.UploadInput) (*model.UploadCreated, error)
}

// File — выбранный файл.
type File struct {
	Name    string
	Content io.Reader
}

// HasAllowedExtension проверяет расширение без учёта регистра.
func HasAllowedExtension(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, ext := range AllowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ExtensionNotice — предупреждение о расширении на форме загрузки.
// Показывается при выборе файла с неподходящим расширением, пользователь
// может его скрыть. Выбор следующего файла оценивается заново.
// На отправку не влияет.
type ExtensionNotice struct {
	mu      sync.Mutex
	visible bool
}

// Select оценивает выбранный файл. Пустое имя (выбор отменён) скрывает
// предупреждение. Возвращает новое состояние видимости.
func (n *ExtensionNotice) Select(filename string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = strings.TrimSpace(filename) != "" && !HasAllowedExtension(filename)
	return n.visible
}

// Dismiss скрывает предупреждение до следующего выбора файла.
func (n *ExtensionNotice) Dismiss() {
	n.mu.Lock()
	n.visible = false
	n.mu.Unlock()
}

// Visible сообщает, показано ли предупреждение.
func (n *ExtensionNotice) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// SubmitLock не даёт отправить форму повторно, пока идёт отправка.
type SubmitLock struct {
	mu   sync.Mutex
	held bool
}

// Acquire захватывает блокировку. false — отправка уже идёт.
func (l *SubmitLock) Acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held {
		return false
	}
	l.held = true
	return true
}

// Release снимает блокировку (страница вернулась из bfcache).
func (l *SubmitLock) Release() {
	l.mu.Lock()
	l.held = false
	l.mu.Unlock()
}

// Submission — эфемерное состояние одной формы загрузки.
// Не сохраняется, отбрасывается после перехода на страницу файла.
type Submission struct {
	File         *File
	CaptchaToken string

	mu      sync.Mutex
	status  Status
	lastErr error
}

// Status возвращает текущее состояние.
func (s *Submission) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == "" {
		return StatusIdle
	}
	return s.status
}

// LastError возвращает ошибку последней неудачной отправки.
func (s *Submission) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Advisory сообщает, нужно ли показать предупреждение о расширении.
func (s *Submission) Advisory() bool {
	return s.File != nil && !HasAllowedExtension(s.File.Name)
}

// begin переводит форму в submitting. Повторный вызов до finish — ErrBusy.
func (s *Submission) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSubmitting {
		return ErrBusy
	}
	s.status = StatusSubmitting
	s.lastErr = nil
	return nil
}

// finish фиксирует исход. err == nil — успех.
func (s *Submission) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusFailed
		s.lastErr = err
		return
	}
	s.status = StatusSucceeded
}

// fail фиксирует ошибку локальной проверки без перехода в submitting.
func (s *Submission) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSubmitting {
		return ErrBusy
	}
	s.status = StatusFailed
	s.lastErr = err
	return err
}

// Result — результат успешной загрузки.
type Result struct {
	// Slug — slug новой записи
	Slug string
	// Location — адрес страницы файла для полного перехода (редиректа)
	Location string
}

// Workflow выполняет отправку формы загрузки.
type Workflow struct {
	api             Uploader
	captchaRequired bool
	logger          *slog.Logger
}

// NewWorkflow создаёт сценарий загрузки.
// captchaRequired — anti-bot виджет включён, пустой токен блокирует отправку.
func NewWorkflow(api Uploader, captchaRequired bool, logger *slog.Logger) *Workflow {
	return &Workflow{
		api:             api,
		captchaRequired: captchaRequired,
		logger:          logger.With(slog.String("component", "upload")),
	}
}

// CaptchaRequired сообщает, включён ли anti-bot виджет.
func (w *Workflow) CaptchaRequired() bool {
	return w.captchaRequired
}

// Submit проверяет форму и пересылает файл.
// Без файла и без обязательного токена запрос в API не отправляется.
func (w *Workflow) Submit(ctx context.Context, sub *Submission, clientIP string) (res *Result, err error) {
	if sub.File == nil || sub.File.Content == nil {
		return nil, sub.fail(ErrNoFile)
	}
	token := strings.TrimSpace(sub.CaptchaToken)
	if w.captchaRequired && token == "" {
		return nil, sub.fail(ErrCaptchaRequired)
	}

	if sub.Advisory() {
		w.logger.Debug("Расширение файла не из списка разрешённых, отправка продолжается",
			slog.String("filename", sub.File.Name),
		)
	}

	if err := sub.begin(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("паника при загрузке: %v", r)
			res = nil
		}
		sub.finish(err)
	}()

	created, err := w.api.CreateUpload(ctx, filesapi.UploadInput{
		Filename:     sub.File.Name,
		Content:      sub.File.Content,
		CaptchaToken: token,
		ClientIP:     clientIP,
	})
	if err != nil {
		w.logger.Warn("Загрузка не выполнена",
			slog.String("filename", sub.File.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return &Result{
		Slug:     created.Slug,
		Location: "/files/" + apibase.EncodeComponent(created.Slug),
	}, nil
}

// DisplayMessage приводит любую ошибку сценария к сообщению для пользователя.
// Ответ API показывается как есть, сетевые ошибки и ошибки разбора —
// общим текстом.
func DisplayMessage(err error) model.UserMessage {
	var failed *filesapi.UploadFailedError
	switch {
	case err == nil:
		return model.UserMessage{}
	case errors.Is(err, ErrNoFile):
		return model.UserMessage{Key: "upload.error.no_file"}
	case errors.Is(err, ErrCaptchaRequired):
		return model.UserMessage{Key: "upload.error.captcha_required"}
	case errors.Is(err, ErrBusy):
		return model.UserMessage{Key: "upload.error.busy"}
	case errors.As(err, &failed):
		return model.UserMessage{Text: failed.Message}
	default:
		return model.UserMessage{Key: "upload.error.generic"}
	}
}
