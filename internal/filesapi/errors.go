package filesapi

import (
	"errors"
	"fmt"
)

// ErrNotFound — files API не вернул запись по slug (любой не-2xx ответ).
// Вызывающий код показывает страницу 404 и не повторяет запрос.
var ErrNotFound = errors.New("файл не найден")

// UploadFailedError — files API отклонил загрузку.
// Message — тело ответа как есть или "Upload failed (<status>)", если тело пустое.
type UploadFailedError struct {
	Status  int
	Message string
}

func (e *UploadFailedError) Error() string {
	return e.Message
}

// ReportFailedError — files API отклонил жалобу.
// Message — тело ответа как есть или "Report failed (<status>)".
type ReportFailedError struct {
	Status  int
	Message string
}

func (e *ReportFailedError) Error() string {
	return e.Message
}

// failureMessage возвращает тело ответа или стандартный текст со статусом.
func failureMessage(body []byte, prefix string, status int) string {
	if len(body) > 0 {
		return string(body)
	}
	return fmt.Sprintf("%s (%d)", prefix, status)
}
