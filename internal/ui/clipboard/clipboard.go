// Пакет clipboard — контроллер копирования в буфер обмена с отметкой
// "скопировано" для конкретного поля.
//
// Копирование выполняется через нативный буфер обмена, при ошибке через
// legacy-механизм (скрытое текстовое поле + команда copy). Отметка снимается
// через ResetDelay, но только если за это время не было копирования другого
// поля: таймер сравнивает ключ, а не отменяет чужие таймеры.
//
// Ошибки буфера обмена наружу не выходят: Copy возвращает только признак успеха.
//
// Браузеры разрешают запись в буфер только внутри жеста пользователя.
// Start начинает запись синхронно (в обработчике клика), а ожидание
// результата выполняется возвращённой функцией finish уже вне обработчика.
package clipboard

import (
	"sync"
	"time"
)

// ResetDelay — через сколько снимается отметка "скопировано".
const ResetDelay = 1100 * time.Millisecond

// ClipboardWriter — нативная запись текста в буфер обмена.
type ClipboardWriter interface {
	WriteText(text string) error
}

// AsyncClipboardWriter — нативная запись, которая начинается сразу,
// а завершается позже (navigator.clipboard.writeText возвращает промис).
// Ошибка StartWriteText — запись не началась, например API недоступен.
type AsyncClipboardWriter interface {
	StartWriteText(text string) (wait func() error, err error)
}

// LegacyCopier — запасной путь копирования для старых браузеров.
// Реализация не должна оставлять видимых элементов и не должна забирать фокус.
type LegacyCopier interface {
	CopyText(text string) error
}

// Scheduler — отложенный вызов функции.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// TimeScheduler — Scheduler на таймерах рантайма Go.
type TimeScheduler struct{}

// AfterFunc вызывает fn через d в отдельной горутине.
func (TimeScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

// Controller — состояние copiedKey и операция Copy.
// Потокобезопасен через sync.Mutex.
type Controller struct {
	native    ClipboardWriter
	legacy    LegacyCopier
	scheduler Scheduler

	mu        sync.Mutex
	copiedKey string
	onChange  func(copiedKey string)
}

// New создаёт контроллер. native и legacy могут быть nil (путь пропускается).
// scheduler == nil — используется TimeScheduler.
func New(native ClipboardWriter, legacy LegacyCopier, scheduler Scheduler) *Controller {
	if scheduler == nil {
		scheduler = TimeScheduler{}
	}
	return &Controller{
		native:    native,
		legacy:    legacy,
		scheduler: scheduler,
	}
}

// OnChange задаёт обработчик изменения copiedKey ("" — отметки нет).
// Вызывается вне блокировки.
func (c *Controller) OnChange(fn func(copiedKey string)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// CopiedKey возвращает ключ поля с активной отметкой или "".
func (c *Controller) CopiedKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copiedKey
}

// IsCopied сообщает, отмечено ли поле key.
func (c *Controller) IsCopied(key string) bool {
	return c.CopiedKey() == key
}

// Copy копирует value и отмечает поле key.
// Возвращает false, если не сработал ни один путь копирования;
// в этом случае состояние не меняется.
func (c *Controller) Copy(key, value string) bool {
	return c.Start(key, value)()
}

// Start синхронно начинает копирование и возвращает finish, который
// дожидается результата и отмечает поле. Если native реализует
// AsyncClipboardWriter, до возврата из Start вызывается только
// StartWriteText. Если запись не началась, legacy-путь тоже выполняется
// внутри Start. finish может блокироваться: вызывать его вне обработчика
// события.
func (c *Controller) Start(key, value string) (finish func() bool) {
	if async, ok := c.native.(AsyncClipboardWriter); ok {
		if wait, err := async.StartWriteText(value); err == nil {
			return func() bool {
				if wait() == nil {
					c.markCopied(key)
					return true
				}
				return c.copyLegacy(key, value)
			}
		}
		done := c.copyLegacy(key, value)
		return func() bool { return done }
	}

	var done bool
	if c.native != nil && c.native.WriteText(value) == nil {
		c.markCopied(key)
		done = true
	} else {
		done = c.copyLegacy(key, value)
	}
	return func() bool { return done }
}

func (c *Controller) copyLegacy(key, value string) bool {
	if c.legacy == nil || c.legacy.CopyText(value) != nil {
		return false
	}
	c.markCopied(key)
	return true
}

// markCopied ставит отметку и планирует её снятие.
func (c *Controller) markCopied(key string) {
	c.set(key)
	c.scheduler.AfterFunc(ResetDelay, func() {
		c.clearIf(key)
	})
}

func (c *Controller) set(key string) {
	c.mu.Lock()
	c.copiedKey = key
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(key)
	}
}

// clearIf снимает отметку, только если она всё ещё у key.
func (c *Controller) clearIf(key string) {
	c.mu.Lock()
	if c.copiedKey != key {
		c.mu.Unlock()
		return
	}
	c.copiedKey = ""
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn("")
	}
}
