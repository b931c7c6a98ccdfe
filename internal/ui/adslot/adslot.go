// Пакет adslot — рекламные слоты с отложенным показом.
// Слот остаётся пустым до первого пересечения с областью видимости
// (с запасом RootMargin) и после этого уже не скрывается.
package adslot

import "sync"

// RootMargin — запас области видимости для IntersectionObserver.
const RootMargin = "200px"

// Места размещения слотов.
const (
	FileSidebar     = "file-sidebar"
	FileUnderSafety = "file-under-safety"
	UploadSidebar   = "upload-sidebar"
	UploadBelowRule = "upload-below-rules"
	SiteBelowFooter = "site-below-footer"
)

// Placements — все места размещения.
var Placements = []string{FileSidebar, FileUnderSafety, UploadSidebar, UploadBelowRule, SiteBelowFooter}

// IntersectionSource — источник событий пересечения элемента с областью видимости.
type IntersectionSource interface {
	// Observe вызывает fn при каждом изменении пересечения.
	// Возвращает функцию отключения наблюдения.
	Observe(fn func(intersecting bool)) (stop func())
}

// Slot — состояние одного слота.
// Потокобезопасен через sync.Mutex.
type Slot struct {
	placement string

	mu       sync.Mutex
	visible  bool
	stop     func()
	onReveal func(placement string)
}

// NewSlot создаёт скрытый слот.
func NewSlot(placement string) *Slot {
	return &Slot{placement: placement}
}

// Placement возвращает место размещения.
func (s *Slot) Placement() string {
	return s.placement
}

// Visible сообщает, показан ли слот.
func (s *Slot) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Attach подписывает слот на источник. onReveal вызывается один раз при показе.
func (s *Slot) Attach(src IntersectionSource, onReveal func(placement string)) {
	s.mu.Lock()
	s.onReveal = onReveal
	s.mu.Unlock()

	stop := src.Observe(func(intersecting bool) {
		s.Notify(intersecting)
	})

	s.mu.Lock()
	if s.visible {
		// Показ случился во время подписки
		s.mu.Unlock()
		stop()
		return
	}
	s.stop = stop
	s.mu.Unlock()
}

// Notify принимает событие пересечения. Возвращает true при переходе
// скрыт → показан. После показа события игнорируются, наблюдение отключается.
func (s *Slot) Notify(intersecting bool) bool {
	if !intersecting {
		return false
	}

	s.mu.Lock()
	if s.visible {
		s.mu.Unlock()
		return false
	}
	s.visible = true
	stop, fn := s.stop, s.onReveal
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	if fn != nil {
		fn(s.placement)
	}
	return true
}
