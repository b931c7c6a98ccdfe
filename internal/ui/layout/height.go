// Пакет layout — синхронизация высоты шапки сайта с общим состоянием раскладки.
//
// Высота шапки меняется при ресайзе окна и переносе текста. HeightSync
// измеряет её и публикует (CSS-переменная --app-header-h), чтобы
// fixed/sticky-блоки учитывали шапку. Публикация выполняется только при
// реальном изменении: иначе публикация вызывает перерасчёт, перерасчёт
// вызывает новое измерение, и так по кругу.
package layout

import (
	"math"
	"sync"
)

// DefaultHeaderHeight — высота шапки до первого измерения, px.
const DefaultHeaderHeight = 72

// HeaderHeightVar — CSS-переменная с высотой шапки.
const HeaderHeightVar = "--app-header-h"

// ElementSizeObserver — наблюдение за высотой элемента.
type ElementSizeObserver interface {
	// Height возвращает текущую высоту элемента в px.
	Height() float64
	// Observe вызывает fn при каждом изменении размера.
	// Возвращает функцию отключения наблюдения.
	Observe(fn func(height float64)) (stop func())
}

// HeightSync — измерение и публикация высоты шапки.
// Потокобезопасен через sync.Mutex.
type HeightSync struct {
	observer ElementSizeObserver
	publish  func(px int)

	mu        sync.Mutex
	published int
	stop      func()
}

// NewHeightSync создаёт синхронизатор с DefaultHeaderHeight.
// publish вызывается только при изменении опубликованного значения.
func NewHeightSync(observer ElementSizeObserver, publish func(px int)) *HeightSync {
	return &HeightSync{
		observer:  observer,
		publish:   publish,
		published: DefaultHeaderHeight,
	}
}

// Start выполняет первое измерение и подписывается на изменения.
// Повторный вызов без Stop ничего не делает.
func (h *HeightSync) Start() {
	h.mu.Lock()
	if h.stop != nil {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	h.Update(h.observer.Height())
	stop := h.observer.Observe(func(height float64) {
		h.Update(height)
	})

	h.mu.Lock()
	h.stop = stop
	h.mu.Unlock()
}

// Stop отключает наблюдение.
func (h *HeightSync) Stop() {
	h.mu.Lock()
	stop := h.stop
	h.stop = nil
	h.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// Height возвращает опубликованную высоту.
func (h *HeightSync) Height() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.published
}

// Update принимает измерение. Нулевая высота (элемент скрыт или ещё не
// отрисован), NaN, бесконечность и совпадение с опубликованным значением
// игнорируются.
// Возвращает true, если значение опубликовано.
func (h *HeightSync) Update(height float64) bool {
	if math.IsNaN(height) || math.IsInf(height, 0) || height <= 0 {
		return false
	}
	px := int(math.Round(height))

	h.mu.Lock()
	if px == h.published {
		h.mu.Unlock()
		return false
	}
	h.published = px
	h.mu.Unlock()

	if h.publish != nil {
		h.publish(px)
	}
	return true
}
