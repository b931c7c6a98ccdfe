//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/minecrox/web-module/internal/ui/adslot"
)

// ResizeSource — layout.ElementSizeObserver поверх ResizeObserver.
// Без ResizeObserver следит за событием resize окна.
type ResizeSource struct {
	el js.Value
}

// NewResizeSource создаёт наблюдателя за высотой el.
func NewResizeSource(el js.Value) *ResizeSource {
	return &ResizeSource{el: el}
}

// Height возвращает высоту элемента по getBoundingClientRect.
func (s *ResizeSource) Height() float64 {
	return s.el.Call("getBoundingClientRect").Get("height").Float()
}

// Observe вызывает fn при изменении размера элемента.
func (s *ResizeSource) Observe(fn func(height float64)) func() {
	ctor := js.Global().Get("ResizeObserver")
	if !present(ctor) {
		return on(js.Global(), "resize", func(js.Value) { fn(s.Height()) })
	}

	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn(s.Height())
		return nil
	})
	observer := ctor.New(cb)
	observer.Call("observe", s.el)
	return func() {
		observer.Call("disconnect")
		cb.Release()
	}
}

// IntersectionSource — adslot.IntersectionSource поверх
// IntersectionObserver с запасом adslot.RootMargin.
type IntersectionSource struct {
	el js.Value
}

// NewIntersectionSource создаёт источник видимости для el.
func NewIntersectionSource(el js.Value) *IntersectionSource {
	return &IntersectionSource{el: el}
}

// Observe вызывает fn с признаком пересечения области видимости.
// Без IntersectionObserver элемент сразу считается видимым.
func (s *IntersectionSource) Observe(fn func(intersecting bool)) func() {
	ctor := js.Global().Get("IntersectionObserver")
	if !present(ctor) {
		fn(true)
		return func() {}
	}

	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			fn(entries.Index(i).Get("isIntersecting").Truthy())
		}
		return nil
	})
	options := js.Global().Get("Object").New()
	options.Set("rootMargin", adslot.RootMargin)
	observer := ctor.New(cb, options)
	observer.Call("observe", s.el)
	return func() {
		observer.Call("disconnect")
		cb.Release()
	}
}
