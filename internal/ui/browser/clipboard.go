//go:build js && wasm

package browser

import (
	"errors"
	"syscall/js"
)

// NativeClipboard — clipboard.AsyncClipboardWriter поверх navigator.clipboard.
type NativeClipboard struct{}

// StartWriteText вызывает navigator.clipboard.writeText сразу, пока
// действует жест пользователя. API отсутствует вне защищённого
// контекста (http) — тогда ошибка и запись не начинается.
func (NativeClipboard) StartWriteText(text string) (func() error, error) {
	cb := js.Global().Get("navigator").Get("clipboard")
	if !present(cb) || cb.Get("writeText").Type() != js.TypeFunction {
		return nil, errors.New("navigator.clipboard недоступен")
	}
	return watch(cb.Call("writeText", text)), nil
}

// WriteText записывает text и дожидается результата.
func (n NativeClipboard) WriteText(text string) error {
	wait, err := n.StartWriteText(text)
	if err != nil {
		return err
	}
	return wait()
}

// LegacyCopier — clipboard.LegacyCopier через скрытое поле и
// document.execCommand("copy").
type LegacyCopier struct{}

// CopyText копирует text через временное readonly-поле за пределами
// экрана. Поле удаляется сразу, фокус возвращается прежнему элементу.
func (LegacyCopier) CopyText(text string) error {
	doc := Document()
	body := doc.Get("body")
	if !present(body) {
		return errors.New("document.body недоступен")
	}
	active := doc.Get("activeElement")

	area := doc.Call("createElement", "textarea")
	area.Set("value", text)
	area.Call("setAttribute", "readonly", "")
	style := area.Get("style")
	style.Set("position", "fixed")
	style.Set("top", "0")
	style.Set("left", "-9999px")
	style.Set("opacity", "0")
	body.Call("appendChild", area)

	area.Call("select")
	ok := doc.Call("execCommand", "copy").Truthy()
	area.Call("remove")

	if present(active) && active.Get("focus").Type() == js.TypeFunction {
		active.Call("focus")
	}
	if !ok {
		return errors.New("execCommand(copy) отклонён")
	}
	return nil
}
