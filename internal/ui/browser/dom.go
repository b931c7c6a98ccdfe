//go:build js && wasm

package browser

import (
	"errors"
	"syscall/js"
)

// Document возвращает window.document.
func Document() js.Value {
	return js.Global().Get("document")
}

// queryAll возвращает элементы root, подходящие под selector.
func queryAll(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]js.Value, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list.Index(i))
	}
	return out
}

// query возвращает первый элемент или js.Null().
func query(root js.Value, selector string) js.Value {
	return root.Call("querySelector", selector)
}

// present сообщает, что значение не null и не undefined.
func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

// dataAttr читает data-атрибут (name без префикса data-).
func dataAttr(el js.Value, name string) string {
	v := el.Call("getAttribute", "data-"+name)
	if !present(v) {
		return ""
	}
	return v.String()
}

// on вешает обработчик события. Возвращает функцию снятия обработчика.
func on(target js.Value, event string, fn func(ev js.Value)) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	target.Call("addEventListener", event, cb)
	return func() {
		target.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

// watch подписывается на промис сразу и возвращает функцию ожидания.
// Ожидание вызывать только из горутины, не из JS-колбэка: иначе
// событийный цикл браузера блокируется.
func watch(promise js.Value) (wait func() error) {
	done := make(chan error, 1)

	then := js.FuncOf(func(js.Value, []js.Value) any {
		done <- nil
		return nil
	})
	catch := js.FuncOf(func(_ js.Value, args []js.Value) any {
		msg := "промис отклонён"
		if len(args) > 0 && present(args[0]) {
			msg = args[0].Call("toString").String()
		}
		done <- errors.New(msg)
		return nil
	})
	promise.Call("then", then, catch)

	return func() error {
		err := <-done
		then.Release()
		catch.Release()
		return err
	}
}
