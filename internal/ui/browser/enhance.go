//go:build js && wasm

package browser

import (
	"fmt"
	"log/slog"
	"syscall/js"

	"github.com/minecrox/web-module/internal/ui/adslot"
	"github.com/minecrox/web-module/internal/ui/clipboard"
	"github.com/minecrox/web-module/internal/ui/layout"
	"github.com/minecrox/web-module/internal/ui/tabs"
	"github.com/minecrox/web-module/internal/upload"
)

const copyButtonSelector = "[data-copy-key]"

// EnhanceCopyButtons показывает кнопки копирования и подключает их к
// контроллеру. Клики обрабатываются делегированием на document, поэтому
// кнопки, появившиеся при смене вкладки, работают без повторной привязки.
func EnhanceCopyButtons(doc js.Value, logger *slog.Logger) *clipboard.Controller {
	ctrl := clipboard.New(NativeClipboard{}, LegacyCopier{}, clipboard.TimeScheduler{})

	ctrl.OnChange(func(copiedKey string) {
		for _, btn := range queryAll(doc, copyButtonSelector) {
			renderCopyButton(btn, copiedKey)
		}
	})
	showCopyButtons(doc, ctrl.CopiedKey())

	on(doc, "click", func(ev js.Value) {
		btn := ev.Get("target").Call("closest", copyButtonSelector)
		if !present(btn) {
			return
		}
		ev.Call("preventDefault")
		key, value := dataAttr(btn, "copy-key"), dataAttr(btn, "copy-value")
		// Запись начинается внутри жеста, ожидание промиса — в горутине
		finish := ctrl.Start(key, value)
		go func() {
			if !finish() {
				logger.Warn("Копирование не удалось", slog.String("key", key))
			}
		}()
	})
	return ctrl
}

// showCopyButtons снимает hidden с кнопок копирования.
func showCopyButtons(root js.Value, copiedKey string) {
	for _, btn := range queryAll(root, copyButtonSelector) {
		btn.Call("removeAttribute", "hidden")
		renderCopyButton(btn, copiedKey)
	}
}

func renderCopyButton(btn js.Value, copiedKey string) {
	copied := copiedKey != "" && dataAttr(btn, "copy-key") == copiedKey
	label := dataAttr(btn, "label-copy")
	if copied {
		label = dataAttr(btn, "label-copied")
	}
	btn.Set("textContent", label)
	btn.Get("classList").Call("toggle", "copied", copied)
}

// EnhanceTabs переключает вкладки узкой раскладки страницы файла без
// перезагрузки. Содержимое невыбранных вкладок хранится в <template data-tab>.
func EnhanceTabs(doc js.Value, copyCtrl *clipboard.Controller, logger *slog.Logger) {
	container := query(doc, "[data-file-tabs]")
	if !present(container) {
		return
	}
	panel := query(container, "[data-tab-panel]")
	if !present(panel) {
		return
	}

	initial := tabs.Initial
	for _, link := range queryAll(container, "[data-tab-link]") {
		if link.Get("classList").Call("contains", "active").Truthy() {
			initial, _ = tabs.Parse(dataAttr(link, "tab-link"))
		}
	}
	selector := tabs.NewSelectorAt(initial)

	current := initial
	selector.OnChange(func(next tabs.Tab) {
		tpl := query(container, fmt.Sprintf(`template[data-tab=%q]`, string(next)))
		if !present(tpl) {
			logger.Warn("Нет содержимого вкладки", slog.String("tab", string(next)))
			return
		}

		stash := Document().Call("createElement", "template")
		stash.Call("setAttribute", "data-tab", string(current))
		stash.Set("innerHTML", panel.Get("innerHTML"))
		container.Call("appendChild", stash)

		panel.Set("innerHTML", tpl.Get("innerHTML"))
		tpl.Call("remove")
		current = next

		for _, link := range queryAll(container, "[data-tab-link]") {
			active := dataAttr(link, "tab-link") == string(next)
			link.Get("classList").Call("toggle", "active", active)
			link.Call("setAttribute", "aria-selected", fmt.Sprint(active))
		}
		if copyCtrl != nil {
			showCopyButtons(panel, copyCtrl.CopiedKey())
		}
		replaceTabQuery(next)
	})

	on(container, "click", func(ev js.Value) {
		link := ev.Get("target").Call("closest", "[data-tab-link]")
		if !present(link) {
			return
		}
		ev.Call("preventDefault")
		tab, ok := tabs.Parse(dataAttr(link, "tab-link"))
		if !ok {
			return
		}
		if _, err := selector.Select(tab); err != nil {
			logger.Warn("Ошибка выбора вкладки", slog.String("error", err.Error()))
		}
	})
}

// replaceTabQuery обновляет ?tab= в адресной строке без новой записи истории.
func replaceTabQuery(tab tabs.Tab) {
	win := js.Global()
	url := js.Global().Get("URL").New(win.Get("location").Get("href"))
	if tab == tabs.Initial {
		url.Get("searchParams").Call("delete", "tab")
	} else {
		url.Get("searchParams").Call("set", "tab", string(tab))
	}
	win.Get("history").Call("replaceState", js.Null(), "", url.Call("toString"))
}

// EnhanceForms подключает предупреждение о расширении на форме загрузки
// и блокировку повторной отправки на формах загрузки и жалобы.
func EnhanceForms(doc js.Value) {
	if form := query(doc, "[data-upload-form]"); present(form) {
		enhanceAdvisory(form)
		lockOnSubmit(form)
	}
	if form := query(doc, "[data-report-form]"); present(form) {
		lockOnSubmit(form)
	}
}

// enhanceAdvisory показывает предупреждение при выборе файла не .zip
// и подключает кнопку его скрытия.
func enhanceAdvisory(form js.Value) {
	advisory := query(form, "[data-upload-advisory]")
	input := query(form, `input[type="file"]`)
	if !present(advisory) || !present(input) {
		return
	}

	var notice upload.ExtensionNotice
	render := func() { advisory.Set("hidden", !notice.Visible()) }

	on(input, "change", func(js.Value) {
		name := ""
		if files := input.Get("files"); present(files) && files.Length() > 0 {
			name = files.Index(0).Get("name").String()
		}
		notice.Select(name)
		render()
	})

	if dismiss := query(advisory, "[data-advisory-dismiss]"); present(dismiss) {
		dismiss.Call("removeAttribute", "hidden")
		on(dismiss, "click", func(js.Value) {
			notice.Dismiss()
			render()
		})
	}
}

// lockOnSubmit отключает кнопку отправки и меняет её подпись.
// Повторная отправка, пока страница не сменилась, отменяется.
// При возврате на страницу из bfcache форма снова доступна.
func lockOnSubmit(form js.Value) {
	var lock upload.SubmitLock
	btn := query(form, "[data-label-submitting]")
	label := ""
	if present(btn) {
		label = btn.Get("textContent").String()
	}

	on(form, "submit", func(ev js.Value) {
		if !lock.Acquire() {
			ev.Call("preventDefault")
			return
		}
		if present(btn) {
			// Отключение внутри обработчика submit отправку не отменяет
			btn.Set("disabled", true)
			btn.Set("textContent", dataAttr(btn, "label-submitting"))
			btn.Call("setAttribute", "aria-disabled", "true")
			btn.Get("classList").Call("add", "submitting")
		}
	})

	on(js.Global(), "pageshow", func(ev js.Value) {
		if !ev.Get("persisted").Truthy() {
			return
		}
		lock.Release()
		if present(btn) {
			btn.Set("disabled", false)
			btn.Set("textContent", label)
			btn.Call("removeAttribute", "aria-disabled")
			btn.Get("classList").Call("remove", "submitting")
		}
	})
}

// SyncHeaderHeight публикует высоту [data-app-header] в CSS-переменную
// layout.HeaderHeightVar на .app-shell.
func SyncHeaderHeight(doc js.Value) *layout.HeightSync {
	header := query(doc, "[data-app-header]")
	shell := query(doc, ".app-shell")
	if !present(header) || !present(shell) {
		return nil
	}

	hs := layout.NewHeightSync(NewResizeSource(header), func(px int) {
		shell.Get("style").Call("setProperty", layout.HeaderHeightVar, fmt.Sprintf("%dpx", px))
	})
	hs.Start()
	return hs
}

// RevealAdSlots показывает рекламные слоты при приближении к области видимости.
func RevealAdSlots(doc js.Value, logger *slog.Logger) []*adslot.Slot {
	var slots []*adslot.Slot
	for _, el := range queryAll(doc, "[data-ad-slot]") {
		slot := adslot.NewSlot(dataAttr(el, "ad-slot"))
		slot.Attach(NewIntersectionSource(el), func(placement string) {
			el.Get("classList").Call("add", "revealed")
			el.Call("setAttribute", "data-revealed", "true")
			logger.Debug("Рекламный слот показан", slog.String("placement", placement))
		})
		slots = append(slots, slot)
	}
	return slots
}
