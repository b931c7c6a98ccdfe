//go:build js && wasm

// web-client — wasm-клиент страниц MineCrox.
//
// Собирается в /static/wasm/app.wasm (GOOS=js GOARCH=wasm) и загружается
// static/js/loader.js. Добавляет копирование, переключение вкладок,
// синхронизацию высоты шапки и ленивые рекламные слоты.
package main

import (
	"log/slog"
	"os"

	"github.com/minecrox/web-module/internal/ui/browser"
)

func main() {
	// Вывод wasm_exec.js направляет в консоль браузера
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	doc := browser.Document()

	copyCtrl := browser.EnhanceCopyButtons(doc, logger)
	browser.EnhanceTabs(doc, copyCtrl, logger)
	browser.EnhanceForms(doc)
	browser.SyncHeaderHeight(doc)
	slots := browser.RevealAdSlots(doc, logger)

	logger.Debug("wasm-клиент запущен", slog.Int("ad_slots", len(slots)))

	// Обработчики событий живут, пока работает main
	select {}
}
