// Пакет browser — адаптеры клиентских пакетов (clipboard, layout, tabs,
// adslot, upload) к DOM через syscall/js и привязка их к разметке страниц.
//
// Собирается только под GOOS=js GOARCH=wasm. Страницы полностью работают
// без wasm-клиента: он лишь добавляет копирование, переключение вкладок
// без перезагрузки и ленивые рекламные слоты.
package browser
