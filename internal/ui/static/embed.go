// Пакет static — встроенные статические ресурсы Web Module.
// CSS оболочки и страниц, JS-загрузчик wasm-клиента.
// wasm_exec.js и app.wasm сюда не входят: они раздаются из WM_WASM_DIR.
package static

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed css/*.css js/*.js
var content embed.FS

// FileSystem возвращает http.FileSystem для обработки запросов к /static/*.
func FileSystem() http.FileSystem {
	return http.FS(content)
}

// FS возвращает fs.FS для прямого доступа к встроенным файлам.
func FS() fs.FS {
	return content
}
