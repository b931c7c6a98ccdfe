// Пакет pages — страницы Web Module.
//
// Шаблоны (html/template) встроены через go:embed и отдаются как
// templ.Component: обработчики вызывают pages.X(data).Render(ctx, w).
// Переводы подставляются функциями t/tf/msg, привязанными к ctx запроса.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/minecrox/web-module/internal/domain/model"
	"github.com/minecrox/web-module/internal/ui/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// Общие шаблоны, подключаемые к каждой странице.
var sharedTemplates = []string{"templates/layout.html", "templates/partials.html"}

// Имена страниц (файл templates/<name>.html определяет блок "content").
const (
	pageHome     = "home"
	pageFile     = "file"
	pageUpload   = "upload"
	pageReport   = "report"
	pageTerms    = "terms"
	pageDMCA     = "dmca"
	pageNotFound = "not_found"
	pageError    = "error"
)

// placeholderFuncs — заглушки функций на этапе разбора.
// При рендере заменяются функциями, привязанными к контексту запроса.
var placeholderFuncs = template.FuncMap{
	"t":    func(key string) string { return key },
	"tf":   func(key string, _ ...any) string { return key },
	"msg":  func(model.UserMessage) string { return "" },
	"lang": func() string { return i18n.DefaultLang },
}

// compiled — разобранные наборы шаблонов по имени страницы.
// Наборы не исполняются напрямую, только через Clone.
var compiled = mustCompile(pageHome, pageFile, pageUpload, pageReport, pageTerms, pageDMCA, pageNotFound, pageError)

func mustCompile(names ...string) map[string]*template.Template {
	sets := make(map[string]*template.Template, len(names))
	for _, name := range names {
		files := append([]string{"templates/" + name + ".html"}, sharedTemplates...)
		sets[name] = template.Must(
			template.New(name).Funcs(placeholderFuncs).ParseFS(templateFS, files...),
		)
	}
	return sets
}

// requestFuncs — функции шаблона для конкретного запроса.
func requestFuncs(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"t":    func(key string) string { return i18n.T(ctx, key) },
		"tf":   func(key string, args ...any) string { return i18n.Tf(ctx, key, args...) },
		"msg":  func(m model.UserMessage) string { return i18n.Message(ctx, m) },
		"lang": func() string { return i18n.LangFromContext(ctx) },
	}
}

// component возвращает templ.Component, рендерящий страницу name с data.
func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		set, ok := compiled[name]
		if !ok {
			return fmt.Errorf("неизвестная страница %q", name)
		}

		tmpl, err := set.Clone()
		if err != nil {
			return fmt.Errorf("клонирование шаблона %s: %w", name, err)
		}

		if err := tmpl.Funcs(requestFuncs(ctx)).ExecuteTemplate(w, "layout", data); err != nil {
			return fmt.Errorf("рендеринг страницы %s: %w", name, err)
		}
		return nil
	})
}

// Home — главная страница.
func Home(data HomeData) templ.Component { return component(pageHome, data) }

// File — страница файла.
func File(data FileData) templ.Component { return component(pageFile, data) }

// Upload — страница загрузки.
func Upload(data UploadData) templ.Component { return component(pageUpload, data) }

// Report — страница жалобы.
func Report(data ReportData) templ.Component { return component(pageReport, data) }

// Terms — условия использования.
func Terms(data StaticData) templ.Component { return component(pageTerms, data) }

// DMCA — страница DMCA.
func DMCA(data StaticData) templ.Component { return component(pageDMCA, data) }

// NotFound — страница 404.
func NotFound(data StaticData) templ.Component { return component(pageNotFound, data) }

// Error — страница ошибки (files API недоступен и т.п.).
func Error(data StaticData) templ.Component { return component(pageError, data) }
