// data.go — данные для шаблонов страниц.
package pages

import (
	"html/template"

	"github.com/minecrox/web-module/internal/domain/model"
)

// Meta — общие данные layout: SEO-метаданные и параметры оболочки.
type Meta struct {
	// Title — заголовок страницы (пусто — ключ site.title)
	Title string
	// Description — meta description (пусто — ключ site.description)
	Description string
	// CanonicalURL — абсолютный URL страницы
	CanonicalURL string
	// NoIndex — meta robots noindex,nofollow
	NoIndex bool
	// OGType — og:type (пусто — website)
	OGType string
	// JSONLD — готовый JSON-LD для <script type="application/ld+json">
	JSONLD template.JS
	// WasmEnabled — подключать wasm-клиент
	WasmEnabled bool
	// TurnstileSiteKey — ключ виджета капчи (пусто — виджет не подключается)
	TurnstileSiteKey string
	// CurrentPath — путь страницы для переключателя языка и навигации
	CurrentPath string
	// PublicAPIBase — публичная база API (ссылка на документацию)
	PublicAPIBase string
}

// FAQEntry — вопрос и ответ (ключи перевода).
type FAQEntry struct {
	Question string
	Answer   string
}

// HomeFAQ — вопросы главной страницы.
var HomeFAQ = []FAQEntry{
	{Question: "home.faq.q1", Answer: "home.faq.a1"},
	{Question: "home.faq.q2", Answer: "home.faq.a2"},
	{Question: "home.faq.q3", Answer: "home.faq.a3"},
	{Question: "home.faq.q4", Answer: "home.faq.a4"},
}

// HomeData — главная страница.
type HomeData struct {
	Meta
	FAQ []FAQEntry
}

// StaticData — статические страницы, 404 и страница ошибки.
type StaticData struct {
	Meta
	// Message — текст ошибки (только для страницы ошибки)
	Message model.UserMessage
}

// Badge — бейдж страницы файла.
type Badge struct {
	Text string
}

// TabLink — кнопка вкладки узкой раскладки.
type TabLink struct {
	ID       string
	LabelKey string
	Href     string
	Active   bool
}

// CopyField — поле с кнопкой копирования.
type CopyField struct {
	// Key — идентификатор поля для контроллера копирования
	Key string
	// LabelKey — ключ перевода подписи
	LabelKey string
	// Value — копируемое значение
	Value string
	// Multiline — выводить как <textarea>
	Multiline bool
}

// FileData — страница файла.
type FileData struct {
	Meta

	Filename string
	Slug     string
	Badges   []Badge
	// FileDescription — описание файла (пусто — блок не выводится).
	// Meta.Description при этом остаётся описанием для meta/og.
	FileDescription string
	Tags            []string

	DownloadURL string
	CopyFields  []CopyField

	Downloads string
	Size      string
	Uploaded  string
	Expires   string

	// ActiveTab — выбранная вкладка узкой раскладки
	ActiveTab string
	// Tabs — вкладки узкой раскладки
	Tabs []TabLink
	// ReportURL — ссылка на форму жалобы с подставленным slug
	ReportURL string
}

// UploadData — страница загрузки.
type UploadData struct {
	Meta

	// CaptchaRequired — капча обязательна (виджет подключён)
	CaptchaRequired bool
	// CaptchaToken — введённый токен (режим без виджета)
	CaptchaToken string
	// Filename — имя последнего выбранного файла
	Filename string
	// Advisory — предупреждение о расширении файла
	Advisory bool
	// Error — сообщение об ошибке (пусто — нет ошибки)
	Error model.UserMessage
	// MaxUploadSize — лимит размера, отформатированный
	MaxUploadSize string
}

// ReportData — страница жалобы.
type ReportData struct {
	Meta

	CaptchaRequired bool
	CaptchaToken    string

	Slug   string
	Reason string
	Email  string

	// Sent — жалоба успешно отправлена
	Sent bool
	// Error — сообщение об ошибке
	Error model.UserMessage
}
