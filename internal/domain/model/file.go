// Пакет model — доменные модели Web Module.
// FileRecord — публичная запись файла из files API (owned by external API).
package model

import "strings"

// MaxDisplayTags — максимальное количество тегов на странице файла.
const MaxDisplayTags = 8

// FileRecord — публичные метаданные файла.
// Web Module использует модель только для чтения и не изменяет её в рамках рендера:
// счётчики и expire_at меняются только на стороне API и видны только после нового запроса.
//
// Временные метки хранятся как строки в исходном виде: API отдаёт их
// без смещения, нормализация к UTC выполняется при отображении (format.ShortDate).
type FileRecord struct {
	// ID — непрозрачный идентификатор, назначается хранилищем
	ID string `json:"id"`
	// Filename — отображаемое имя, не обязательно уникальное
	Filename string `json:"filename"`
	// Slug — URL-безопасный уникальный ключ поиска, неизменяемый
	Slug string `json:"slug"`
	// FileType — категория для бейджа (значения не интерпретируются)
	FileType string `json:"file_type"`
	// MinecraftVersion — версия Minecraft (nil — неприменимо)
	MinecraftVersion *string `json:"minecraft_version"`
	// Loader — загрузчик модов (nil — неприменимо)
	Loader *string `json:"loader"`
	// Description — описание (nil — блок не выводится)
	Description *string `json:"description"`
	// Tags — теги через запятую (опционально)
	Tags *string `json:"tags"`
	// FileSize — размер в байтах
	FileSize int64 `json:"file_size"`
	// SHA1Hash — hex SHA-1 загруженного файла, используется как есть
	SHA1Hash string `json:"sha1_hash"`
	// DownloadCount — счётчик скачиваний (монотонно не убывает)
	DownloadCount int64 `json:"download_count"`
	// CreatedAt — время загрузки
	CreatedAt string `json:"created_at"`
	// LastDownload — время последнего скачивания (опционально)
	LastDownload *string `json:"last_download"`
	// ExpireAt — время истечения, продлевается сервером при скачивании
	ExpireAt string `json:"expire_at"`
}

// DisplayTags возвращает теги для отображения: разбиение по запятой,
// trim, без пустых и повторов, не более MaxDisplayTags.
// Исходное значение Tags не изменяется.
func (f *FileRecord) DisplayTags() []string {
	if f.Tags == nil {
		return nil
	}

	parts := strings.Split(*f.Tags, ",")
	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, MaxDisplayTags)
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) == MaxDisplayTags {
			break
		}
	}
	return tags
}

// HasDescription сообщает, есть ли непустое описание.
func (f *FileRecord) HasDescription() bool {
	return f.Description != nil && strings.TrimSpace(*f.Description) != ""
}
