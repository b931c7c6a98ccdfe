// Пакет service — бизнес-логика Web Module.
// ArtifactService — производные артефакты записи файла (download URL, сниппет
// server.properties) с memo по (slug, sha1, base).
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/minecrox/web-module/internal/apibase"
	"github.com/minecrox/web-module/internal/domain/model"
)

// Prometheus-метрики memo артефактов.
var (
	artifactHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wm_artifact_cache_hits_total",
		Help: "Общее количество попаданий в memo производных артефактов.",
	})
	artifactMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wm_artifact_cache_misses_total",
		Help: "Общее количество промахов memo производных артефактов.",
	})
)

// artifactTTL ограничивает время жизни записи memo. Значения детерминированы,
// TTL нужен только чтобы не держать артефакты давно не открывавшихся файлов.
const artifactTTL = time.Hour

// Artifacts — производные данные для копирования и скачивания.
// Не изменяется после создания.
type Artifacts struct {
	// DownloadURL — <public base>/download/<encoded slug>
	DownloadURL string
	// SHA1 — hex SHA-1 из записи, как есть
	SHA1 string
	// ServerConfigSnippet — две строки для server.properties
	ServerConfigSnippet string
}

// DownloadURL строит ссылку на подписанное скачивание.
// Slug кодируется целиком как один сегмент пути.
func DownloadURL(publicBase, slug string) string {
	return strings.TrimRight(publicBase, "/") + "/download/" + apibase.EncodeComponent(slug)
}

// ServerConfigSnippet строит сниппет server.properties.
// URL и хэш подставляются как есть.
func ServerConfigSnippet(downloadURL, sha1 string) string {
	return "resource-pack=" + downloadURL + "\nresource-pack-sha1=" + sha1
}

// ArtifactService вычисляет и кэширует артефакты.
// Сами записи файлов не кэшируются: в memo только значения, которые
// полностью определяются ключом (slug, sha1, base).
type ArtifactService struct {
	publicBase string
	cache      *expirable.LRU[string, *Artifacts]
}

// NewArtifactService создаёт сервис.
// publicBase — публичный базовый URL API (ссылки уходят в браузер).
// maxSize — максимальное количество записей memo.
func NewArtifactService(publicBase string, maxSize int) *ArtifactService {
	return &ArtifactService{
		publicBase: strings.TrimRight(publicBase, "/"),
		cache:      expirable.NewLRU[string, *Artifacts](maxSize, nil, artifactTTL),
	}
}

// PublicBase возвращает базовый URL, от которого строятся ссылки.
func (s *ArtifactService) PublicBase() string {
	return s.publicBase
}

// Derive возвращает артефакты для записи. Для одинаковых (slug, sha1, base)
// возвращается тот же *Artifacts, пока запись есть в memo.
func (s *ArtifactService) Derive(f *model.FileRecord) *Artifacts {
	key := artifactKey(f.Slug, f.SHA1Hash, s.publicBase)

	if a, ok := s.cache.Get(key); ok {
		artifactHitsTotal.Inc()
		return a
	}
	artifactMissesTotal.Inc()

	url := DownloadURL(s.publicBase, f.Slug)
	a := &Artifacts{
		DownloadURL:         url,
		SHA1:                f.SHA1Hash,
		ServerConfigSnippet: ServerConfigSnippet(url, f.SHA1Hash),
	}
	s.cache.Add(key, a)
	return a
}

// artifactKey — ключ memo. Разделитель \x00 не встречается в slug, hex и URL.
func artifactKey(slug, sha1, base string) string {
	return slug + "\x00" + sha1 + "\x00" + base
}
