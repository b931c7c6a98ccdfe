package model

// ResourcePackInfo — данные ресурс-пака из ответа на загрузку.
// Сниппет для страницы строится заново из записи файла, здесь он не нужен.
type ResourcePackInfo struct {
	DownloadURL string `json:"download_url"`
	SHA1        string `json:"sha1"`
}

// UploadCreated — ответ API на успешную загрузку.
// Обязательное поле — Slug. ID, LandingPageURL и ResourcePack попадают
// в журнал filesapi.CreateUpload.
type UploadCreated struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	LandingPageURL string            `json:"landing_page_url"`
	ResourcePack   *ResourcePackInfo `json:"resource_pack"`
}

// ReportRequest — тело POST /api/v1/reports.
// Email без значения сериализуется как null, пустой токен не отправляется.
type ReportRequest struct {
	Slug         string  `json:"slug"`
	Reason       string  `json:"reason"`
	Email        *string `json:"email"`
	CaptchaToken string  `json:"captcha_token,omitempty"`
}
