package model

// UserMessage — сообщение об ошибке для показа пользователю.
// Text — готовый текст (например, ответ API как есть), иначе Key — ключ
// i18n-каталога, который переводится при рендере.
type UserMessage struct {
	Key  string
	Text string
}

// IsZero сообщает, что сообщения нет.
func (m UserMessage) IsZero() bool {
	return m.Key == "" && m.Text == ""
}
