// Пакет tabs — переключатель вкладок страницы файла в узкой раскладке.
//
// Вкладки взаимоисключающие: copy | stats | safety, начальная — copy.
// Широкая раскладка выводит все группы сразу и этим автоматом не управляется.
// Состояние не сохраняется между сессиями.
//
// Потокобезопасен через sync.RWMutex.
package tabs

import (
	"fmt"
	"sync"
)

// Tab — вкладка узкой раскладки.
type Tab string

const (
	// TabCopy — ссылка, SHA-1 и сниппет для копирования
	TabCopy Tab = "copy"
	// TabStats — скачивания, размер, даты
	TabStats Tab = "stats"
	// TabSafety — информация о проверке файла
	TabSafety Tab = "safety"
)

// Initial — вкладка по умолчанию.
const Initial = TabCopy

// All — вкладки в порядке отображения.
var All = []Tab{TabCopy, TabStats, TabSafety}

// validTabs — допустимые значения.
var validTabs = map[Tab]bool{
	TabCopy:   true,
	TabStats:  true,
	TabSafety: true,
}

// Parse разбирает значение вкладки (например, из ?tab=).
// Пустое или неизвестное значение — (Initial, false).
func Parse(raw string) (Tab, bool) {
	t := Tab(raw)
	if validTabs[t] {
		return t, true
	}
	return Initial, false
}

// Selector — автомат выбора вкладки.
type Selector struct {
	mu       sync.RWMutex
	current  Tab
	onChange func(Tab)
}

// NewSelector создаёт автомат с вкладкой Initial.
func NewSelector() *Selector {
	return &Selector{current: Initial}
}

// NewSelectorAt создаёт автомат с уже выбранной вкладкой t
// (вкладка, отрисованная сервером по ?tab=). Неизвестная вкладка — Initial.
func NewSelectorAt(t Tab) *Selector {
	if !validTabs[t] {
		t = Initial
	}
	return &Selector{current: t}
}

// OnChange задаёт обработчик смены вкладки (вызывается вне блокировки).
func (s *Selector) OnChange(fn func(Tab)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Current возвращает выбранную вкладку.
func (s *Selector) Current() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsSelected сообщает, выбрана ли вкладка.
func (s *Selector) IsSelected(t Tab) bool {
	return s.Current() == t
}

// Select выбирает вкладку. Выбор текущей вкладки ничего не меняет
// и возвращает changed == false. Неизвестная вкладка — ошибка.
func (s *Selector) Select(t Tab) (changed bool, err error) {
	if !validTabs[t] {
		return false, fmt.Errorf("недопустимая вкладка: %q", t)
	}

	s.mu.Lock()
	if s.current == t {
		s.mu.Unlock()
		return false, nil
	}
	s.current = t
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(t)
	}
	return true, nil
}
