package tabs

import (
	"sync"
	"testing"
)

// TestSelector_Initial проверяет начальную вкладку.
func TestSelector_Initial(t *testing.T) {
	s := NewSelector()
	if s.Current() != TabCopy {
		t.Errorf("Current() = %q, ожидалась copy", s.Current())
	}
}

// TestSelector_SingleSelection проверяет, что выбрана ровно одна вкладка.
func TestSelector_SingleSelection(t *testing.T) {
	s := NewSelector()

	for _, target := range []Tab{TabStats, TabSafety, TabCopy, TabSafety} {
		if _, err := s.Select(target); err != nil {
			t.Fatalf("Select(%q): %v", target, err)
		}

		selected := 0
		for _, tab := range All {
			if s.IsSelected(tab) {
				selected++
			}
		}
		if selected != 1 {
			t.Errorf("после Select(%q) выбрано %d вкладок, ожидалась 1", target, selected)
		}
		if s.Current() != target {
			t.Errorf("Current() = %q, ожидалась %q", s.Current(), target)
		}
	}
}

// TestSelector_SameTabIsNoop проверяет, что повторный выбор ничего не меняет.
func TestSelector_SameTabIsNoop(t *testing.T) {
	s := NewSelector()
	calls := 0
	s.OnChange(func(Tab) { calls++ })

	changed, err := s.Select(TabCopy)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if changed {
		t.Error("Select(текущая) вернул changed = true")
	}
	if calls != 0 {
		t.Errorf("OnChange вызван %d раз, ожидалось 0", calls)
	}

	if changed, _ := s.Select(TabStats); !changed {
		t.Error("Select(stats) вернул changed = false")
	}
	if changed, _ := s.Select(TabStats); changed {
		t.Error("повторный Select(stats) вернул changed = true")
	}
	if calls != 1 {
		t.Errorf("OnChange вызван %d раз, ожидался 1", calls)
	}
}

// TestSelector_InvalidTab проверяет отказ для неизвестной вкладки.
func TestSelector_InvalidTab(t *testing.T) {
	s := NewSelector()
	if _, err := s.Select(Tab("files")); err == nil {
		t.Error("Select(files): ожидалась ошибка")
	}
	if s.Current() != TabCopy {
		t.Errorf("Current() = %q после ошибки, ожидалась copy", s.Current())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Tab
		ok   bool
	}{
		{"copy", TabCopy, true},
		{"stats", TabStats, true},
		{"safety", TabSafety, true},
		{"", TabCopy, false},
		{"STATS", TabCopy, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Parse(%q) = (%q, %v), ожидалось (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// TestSelector_Concurrent проверяет потокобезопасность.
func TestSelector_Concurrent(t *testing.T) {
	s := NewSelector()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Select(All[i%len(All)])
			_ = s.Current()
		}(i)
	}
	wg.Wait()

	if _, ok := Parse(string(s.Current())); !ok {
		t.Errorf("Current() = %q, недопустимое значение", s.Current())
	}
}

func TestNewSelectorAt(t *testing.T) {
	tests := []struct {
		in   Tab
		want Tab
	}{
		{TabStats, TabStats},
		{TabSafety, TabSafety},
		{Tab("unknown"), Initial},
		{Tab(""), Initial},
	}
	for _, tt := range tests {
		if got := NewSelectorAt(tt.in).Current(); got != tt.want {
			t.Errorf("NewSelectorAt(%q).Current() = %q, ожидалась %q", tt.in, got, tt.want)
		}
	}

	s := NewSelectorAt(TabStats)
	if changed, err := s.Select(TabStats); changed || err != nil {
		t.Errorf("повторный выбор начальной вкладки: changed=%v, err=%v", changed, err)
	}
}
