// Пакет format — преобразование размеров и временных меток в строки для отображения.
// Все функции тотальные: некорректный вход даёт Placeholder, а не ошибку.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Placeholder — значение для отсутствующих или некорректных данных.
const Placeholder = "—"

// byteUnits — единицы измерения по порядку, шаг 1024.
var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes форматирует количество байт: "512 B", "1 KB", "1.5 MB".
// B и KB — без дробной части, начиная с MB — один знак после точки.
// Для NaN, ±Inf и отрицательных значений возвращает Placeholder.
func Bytes(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return Placeholder
	}

	value := n
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	precision := 1
	if unit <= 1 {
		precision = 0
	}

	return fixed(value, precision) + " " + byteUnits[unit]
}

// fixed округляет половину от нуля (как toFixed в браузере) и форматирует
// с заданным числом знаков.
func fixed(v float64, precision int) string {
	scale := math.Pow(10, float64(precision))
	return strconv.FormatFloat(math.Round(v*scale)/scale, 'f', precision, 64)
}

// shortDateLayout — фиксированный формат вывода (en-US, UTC): "Jan 02, 2006".
const shortDateLayout = "Jan 02, 2006"

// zoneSuffix определяет явную зону: Z/z в строке или смещение ±hh:mm в конце.
var zoneSuffix = regexp.MustCompile(`[zZ]|[+-]\d{2}:\d{2}$`)

// Форматы с явной зоной.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// Форматы без зоны — интерпретируются как UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ShortDate форматирует ISO-временную метку как "Mon DD, YYYY" в UTC.
// Метки без зоны считаются UTC, поэтому одинаковые моменты с явным
// смещением и без него выводятся одинаково.
// nil, пустая строка и нераспознанный формат дают Placeholder.
func ShortDate(iso *string) string {
	if iso == nil {
		return Placeholder
	}
	t, ok := ParseTimestamp(*iso)
	if !ok {
		return Placeholder
	}
	return t.UTC().Format(shortDateLayout)
}

// ParseTimestamp разбирает временную метку files API.
// Пробел между датой и временем допускается; метка без зоны трактуется как UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if len(raw) > 10 && raw[10] == ' ' {
		raw = raw[:10] + "T" + raw[11:]
	}

	if zoneSuffix.MatchString(raw) {
		for _, layout := range zonedLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
