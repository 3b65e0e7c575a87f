package scoring

import (
	"strconv"
)

// ResolveID — детерминированный id для активности, у которой нет нативного.
// seen — счётчик уже выданных в текущем проходе базовых id: одинаковые кортежи
// в одной пачке получают суффиксы base_1, base_2 и т.д.
//
// Один и тот же кортеж (имя, название, дистанция, тип) в разных синках даёт
// один и тот же базовый id — на этом держится слияние по id.
func ResolveID(athlete, title string, distance float64, rawType string, seen map[string]int) string {
	base := hashID(athlete + "|" + title + "|" + formatDistance(distance) + "|" + rawType)
	n := seen[base]
	seen[base] = n + 1
	if n > 0 {
		return base + "_" + strconv.Itoa(n)
	}
	return base
}

// hashID — 32-битный кольцевой хэш (h*31 + код символа с переполнением int32).
// Сознательно некриптографический: коллизия двух разных активностей молча
// считается дублем. Менять схему нельзя без миграции уже сохранённых id.
func hashID(s string) string {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 10)
}

// formatDistance — кратчайшая десятичная запись, чтобы 5200.0 и 5200 давали
// одинаковую строку и, значит, одинаковый хэш.
func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
