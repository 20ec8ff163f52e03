// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: работа с календарными датами и форматирование чисел.
package common

import (
	"fmt"
	"time"
)

// DateIn возвращает календарную дату момента t в поясе loc (время обнулено).
// Ежедневный бонус сравнивает именно даты, а не скользящие 24 часа:
// получить бонус в 23:59 и снова в 00:01 — допустимое поведение.
func DateIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Today возвращает сегодняшнюю календарную дату в поясе loc.
func Today(loc *time.Location) time.Time {
	return DateIn(time.Now(), loc)
}

// SameDate сравнивает два момента как календарные даты в поясе loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	return DateIn(a, loc).Equal(DateIn(b, loc))
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04".
// Используется для подписей на карточках и в /info.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02.01.2006 15:04")
}

// FormatNumber форматирует число с разделителями тысяч (пробелами).
// Пример: FormatNumber(2350) → "2 350"
func FormatNumber(n int64) string {
	// Простая реализация для чисел до миллиарда
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	// Рекурсивно добавляем разделители
	rest := n / 1000
	last := n % 1000

	if rest > 0 {
		return fmt.Sprintf("%s %03d", FormatNumber(rest), last)
	}
	return fmt.Sprintf("%d", last)
}
