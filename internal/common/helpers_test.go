package common

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1 000"},
		{2350, "2 350"},
		{1000000, "1 000 000"},
		{1234567, "1 234 567"},
		{-2350, "-2 350"},
	}

	for _, c := range cases {
		if got := FormatNumber(c.n); got != c.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestSameDateAcrossMidnight(t *testing.T) {
	loc := time.UTC
	evening := time.Date(2024, 6, 1, 23, 59, 0, 0, loc)
	morning := time.Date(2024, 6, 2, 0, 1, 0, 0, loc)

	if SameDate(evening, morning, loc) {
		t.Error("23:59 и 00:01 следующего дня — разные календарные даты")
	}
	if !SameDate(evening, evening.Add(-time.Hour), loc) {
		t.Error("моменты одного дня должны совпадать по дате")
	}
}

// Дата зависит от пояса: один и тот же момент может быть
// "вчера" в UTC и "сегодня" восточнее.
func TestDateInRespectsLocation(t *testing.T) {
	tokyo := time.FixedZone("UTC+9", 9*60*60)
	moment := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC) // в Токио уже 2 июня

	utcDate := DateIn(moment, time.UTC)
	tokyoDate := DateIn(moment, tokyo)

	if utcDate.Day() != 1 {
		t.Errorf("дата в UTC: день %d, want 1", utcDate.Day())
	}
	if tokyoDate.Day() != 2 {
		t.Errorf("дата в UTC+9: день %d, want 2", tokyoDate.Day())
	}
}
