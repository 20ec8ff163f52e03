// Package cards — wrap.go: перенос текста по фиксированной ширине колонки.
package cards

import "strings"

// reasonWrapWidth — ширина колонки для причины на карточках предупреждения и бана.
const reasonWrapWidth = 40

// WrapText разбивает текст на строки не длиннее width символов (рун).
// Слова длиннее width режутся жёстко, чтобы строка не вылезла за холст.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var line []rune
	for _, w := range words {
		runes := []rune(w)

		// Слишком длинное слово режем на куски
		for len(runes) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}

		switch {
		case len(line) == 0:
			line = runes
		case len(line)+1+len(runes) <= width:
			line = append(line, ' ')
			line = append(line, runes...)
		default:
			lines = append(lines, string(line))
			line = runes
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
