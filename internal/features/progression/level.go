// Package progression — level.go: формула уровня.
package progression

// XPPerLevel — фиксированная цена уровня. Уровень растёт каждые 1000 XP.
const XPPerLevel = 1000

// LevelForXP возвращает уровень для количества XP.
// level = xp/1000 + 1: LevelForXP(0) == 1, LevelForXP(999) == 1, LevelForXP(1000) == 2.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	return int(xp/XPPerLevel) + 1
}

// ProgressWithinLevel возвращает долю прогресса внутри текущего уровня [0, 1).
// Используется карточкой ранга для заливки прогресс-бара.
func ProgressWithinLevel(xp int64) float64 {
	if xp < 0 {
		return 0
	}
	return float64(xp%XPPerLevel) / float64(XPPerLevel)
}
