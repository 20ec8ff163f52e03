// Package cards — leaderboard.go: карточка таблицы лидеров.
package cards

import (
	"fmt"

	"github.com/fogleman/gg"

	"ultimate-bot/internal/common"
)

const (
	leaderboardWidth     = 800
	leaderboardRowHeight = 70
	leaderboardHeader    = 100
)

// LeaderboardEntry — строка таблицы лидеров.
type LeaderboardEntry struct {
	Username string
	XP       int64
	Level    int
}

// LeaderboardCard рисует таблицу лидеров. Порядок строк задаёт вызывающий —
// рендерер ничего не сортирует. Пустой список — валидная карточка
// только с заголовком.
func (r *Renderer) LeaderboardCard(entries []LeaderboardEntry, title string) ([]byte, error) {
	height := leaderboardHeader + len(entries)*leaderboardRowHeight
	dc := gg.NewContext(leaderboardWidth, height)
	gradient(dc, leaderboardWidth, height, rgb{28, 28, 28})

	// Заголовок по центру
	dc.SetFontFace(r.titleFace)
	colorPrimary.set(dc)
	tw, _ := dc.MeasureString(title)
	dc.DrawString(title, (leaderboardWidth-tw)/2, 55)

	dc.SetRGB255(60, 60, 60)
	dc.SetLineWidth(2)
	dc.DrawLine(50, 80, leaderboardWidth-50, 80)
	dc.Stroke()

	y := float64(leaderboardHeader)
	for i, e := range entries {
		pos := i + 1

		// Топ-3 выделяем золотом, серебром и бронзой
		rankColor := colorSecondary
		switch pos {
		case 1:
			rankColor = colorGold
		case 2:
			rankColor = colorSilver
		case 3:
			rankColor = colorBronze
		}

		dc.SetFontFace(r.textFace)
		rankColor.set(dc)
		dc.DrawString(fmt.Sprintf("%d.", pos), 60, y+30)

		dc.SetRGB255(240, 240, 240)
		dc.DrawString(e.Username, 120, y+25)

		dc.SetFontFace(r.smallFace)
		colorSecondary.set(dc)
		dc.DrawString(fmt.Sprintf("Lvl %d", e.Level), 120, y+52)

		dc.SetFontFace(r.textFace)
		colorPrimary.set(dc)
		xpText := fmt.Sprintf("%s XP", common.FormatNumber(e.XP))
		xw, _ := dc.MeasureString(xpText)
		dc.DrawString(xpText, leaderboardWidth-xw-60, y+38)

		if i < len(entries)-1 {
			dc.SetRGB255(50, 50, 50)
			dc.SetLineWidth(1)
			dc.DrawLine(60, y+leaderboardRowHeight-10, leaderboardWidth-60, y+leaderboardRowHeight-10)
			dc.Stroke()
		}

		y += leaderboardRowHeight
	}

	r.stamp(dc, leaderboardWidth-200, float64(height)-15)
	return encode(dc)
}
