// Package cards — rank.go: карточка ранга с прогресс-баром.
package cards

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// Геометрия карточки ранга.
const (
	rankCardWidth  = 800
	rankCardHeight = 250

	// Цена уровня. Знаменатель прогресс-бара фиксирован,
	// поэтому деления на ноль быть не может.
	xpPerLevel = 1000
)

// RankCardInput — входы карточки ранга.
type RankCardInput struct {
	Username string
	XP       int64
	Level    int
	Rank     int
	Avatar   image.Image // опционально, nil — без аватара
}

// RankCard рисует карточку ранга и возвращает PNG-байты.
// Заполнение прогресс-бара — (xp mod 1000)/1000, обрезанное в [0, 1].
func (r *Renderer) RankCard(in RankCardInput) ([]byte, error) {
	dc := gg.NewContext(rankCardWidth, rankCardHeight)
	gradient(dc, rankCardWidth, rankCardHeight, rgb{36, 36, 36})

	textX := 30.0
	if in.Avatar != nil {
		roundedAvatar(dc, in.Avatar, 30, (rankCardHeight-150)/2, 150, 25)
		textX = 200
	}

	// Имя
	dc.SetFontFace(r.titleFace)
	dc.SetRGB255(255, 255, 255)
	dc.DrawString(in.Username, textX, 60)

	// Уровень и ранг справа
	dc.SetFontFace(r.textFace)
	colorPrimary.set(dc)
	levelText := fmt.Sprintf("LEVEL %d", in.Level)
	lw, _ := dc.MeasureString(levelText)
	dc.DrawString(levelText, rankCardWidth-lw-40, 55)

	colorSecondary.set(dc)
	rankText := fmt.Sprintf("#%d", in.Rank)
	rw, _ := dc.MeasureString(rankText)
	dc.DrawString(rankText, rankCardWidth-rw-40, 95)

	// Прогресс-бар
	progress := float64(in.XP%xpPerLevel) / float64(xpPerLevel)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	barY := 120.0
	barW := rankCardWidth - 40 - textX
	dc.SetRGB255(50, 50, 50)
	dc.DrawRoundedRectangle(textX, barY, barW, 20, 10)
	dc.Fill()

	if fill := barW * progress; fill > 0 {
		colorPrimary.set(dc)
		dc.DrawRoundedRectangle(textX, barY, fill, 20, 10)
		dc.Fill()
	}

	// Подпись над баром
	dc.SetFontFace(r.smallFace)
	colorSecondary.set(dc)
	xpText := fmt.Sprintf("%d/%d XP (%.1f%%)", in.XP%xpPerLevel, xpPerLevel, progress*100)
	xw, _ := dc.MeasureString(xpText)
	dc.DrawString(xpText, textX+(barW-xw)/2, barY-10)

	// Разделительная линия
	dc.SetRGB255(60, 60, 60)
	dc.SetLineWidth(2)
	dc.DrawLine(textX, 170, rankCardWidth-40, 170)
	dc.Stroke()

	r.stamp(dc, rankCardWidth-150, rankCardHeight-15)
	return encode(dc)
}
