// Package cards — ban.go: карточка бана.
package cards

import (
	"fmt"

	"github.com/fogleman/gg"
)

const (
	banNoticeWidth  = 700
	banNoticeHeight = 350
)

// BanNotice рисует уведомление о бане: крест, имя, причина с переносом,
// кто забанил и отметка времени.
func (r *Renderer) BanNotice(username, reason, admin string) ([]byte, error) {
	dc := gg.NewContext(banNoticeWidth, banNoticeHeight)
	dc.SetRGB255(50, 0, 0)
	dc.Clear()

	accent := rgb{255, 50, 50}

	// Крест
	accent.set(dc)
	dc.SetLineWidth(10)
	dc.DrawLine(50, 50, 150, 150)
	dc.Stroke()
	dc.DrawLine(150, 50, 50, 150)
	dc.Stroke()

	dc.SetFontFace(r.titleFace)
	dc.DrawString("ACCOUNT BANNED", 180, 90)

	dc.SetFontFace(r.textFace)
	colorText.set(dc)
	dc.DrawString(fmt.Sprintf("User: %s", username), 180, 140)

	dc.DrawString("Reason:", 180, 190)
	for i, line := range WrapText(reason, reasonWrapWidth) {
		dc.DrawString(line, 180, 220+float64(i)*30)
	}

	dc.DrawString(fmt.Sprintf("Banned by: %s", admin), 180, banNoticeHeight-60)

	r.stamp(dc, banNoticeWidth-250, banNoticeHeight-35)

	// Рамка
	accent.set(dc)
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(10, 10, banNoticeWidth-20, banNoticeHeight-20, 15)
	dc.Stroke()

	return encode(dc)
}
