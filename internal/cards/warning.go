// Package cards — warning.go: карточка предупреждения.
package cards

import (
	"fmt"

	"github.com/fogleman/gg"
)

const (
	warningCardWidth  = 700
	warningCardHeight = 300
)

// WarningCard рисует карточку предупреждения. Причина переносится
// по фиксированной ширине колонки, чтобы не вылезать за холст.
// maxWarns — политика вызывающего, журнал предупреждений её не навязывает.
func (r *Renderer) WarningCard(username, reason string, warns, maxWarns int) ([]byte, error) {
	dc := gg.NewContext(warningCardWidth, warningCardHeight)
	dc.SetRGB255(40, 0, 0)
	dc.Clear()

	accent := rgb{255, 100, 100}

	// Значок предупреждения: круг с восклицательным знаком
	accent.set(dc)
	dc.SetLineWidth(5)
	dc.DrawCircle(65, 65, 35)
	dc.Stroke()
	dc.DrawLine(65, 50, 65, 80)
	dc.Stroke()
	dc.DrawCircle(65, 90, 5)
	dc.Fill()

	dc.SetFontFace(r.titleFace)
	dc.DrawString("WARNING ISSUED", 120, 70)

	dc.SetFontFace(r.textFace)
	colorText.set(dc)
	dc.DrawString(fmt.Sprintf("User: %s", username), 120, 115)

	for i, line := range WrapText(reason, reasonWrapWidth) {
		dc.DrawString(line, 120, 165+float64(i)*30)
	}

	// Счётчик предупреждений
	accent.set(dc)
	warnText := fmt.Sprintf("Warnings: %d/%d", warns, maxWarns)
	ww, _ := dc.MeasureString(warnText)
	dc.DrawString(warnText, warningCardWidth-ww-40, warningCardHeight-50)

	// Рамка
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(10, 10, warningCardWidth-20, warningCardHeight-20, 15)
	dc.Stroke()

	return encode(dc)
}
