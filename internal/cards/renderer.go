// Package cards рисует PNG-карточки: ранг, таблица лидеров,
// предупреждение, бан. Карточки возвращаются байтовым буфером,
// без временных файлов и без обращения к файловой системе:
// шрифты — встроенные Go-шрифты.
//
// Каждая карточка — чистая функция от своих входов при фиксированном
// холсте и палитре, за вычетом отметки времени рендера.
package cards

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Палитра (цвета исходных карточек).
var (
	colorPrimary   = rgb{0, 150, 255}
	colorSecondary = rgb{200, 200, 200}
	colorText      = rgb{240, 240, 240}
	colorMuted     = rgb{100, 100, 100}

	colorGold   = rgb{255, 215, 0}
	colorSilver = rgb{192, 192, 192}
	colorBronze = rgb{205, 127, 50}
)

type rgb struct{ r, g, b int }

func (c rgb) set(dc *gg.Context) { dc.SetRGB255(c.r, c.g, c.b) }

// Renderer держит загруженные шрифты. Создаётся один раз при старте.
type Renderer struct {
	titleFace font.Face // 32px, жирный
	textFace  font.Face // 24px
	smallFace font.Face // 18px

	loc *time.Location
	now func() time.Time // подменяется в тестах
}

// NewRenderer парсит встроенные шрифты и создаёт рендерер.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга жирного шрифта: %w", err)
	}
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга шрифта: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Renderer{
		titleFace: truetype.NewFace(bold, &truetype.Options{Size: 32}),
		textFace:  truetype.NewFace(regular, &truetype.Options{Size: 24}),
		smallFace: truetype.NewFace(regular, &truetype.Options{Size: 18}),
		loc:       loc,
		now:       time.Now,
	}, nil
}

// gradient заливает фон вертикальным градиентом от base к base+20.
func gradient(dc *gg.Context, w, h int, base rgb) {
	for y := 0; y < h; y++ {
		shift := int(float64(y) / float64(h) * 20)
		dc.SetRGB255(base.r+shift, base.g+shift, base.b+shift)
		dc.DrawLine(0, float64(y), float64(w), float64(y))
		dc.Stroke()
	}
}

// stamp рисует отметку времени рендера в точке (x, y).
func (r *Renderer) stamp(dc *gg.Context, x, y float64) {
	dc.SetFontFace(r.smallFace)
	colorMuted.set(dc)
	dc.DrawString(r.now().In(r.loc).Format("2006-01-02 15:04"), x, y)
}

// encode кодирует холст в PNG-байты.
func encode(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("ошибка кодирования PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// roundedAvatar рисует аватар со скруглёнными углами и рамкой.
func roundedAvatar(dc *gg.Context, avatar image.Image, x, y, size, radius float64) {
	// Рамка
	colorPrimary.set(dc)
	dc.DrawRoundedRectangle(x-5, y-5, size+10, size+10, radius+5)
	dc.Fill()

	dc.Push()
	dc.DrawRoundedRectangle(x, y, size, size, radius)
	dc.Clip()
	dc.DrawImage(scaleImage(avatar, int(size)), int(x), int(y))
	dc.ResetClip()
	dc.Pop()
}

// scaleImage приводит изображение к квадрату size×size.
func scaleImage(src image.Image, size int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
