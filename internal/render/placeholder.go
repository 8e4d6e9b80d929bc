package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func drawPlaceholder(dst *image.RGBA, style Style) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(style.PlaceholderBackground), image.Point{}, draw.Src)
	if style.Placeholder == "" {
		return
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(style.PlaceholderText),
		Face: face,
	}
	m := face.Metrics()
	width := d.MeasureString(style.Placeholder).Ceil()
	x := b.Min.X + (b.Dx()-width)/2
	y := b.Min.Y + (b.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	d.Dot = fixed.P(x, y)
	d.DrawString(style.Placeholder)
}
