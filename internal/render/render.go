// Package render paints the annotation surface: the background image (or a
// placeholder) and the smoothed curves with their shadows and handles.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"palmlines/internal/curve"
	"palmlines/internal/surface"
	"palmlines/pkg/colorutil"
	"palmlines/pkg/geometry"
)

// ErrNoSurface is returned when there is nothing to paint into.
var ErrNoSurface = errors.New("render: no drawing surface")

// Style controls how curves and the placeholder look.
type Style struct {
	StrokeWidth  float64
	HandleRadius float64
	OutlineWidth float64
	// HandleOutline is the ring around each handle. The zero value picks
	// black or white per curve for contrast.
	HandleOutline color.RGBA

	ShadowColor  color.RGBA
	ShadowBlur   int
	ShadowOffset geometry.Point

	Placeholder           string
	PlaceholderBackground color.RGBA
	PlaceholderText       color.RGBA
}

// DefaultStyle returns the stock look.
func DefaultStyle() Style {
	return Style{
		StrokeWidth:           3,
		HandleRadius:          6,
		OutlineWidth:          2,
		HandleOutline:         colorutil.White,
		ShadowColor:           colorutil.WithAlpha(colorutil.Black, 128),
		ShadowBlur:            3,
		ShadowOffset:          geometry.Pt(1, 2),
		Placeholder:           "Load a palm photo to begin",
		PlaceholderBackground: colorutil.Gray,
		PlaceholderText:       color.RGBA{0x55, 0x55, 0x55, 0xff},
	}
}

// NewTarget allocates a transparent RGBA buffer matching s.
func NewTarget(s surface.Surface) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
}

// Stretch scales img to exactly fill s. When the sizes already match the
// pixels are copied unchanged.
func Stretch(img image.Image, s surface.Surface) *image.RGBA {
	dst := NewTarget(s)
	paintImage(dst, img)
	return dst
}

func paintImage(dst *image.RGBA, img image.Image) {
	sb := img.Bounds()
	db := dst.Bounds()
	if sb.Dx() == db.Dx() && sb.Dy() == db.Dy() {
		xdraw.Draw(dst, db, img, sb.Min, xdraw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, db, img, sb, xdraw.Src, nil)
}

// Render repaints dst from scratch. img may be nil, in which case the
// placeholder is drawn and curves are skipped. Identical inputs produce
// identical pixels.
func Render(dst *image.RGBA, img image.Image, set *curve.Set, showLines bool, style Style) error {
	if dst == nil || dst.Bounds().Empty() {
		return ErrNoSurface
	}
	b := dst.Bounds()
	draw.Draw(dst, b, image.Transparent, image.Point{}, draw.Src)

	if img == nil {
		drawPlaceholder(dst, style)
		return nil
	}
	paintImage(dst, img)

	if !showLines || set == nil {
		return nil
	}

	var shadow *image.RGBA
	if style.ShadowColor.A > 0 {
		shadow = image.NewRGBA(b)
	}
	set.Each(func(c curve.Curve) {
		if !c.Visible || len(c.Points) == 0 {
			return
		}
		path := SmoothPath(c.Points)
		if shadow != nil {
			drawShadow(dst, shadow, c.Points, path, style)
		}
		strokePath(dst, path, geometry.Point{}, style.StrokeWidth, c.Color)

		outline := style.HandleOutline
		if outline == (color.RGBA{}) {
			outline = colorutil.Contrast(c.Color)
		}
		for _, p := range c.Points {
			fillCircle(dst, p, style.HandleRadius, c.Color, outline, style.OutlineWidth)
		}
	})
	return nil
}

// drawShadow strokes path into the scratch layer at the shadow offset, blurs
// the touched region and composites it onto dst. The region
// is cleared again so the layer can be reused for the next curve.
func drawShadow(dst, layer *image.RGBA, points []geometry.Point, path Path, style Style) {
	region := pathRegion(points, style.ShadowOffset, style.StrokeWidth, style.ShadowBlur, layer.Bounds())
	if region.Empty() {
		return
	}
	strokePath(layer, path, style.ShadowOffset, style.StrokeWidth, style.ShadowColor)
	boxBlur(layer, region, style.ShadowBlur)
	draw.Draw(dst, region, layer, region.Min, draw.Over)
	draw.Draw(layer, region, image.Transparent, image.Point{}, draw.Src)
}
