package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmlines/internal/curve"
	"palmlines/internal/surface"
	"palmlines/pkg/colorutil"
	"palmlines/pkg/geometry"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func assertNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 2, "red")
	assert.InDelta(t, want.G, got.G, 2, "green")
	assert.InDelta(t, want.B, got.B, 2, "blue")
	assert.InDelta(t, want.A, got.A, 2, "alpha")
}

func defaultSet(t *testing.T, s surface.Surface) *curve.Set {
	t.Helper()
	set, err := curve.NewSet(curve.DefaultDefinitions(), s.Size())
	require.NoError(t, err)
	return set
}

func TestSmoothPath(t *testing.T) {
	assert.Empty(t, SmoothPath(nil).Segments)

	two := []geometry.Point{geometry.Pt(0, 0), geometry.Pt(10, 0)}
	p := SmoothPath(two)
	require.Len(t, p.Segments, 1)
	assert.False(t, p.Segments[0].Quad)
	assert.Equal(t, geometry.Pt(10, 0), p.End())

	five := []geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(10, 10), geometry.Pt(20, 0), geometry.Pt(30, 10), geometry.Pt(40, 0),
	}
	p = SmoothPath(five)
	assert.Equal(t, five[0], p.Start)
	assert.Equal(t, five[4], p.End())
	require.Len(t, p.Segments, 3)
	for i, seg := range p.Segments {
		assert.True(t, seg.Quad)
		assert.Equal(t, five[i+1], seg.Control, "segment %d bends through point %d", i, i+1)
	}
	assert.Equal(t, geometry.Pt(15, 5), p.Segments[0].End)
	assert.Equal(t, geometry.Pt(25, 5), p.Segments[1].End)

	three := five[:3]
	p = SmoothPath(three)
	require.Len(t, p.Segments, 1)
	assert.Equal(t, three[1], p.Segments[0].Control)
	assert.Equal(t, three[2], p.End())
}

func TestRender_NoSurface(t *testing.T) {
	assert.ErrorIs(t, Render(nil, nil, nil, true, DefaultStyle()), ErrNoSurface)
	assert.ErrorIs(t, Render(&image.RGBA{}, nil, nil, true, DefaultStyle()), ErrNoSurface)
}

func TestRender_Deterministic(t *testing.T) {
	s := surface.New(120, 90)
	img := solid(240, 180, color.RGBA{200, 160, 140, 255})

	a, b := NewTarget(s), NewTarget(s)
	require.NoError(t, Render(a, img, defaultSet(t, s), true, DefaultStyle()))
	require.NoError(t, Render(b, img, defaultSet(t, s), true, DefaultStyle()))
	assert.True(t, bytes.Equal(a.Pix, b.Pix))

	// repainting over a dirty buffer gives the same result
	require.NoError(t, Render(a, img, defaultSet(t, s), true, DefaultStyle()))
	assert.True(t, bytes.Equal(a.Pix, b.Pix))
}

func TestRender_LinesDrawnOnlyWhenShown(t *testing.T) {
	s := surface.New(120, 90)
	bg := color.RGBA{200, 160, 140, 255}
	img := solid(120, 90, bg)
	set := defaultSet(t, s)

	hidden := NewTarget(s)
	require.NoError(t, Render(hidden, img, set, false, DefaultStyle()))
	assert.True(t, bytes.Equal(img.Pix, hidden.Pix), "same-size image is copied as is")

	shown := NewTarget(s)
	require.NoError(t, Render(shown, img, set, true, DefaultStyle()))
	assert.False(t, bytes.Equal(img.Pix, shown.Pix))

	// a handle centre takes the curve color
	heart, _ := set.Get("heart")
	c := heart.Points[2]
	assertNear(t, colorutil.Red, shown.RGBAAt(int(c.X), int(c.Y)))
}

func TestRender_TranslucentStroke(t *testing.T) {
	red, err := colorutil.ParseHex("#FF000080")
	require.NoError(t, err)
	defs := []curve.Definition{{
		Name:     "test",
		Color:    red,
		Visible:  true,
		Defaults: []geometry.Point{geometry.Pt(0.1, 0.5), geometry.Pt(0.9, 0.5)},
	}}
	s := surface.New(100, 20)
	set, err := curve.NewSet(defs, s.Size())
	require.NoError(t, err)

	style := DefaultStyle()
	style.ShadowColor = color.RGBA{}
	dst := NewTarget(s)
	require.NoError(t, Render(dst, solid(100, 20, colorutil.White), set, true, style))

	assertNear(t, color.RGBA{R: 255, G: 127, B: 127, A: 255}, dst.RGBAAt(50, 10))
}

func TestRender_InvisibleCurveSkipped(t *testing.T) {
	s := surface.New(120, 90)
	img := solid(120, 90, color.RGBA{200, 160, 140, 255})
	set := defaultSet(t, s)
	for _, name := range set.Names() {
		require.NoError(t, set.SetVisible(name, false))
	}

	dst := NewTarget(s)
	require.NoError(t, Render(dst, img, set, true, DefaultStyle()))
	assert.True(t, bytes.Equal(img.Pix, dst.Pix))
}

func TestRender_Placeholder(t *testing.T) {
	s := surface.New(300, 100)
	style := DefaultStyle()
	dst := NewTarget(s)
	require.NoError(t, Render(dst, nil, defaultSet(t, s), true, style))

	assert.Equal(t, style.PlaceholderBackground, dst.RGBAAt(0, 0))
	assert.Equal(t, style.PlaceholderBackground, dst.RGBAAt(299, 99))

	var text int
	for y := 0; y < 100; y++ {
		for x := 0; x < 300; x++ {
			if dst.RGBAAt(x, y) != style.PlaceholderBackground {
				text++
			}
		}
	}
	assert.Positive(t, text, "caption is drawn")

	style.Placeholder = ""
	require.NoError(t, Render(dst, nil, nil, true, style))
	assert.True(t, bytes.Equal(solid(300, 100, style.PlaceholderBackground).Pix, dst.Pix))
}

func TestStretch(t *testing.T) {
	img := solid(40, 20, colorutil.Blue)
	out := Stretch(img, surface.New(20, 10))
	assert.Equal(t, image.Rect(0, 0, 20, 10), out.Bounds())
	assertNear(t, colorutil.Blue, out.RGBAAt(10, 5))
}

func TestBoxBlur_Spreads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	img.SetRGBA(4, 4, color.RGBA{0, 0, 0, 225})

	boxBlur(img, img.Bounds(), 1)
	assert.Equal(t, uint8(25), img.RGBAAt(4, 4).A)
	assert.Equal(t, uint8(25), img.RGBAAt(3, 3).A)
	assert.Equal(t, uint8(0), img.RGBAAt(2, 2).A)
}
