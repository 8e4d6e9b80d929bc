package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"palmlines/internal/surface"
	"palmlines/pkg/geometry"
)

var (
	surf   = surface.New(600, 450)
	bounds = geometry.NewRect(100, 50, 600, 450)
)

func TestToSurface_Offset(t *testing.T) {
	p := ToSurface(At(130, 70), bounds, surf)
	assert.Equal(t, geometry.Pt(30, 20), p)
}

func TestToSurface_ClampsOutside(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want geometry.Point
	}{
		{"left of element", At(0, 200), geometry.Pt(0, 150)},
		{"above element", At(300, 0), geometry.Pt(200, 0)},
		{"right of element", At(5000, 200), geometry.Pt(600, 150)},
		{"below element", At(300, 5000), geometry.Pt(200, 450)},
		{"top-left corner", At(-100, -100), geometry.Pt(0, 0)},
		{"bottom-right corner", At(9999, 9999), geometry.Pt(600, 450)},
		{"top-right corner", At(9999, -9999), geometry.Pt(600, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToSurface(tt.ev, bounds, surf))
		})
	}
}

func TestToSurface_IdempotentOnClampedPoints(t *testing.T) {
	origin := geometry.NewRect(0, 0, 600, 450)
	for _, ev := range []Event{At(-3, 8), At(700, 700), At(12.5, 449.5)} {
		once := ToSurface(ev, origin, surf)
		twice := ToSurface(At(once.X, once.Y), origin, surf)
		assert.Equal(t, once, twice)
	}
}

func TestToSurface_RescalesDisplaySize(t *testing.T) {
	// element drawn at half size on screen
	half := geometry.NewRect(0, 0, 300, 225)
	assert.Equal(t, geometry.Pt(200, 100), ToSurface(At(100, 50), half, surf))
	assert.Equal(t, geometry.Pt(600, 450), ToSurface(At(400, 400), half, surf))
}

func TestToSurface_RescalesFractionalDisplaySize(t *testing.T) {
	wide := geometry.NewRect(0, 0, 600.75, 450.75)
	p := ToSurface(At(600.75, 450.75), wide, surf)
	assert.InDelta(t, 600, p.X, 1e-9)
	assert.InDelta(t, 450, p.Y, 1e-9)

	mid := ToSurface(At(300.375, 225.375), wide, surf)
	assert.InDelta(t, 300, mid.X, 1e-9)
	assert.InDelta(t, 225, mid.Y, 1e-9)
}

func TestToSurface_ZeroBoundsIsOneToOne(t *testing.T) {
	assert.Equal(t, geometry.Pt(40, 30), ToSurface(At(50, 40), geometry.NewRect(10, 10, 0, 0), surf))
}
