package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Distance(t *testing.T) {
	assert.InDelta(t, 5.0, Pt(0, 0).Distance(Pt(3, 4)), 1e-12)
	assert.InDelta(t, 0.0, Pt(7, 7).Distance(Pt(7, 7)), 1e-12)
}

func TestPoint_Arithmetic(t *testing.T) {
	p := Pt(2, 3)
	assert.Equal(t, Pt(5, 7), p.Add(Pt(3, 4)))
	assert.Equal(t, Pt(-1, -1), p.Sub(Pt(3, 4)))
	assert.Equal(t, Pt(1, 1.5), p.Scale(0.5))
	assert.Equal(t, Pt(2.5, 3.5), p.Midpoint(Pt(3, 4)))
	// receiver is untouched
	assert.Equal(t, Pt(2, 3), p)
}

func TestSize_Clamp(t *testing.T) {
	s := NewSize(600, 450)

	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"inside", Pt(10, 20), Pt(10, 20)},
		{"left", Pt(-5, 100), Pt(0, 100)},
		{"right", Pt(900, 100), Pt(600, 100)},
		{"top", Pt(50, -1), Pt(50, 0)},
		{"bottom", Pt(50, 451), Pt(50, 450)},
		{"top-left corner", Pt(-10, -10), Pt(0, 0)},
		{"bottom-right corner", Pt(1e6, 1e6), Pt(600, 450)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Clamp(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, s.Contains(got))
			assert.Equal(t, got, s.Clamp(got), "clamping must be idempotent")
		})
	}
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))
	r := BoundingBox([]Point{Pt(3, 9), Pt(-1, 4), Pt(5, 2)})
	assert.Equal(t, NewRect(-1, 2, 6, 7), r)
	assert.True(t, r.Contains(Pt(0, 5)))
	assert.False(t, r.Contains(Pt(6, 5)))
}

func TestRect_Inset(t *testing.T) {
	r := NewRect(10, 10, 20, 20).Inset(-5)
	assert.Equal(t, NewRect(5, 5, 30, 30), r)
	assert.Equal(t, NewSize(30, 30), r.Size())
	assert.Equal(t, Pt(5, 5), r.TopLeft())
}
