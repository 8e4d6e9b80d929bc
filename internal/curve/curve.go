// Package curve holds the named annotation curves drawn over an image.
package curve

import (
	"errors"
	"fmt"
	"image/color"

	"palmlines/pkg/colorutil"
	"palmlines/pkg/geometry"
)

// MinPoints is the smallest number of control points a curve may have.
const MinPoints = 2

var (
	// ErrUnknownCurve is returned for a name the set was not built with.
	ErrUnknownCurve = errors.New("unknown curve")
	// ErrPointIndex is returned when a point index is outside the curve.
	ErrPointIndex = errors.New("point index out of range")
	// ErrTooFewPoints is returned for a definition with fewer than MinPoints defaults.
	ErrTooFewPoints = errors.New("curve needs at least 2 points")
	// ErrDuplicateCurve is returned when two definitions share a name.
	ErrDuplicateCurve = errors.New("duplicate curve name")
)

// Definition describes a curve's identity and default geometry. Defaults are
// normalized to [0,1] on both axes and scaled to the surface on Instantiate.
type Definition struct {
	Name     string
	Color    color.RGBA
	Visible  bool
	Defaults []geometry.Point
}

// Instantiate builds a Curve with the default points scaled to size.
func (d Definition) Instantiate(size geometry.Size) Curve {
	points := make([]geometry.Point, len(d.Defaults))
	for i, p := range d.Defaults {
		points[i] = geometry.Pt(p.X*size.Width, p.Y*size.Height)
	}
	return Curve{
		Name:    d.Name,
		Points:  points,
		Color:   d.Color,
		Visible: d.Visible,
	}
}

// Curve is a named, ordered run of control points. The first and last points
// are the stroke's endpoints; interior points are smoothing anchors.
type Curve struct {
	Name    string           `json:"name"`
	Points  []geometry.Point `json:"points"`
	Color   color.RGBA       `json:"color"`
	Visible bool             `json:"visible"`
}

// Clone returns a deep copy of the curve.
func (c Curve) Clone() Curve {
	c.Points = append([]geometry.Point(nil), c.Points...)
	return c
}

// Set maps curve names to curves. Membership and declaration order are fixed
// when the set is created; only point values and visibility change.
type Set struct {
	defs   []Definition
	order  []string
	curves map[string]*Curve
}

// NewSet creates a set from defs with default geometry scaled to size.
func NewSet(defs []Definition, size geometry.Size) (*Set, error) {
	s := &Set{
		defs:   make([]Definition, 0, len(defs)),
		order:  make([]string, 0, len(defs)),
		curves: make(map[string]*Curve, len(defs)),
	}
	for _, d := range defs {
		if len(d.Defaults) < MinPoints {
			return nil, fmt.Errorf("%w: %q has %d", ErrTooFewPoints, d.Name, len(d.Defaults))
		}
		if _, dup := s.curves[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCurve, d.Name)
		}
		d.Defaults = append([]geometry.Point(nil), d.Defaults...)
		c := d.Instantiate(size)
		s.defs = append(s.defs, d)
		s.order = append(s.order, d.Name)
		s.curves[d.Name] = &c
	}
	return s, nil
}

// Len returns the number of curves.
func (s *Set) Len() int {
	return len(s.order)
}

// Names returns curve names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

// Get returns a copy of the named curve.
func (s *Set) Get(name string) (Curve, bool) {
	c, ok := s.curves[name]
	if !ok {
		return Curve{}, false
	}
	return c.Clone(), true
}

// Each calls fn for every curve in declaration order. fn receives the live
// curve and must not retain or modify its Points slice.
func (s *Set) Each(fn func(c Curve)) {
	for _, name := range s.order {
		fn(*s.curves[name])
	}
}

// SetPoint replaces one control point.
func (s *Set) SetPoint(name string, index int, p geometry.Point) error {
	c, ok := s.curves[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	if index < 0 || index >= len(c.Points) {
		return fmt.Errorf("%w: %q has %d points, got %d", ErrPointIndex, name, len(c.Points), index)
	}
	// copy-on-write so clones handed out earlier never observe the change
	points := append([]geometry.Point(nil), c.Points...)
	points[index] = p
	c.Points = points
	return nil
}

// SetVisible sets the named curve's visibility flag.
func (s *Set) SetVisible(name string, visible bool) error {
	c, ok := s.curves[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	c.Visible = visible
	return nil
}

// Reset restores every curve's points to its defaults scaled to size.
// Visibility flags are left as they are.
func (s *Set) Reset(size geometry.Size) {
	for _, d := range s.defs {
		c := s.curves[d.Name]
		c.Points = d.Instantiate(size).Points
	}
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	out := &Set{
		defs:   s.defs,
		order:  s.order,
		curves: make(map[string]*Curve, len(s.curves)),
	}
	for name, c := range s.curves {
		cc := c.Clone()
		out.curves[name] = &cc
	}
	return out
}

// Curves returns copies of all curves in declaration order.
func (s *Set) Curves() []Curve {
	out := make([]Curve, 0, len(s.order))
	s.Each(func(c Curve) {
		out = append(out, c.Clone())
	})
	return out
}

// DefaultDefinitions returns the four palm lines the editor starts with.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:    "heart",
			Color:   colorutil.Red,
			Visible: true,
			Defaults: []geometry.Point{
				{X: 0.20, Y: 0.35}, {X: 0.35, Y: 0.30}, {X: 0.50, Y: 0.30}, {X: 0.65, Y: 0.32}, {X: 0.80, Y: 0.38},
			},
		},
		{
			Name:    "head",
			Color:   colorutil.Gold,
			Visible: true,
			Defaults: []geometry.Point{
				{X: 0.20, Y: 0.45}, {X: 0.35, Y: 0.45}, {X: 0.50, Y: 0.47}, {X: 0.65, Y: 0.50}, {X: 0.75, Y: 0.55},
			},
		},
		{
			Name:    "life",
			Color:   colorutil.Green,
			Visible: true,
			Defaults: []geometry.Point{
				{X: 0.30, Y: 0.35}, {X: 0.25, Y: 0.50}, {X: 0.27, Y: 0.65}, {X: 0.32, Y: 0.78}, {X: 0.40, Y: 0.90},
			},
		},
		{
			Name:    "fate",
			Color:   colorutil.Blue,
			Visible: true,
			Defaults: []geometry.Point{
				{X: 0.55, Y: 0.90}, {X: 0.55, Y: 0.75}, {X: 0.55, Y: 0.60}, {X: 0.55, Y: 0.42}, {X: 0.57, Y: 0.28},
			},
		},
	}
}
