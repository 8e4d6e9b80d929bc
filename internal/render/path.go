package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"palmlines/pkg/geometry"
)

// Segment is one piece of a smoothed path. Quad segments bend towards
// Control; line segments ignore it.
type Segment struct {
	Quad    bool
	Control geometry.Point
	End     geometry.Point
}

// Path is a start point followed by segments.
type Path struct {
	Start    geometry.Point
	Segments []Segment
}

// End returns the final point of the path.
func (p Path) End() geometry.Point {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].End
}

// SmoothPath turns control points into quadratic segments joined at the
// midpoints of consecutive interior points. The path passes exactly through
// the first and last point and bends through the interior ones.
func SmoothPath(points []geometry.Point) Path {
	n := len(points)
	if n == 0 {
		return Path{}
	}
	path := Path{Start: points[0]}
	switch n {
	case 1:
		return path
	case 2:
		path.Segments = []Segment{{End: points[1]}}
		return path
	}

	path.Segments = make([]Segment, 0, n-2)
	for i := 1; i < n-2; i++ {
		path.Segments = append(path.Segments, Segment{
			Quad:    true,
			Control: points[i],
			End:     points[i].Midpoint(points[i+1]),
		})
	}
	path.Segments = append(path.Segments, Segment{
		Quad:    true,
		Control: points[n-2],
		End:     points[n-1],
	})
	return path
}

func toFixed(p geometry.Point) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(p.X * 64),
		Y: fixed.Int26_6(p.Y * 64),
	}
}

// replay feeds path into a rasterx adder, translated by offset.
func replay(a rasterx.Adder, path Path, offset geometry.Point) {
	a.Start(toFixed(path.Start.Add(offset)))
	for _, seg := range path.Segments {
		if seg.Quad {
			a.QuadBezier(toFixed(seg.Control.Add(offset)), toFixed(seg.End.Add(offset)))
		} else {
			a.Line(toFixed(seg.End.Add(offset)))
		}
	}
	a.Stop(false)
}

// strokePath draws path onto dst with round caps and joins.
func strokePath(dst draw.Image, path Path, offset geometry.Point, width float64, col color.Color) {
	if len(path.Segments) == 0 {
		return
	}
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetColor(col)
	dasher.SetStroke(fixed.Int26_6(width*64), 4*64,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	replay(dasher, path, offset)
	dasher.Draw()
}

// fillCircle draws a filled disc with an outline ring of outlineWidth.
func fillCircle(dst draw.Image, c geometry.Point, r float64, fill color.Color, outline color.Color, outlineWidth float64) {
	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)

	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(fill)
	rasterx.AddCircle(c.X, c.Y, r, filler)
	filler.Draw()

	if outlineWidth <= 0 {
		return
	}
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetColor(outline)
	dasher.SetStroke(fixed.Int26_6(outlineWidth*64), 0, nil, nil, nil, 0, nil, 0)
	rasterx.AddCircle(c.X, c.Y, r, dasher)
	dasher.Draw()
}

// pathRegion returns the pixel rectangle that can be touched by stroking
// points at width with the given offset and blur margin, clipped to bounds.
func pathRegion(points []geometry.Point, offset geometry.Point, width float64, blur int, bounds image.Rectangle) image.Rectangle {
	bb := geometry.BoundingBox(points)
	margin := width/2 + float64(2*blur) + 2
	bb = bb.Inset(-margin)
	r := image.Rect(
		int(bb.X+offset.X)-1,
		int(bb.Y+offset.Y)-1,
		int(bb.X+bb.Width+offset.X)+2,
		int(bb.Y+bb.Height+offset.Y)+2,
	)
	return r.Intersect(bounds)
}
