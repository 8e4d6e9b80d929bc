// Package pointer maps raw pointer positions onto the drawing surface.
package pointer

import (
	"palmlines/internal/surface"
	"palmlines/pkg/geometry"
)

// Event is a pointer position in client (window) coordinates.
type Event struct {
	ClientX float64
	ClientY float64
}

// At returns an Event at the given client position.
func At(x, y float64) Event {
	return Event{ClientX: x, ClientY: y}
}

// ToSurface converts a client-space pointer position into surface coordinates.
//
// bounds is the on-screen rectangle of the surface element. When its size
// differs from the surface's internal resolution the offset is rescaled per
// axis; a zero-sized bounds is treated as 1:1. The result is always clamped
// to [0,W]x[0,H], so a pointer outside the element lands on the nearest edge.
func ToSurface(ev Event, bounds geometry.Rect, s surface.Surface) geometry.Point {
	x := ev.ClientX - bounds.X
	y := ev.ClientY - bounds.Y

	if bounds.Width > 0 && bounds.Width != float64(s.Width) {
		x *= float64(s.Width) / bounds.Width
	}
	if bounds.Height > 0 && bounds.Height != float64(s.Height) {
		y *= float64(s.Height) / bounds.Height
	}

	return s.Size().Clamp(geometry.Pt(x, y))
}
