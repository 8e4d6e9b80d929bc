// Package drag implements the control-point drag state machine.
//
// The machine has two states, Idle and Dragging. Transition is a pure
// function from (state, event) to (state, effect): it never touches curve
// data itself, it only asks the owner to move a point via an UpdatePoint
// effect.
package drag

import (
	"fmt"

	"palmlines/internal/curve"
	"palmlines/pkg/geometry"
)

// DefaultHitRadius is the pick distance in surface units.
const DefaultHitRadius = 10.0

// State is either Idle or Dragging.
type State interface {
	isState()
	fmt.Stringer
}

// Idle means no point is grabbed.
type Idle struct{}

// Dragging means the point at Index of curve Curve is grabbed.
type Dragging struct {
	Curve string
	Index int
}

func (Idle) isState()     {}
func (Dragging) isState() {}

func (Idle) String() string { return "idle" }

func (d Dragging) String() string {
	return fmt.Sprintf("dragging(%s[%d])", d.Curve, d.Index)
}

// IsDragging reports whether s is a Dragging state.
func IsDragging(s State) bool {
	_, ok := s.(Dragging)
	return ok
}

// EventKind identifies a pointer event.
type EventKind int

const (
	// Down is a primary button press or touch start.
	Down EventKind = iota
	// Move is pointer motion, with or without a button held.
	Move
	// Up is a button release or touch end.
	Up
	// Leave is the pointer exiting the surface element.
	Leave
)

func (k EventKind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Leave:
		return "leave"
	default:
		return "unknown"
	}
}

// Event is a pointer event already mapped to surface coordinates.
type Event struct {
	Kind  EventKind
	Point geometry.Point
}

// Effect is what the owner should do after a transition. A nil *UpdatePoint
// means nothing to do.
type Effect struct {
	Update *UpdatePoint
}

// UpdatePoint asks the owner to move one control point.
type UpdatePoint struct {
	Curve string
	Index int
	Point geometry.Point
}

// Env is the read-only context a transition is evaluated against.
type Env struct {
	// Enabled is true when an image is loaded and lines are shown.
	// Pointer-down is ignored otherwise.
	Enabled   bool
	Curves    *curve.Set
	HitRadius float64
	Bounds    geometry.Size
}

// Transition applies ev to s.
func Transition(s State, ev Event, env Env) (State, Effect) {
	switch ev.Kind {
	case Down:
		if !env.Enabled || env.Curves == nil {
			return Idle{}, Effect{}
		}
		radius := env.HitRadius
		if radius <= 0 {
			radius = DefaultHitRadius
		}
		if name, idx, ok := HitTest(env.Curves, ev.Point, radius); ok {
			return Dragging{Curve: name, Index: idx}, Effect{}
		}
		return Idle{}, Effect{}

	case Move:
		d, ok := s.(Dragging)
		if !ok {
			return s, Effect{}
		}
		return d, Effect{Update: &UpdatePoint{
			Curve: d.Curve,
			Index: d.Index,
			Point: env.Bounds.Clamp(ev.Point),
		}}

	case Up, Leave:
		return Idle{}, Effect{}
	}
	return s, Effect{}
}

// HitTest returns the first control point strictly within radius of p,
// scanning visible curves and their points in declaration order.
func HitTest(set *curve.Set, p geometry.Point, radius float64) (string, int, bool) {
	var (
		name  string
		index int
		found bool
	)
	set.Each(func(c curve.Curve) {
		if found || !c.Visible {
			return
		}
		for i, cp := range c.Points {
			if cp.Distance(p) < radius {
				name, index, found = c.Name, i, true
				return
			}
		}
	})
	return name, index, found
}
