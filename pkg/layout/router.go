package layout

import (
	"math"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// Router chooses how a connection leaves its source box and enters its
// target box. The default grid router implements the same-row / same-column
// / diagonal heuristic shared by the ER and class engines; a stricter
// obstacle-avoiding router can be plugged in without changing the engines.
type Router interface {
	// Route fills the routing hints of r for a connection from one box to
	// another.
	Route(r *Route, from, to diagram.Geometry)
}

// gridRouter routes between boxes placed on a grid. Ports are expressed in
// relative box coordinates: (0, 0.5) is the middle of the left edge.
type gridRouter struct{}

// NewGridRouter returns the default grid router.
func NewGridRouter() Router { return gridRouter{} }

func (gridRouter) Route(r *Route, from, to diagram.Geometry) {
	fc, tc := from.Center(), to.Center()
	dx, dy := tc.X-fc.X, tc.Y-fc.Y

	// alignEps treats near-equal centers as the same row or column.
	const alignEps = 1.0

	r.HasPorts = true
	switch {
	case math.Abs(dy) < alignEps:
		// Same row: direct horizontal.
		if dx >= 0 {
			r.ExitX, r.ExitY, r.EntryX, r.EntryY = 1, 0.5, 0, 0.5
		} else {
			r.ExitX, r.ExitY, r.EntryX, r.EntryY = 0, 0.5, 1, 0.5
		}
	case math.Abs(dx) < alignEps:
		// Same column: direct vertical.
		if dy >= 0 {
			r.ExitX, r.ExitY, r.EntryX, r.EntryY = 0.5, 1, 0.5, 0
		} else {
			r.ExitX, r.ExitY, r.EntryX, r.EntryY = 0.5, 0, 0.5, 1
		}
	case math.Abs(dx) >= math.Abs(dy):
		// Diagonal, horizontally dominated: leave sideways, enter from the
		// top or bottom edge nearer the source.
		if dx >= 0 {
			r.ExitX, r.ExitY = 1, 0.5
		} else {
			r.ExitX, r.ExitY = 0, 0.5
		}
		if dy >= 0 {
			r.EntryX, r.EntryY = 0.5, 0
		} else {
			r.EntryX, r.EntryY = 0.5, 1
		}
	default:
		// Diagonal, vertically dominated: leave through the top or bottom,
		// enter from the side nearer the source.
		if dy >= 0 {
			r.ExitX, r.ExitY = 0.5, 1
		} else {
			r.ExitX, r.ExitY = 0.5, 0
		}
		if dx >= 0 {
			r.EntryX, r.EntryY = 0, 0.5
		} else {
			r.EntryX, r.EntryY = 1, 0.5
		}
	}
}

// directRouter leaves all hints unset, producing straight center-to-center
// connections. Used by the flow, mindmap, and gitGraph engines.
type directRouter struct{}

// NewDirectRouter returns a router that emits no hints.
func NewDirectRouter() Router { return directRouter{} }

func (directRouter) Route(r *Route, from, to diagram.Geometry) {}
