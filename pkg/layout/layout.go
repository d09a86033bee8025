// Package layout computes geometry for canonical diagrams.
//
// Each dialect has its own engine; all engines share the same contract:
// input is a read-only diagram model, output is a [Result] holding a
// geometry map keyed by node id, routing hints per relationship, and the
// canvas size. Layout is deterministic - coordinates derive only from
// counts, indices, and the [Config] parameters, never from randomness.
//
// Collision handling is heuristic, not guaranteed: the ER and class engines
// route diagonals by picking exit/entry ports toward the nearer axis, and
// the mindmap engine nudges overlapping boxes outward. A stricter
// obstacle-avoiding algorithm can be substituted through the [Router]
// interface without touching the engines.
//
// A relationship whose endpoint has no geometry is dropped from the routes
// rather than failing. With the in-tree parsers this only happens for a
// gitGraph merge of a branch that was never created.
package layout

import (
	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/errors"
)

// Size is a canvas extent in canvas units.
type Size struct {
	Width  float64
	Height float64
}

// Route carries the routing hints for one relationship. Index points into
// the diagram's relationship slice; From and To are repeated for
// convenience.
type Route struct {
	Index int
	From  string
	To    string
	Label string

	// Waypoints the connection passes through, empty for a direct line.
	Waypoints []diagram.Point

	// LabelOffset shifts the label away from the connection midpoint.
	LabelOffset diagram.Point

	// Connection ports in relative box coordinates (0..1). Only meaningful
	// when HasPorts is true.
	HasPorts       bool
	ExitX, ExitY   float64
	EntryX, EntryY float64
}

// NoteBox is a positioned sequence-diagram note.
type NoteBox struct {
	Text     string
	Geometry diagram.Geometry
}

// Result is the output of a layout engine.
type Result struct {
	// Positions maps node id to geometry.
	Positions map[string]diagram.Geometry

	// Routes holds one entry per relationship that survived layout, in
	// relationship order.
	Routes []Route

	// Notes holds positioned sequence notes, empty for other dialects.
	Notes []NoteBox

	// Lifelines maps participant id to lifeline height, sequence only.
	Lifelines map[string]float64

	Canvas Size
}

// Compute runs the layout engine matching the diagram's dialect.
// It returns an error only when no engine exists for the dialect.
func Compute(d *diagram.Diagram, cfg *Config) (Result, error) {
	if cfg == nil {
		cfg = Default()
	}
	switch d.Dialect {
	case diagram.DialectFlow:
		return flowLayout(d, cfg), nil
	case diagram.DialectER:
		return erLayout(d, cfg), nil
	case diagram.DialectSequence:
		return sequenceLayout(d, cfg), nil
	case diagram.DialectClass:
		return classLayout(d, cfg), nil
	case diagram.DialectMindmap:
		return mindmapLayout(d, cfg), nil
	case diagram.DialectGitGraph:
		return gitLayout(d, cfg), nil
	default:
		return Result{}, errors.New(errors.ErrCodeUnsupported, "no layout engine for dialect %q", d.Dialect)
	}
}

// routeAll builds direct routes for every relationship whose endpoints both
// have geometry, applying the router's hints. Relationships with a missing
// endpoint are dropped.
func routeAll(d *diagram.Diagram, positions map[string]diagram.Geometry, router Router) []Route {
	var routes []Route
	for i, rel := range d.Relationships {
		from, okF := positions[rel.From]
		to, okT := positions[rel.To]
		if !okF || !okT {
			continue
		}
		r := Route{Index: i, From: rel.From, To: rel.To, Label: rel.Label}
		if router != nil {
			router.Route(&r, from, to)
		}
		routes = append(routes, r)
	}
	return routes
}

// boundingBox is the derived extent used for collision checks during
// layout. It is never part of the model or the result.
type boundingBox struct {
	x1, y1, x2, y2 float64
}

func boxOf(g diagram.Geometry) boundingBox {
	return boundingBox{x1: g.X, y1: g.Y, x2: g.X + g.Width, y2: g.Y + g.Height}
}

// intersects reports whether two boxes overlap, with a small gap so boxes
// that merely touch count as clear.
func (b boundingBox) intersects(o boundingBox) bool {
	const gap = 4
	return b.x1 < o.x2+gap && o.x1 < b.x2+gap && b.y1 < o.y2+gap && o.y1 < b.y2+gap
}
