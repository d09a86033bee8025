package layout

import (
	"math"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// mindmapLayout places the tree radially: the root at canvas center, each
// level at a fixed radius, children fanned within a level-specific angular
// half-width around their parent's incoming angle. Node sizes shrink per
// level. Two heuristics keep the result readable: the angular spread never
// shrinks below a floor (so deep levels do not collapse into a straight
// line), and a box that overlaps an already placed one is nudged outward.
// All positions are clamped inside the canvas margins.
func mindmapLayout(d *diagram.Diagram, cfg *Config) Result {
	mc := cfg.Mindmap
	root := d.Root()
	if root == nil {
		m := 2 * mc.Margin
		return Result{Positions: map[string]diagram.Geometry{}, Canvas: Size{Width: m, Height: m}}
	}

	maxDepth := 0
	for _, n := range d.Nodes() {
		if n.Level > maxDepth {
			maxDepth = n.Level
		}
	}

	// Canvas scales with the radius stack: every level fits inside the
	// half-extent even after an outward collision nudge.
	half := float64(maxDepth)*mc.RadiusStep + mc.RadiusStep/2 + mc.RootWidth/2 + mc.Margin
	canvas := Size{Width: 2 * half, Height: 2 * half}
	cx, cy := half, half

	positions := make(map[string]diagram.Geometry)
	var placed []boundingBox

	place := func(n *diagram.Node, x, y float64) {
		w, h := mindmapNodeSize(n.Level, mc)
		g := diagram.Geometry{X: x - w/2, Y: y - h/2, Width: w, Height: h}
		g = clampToCanvas(g, canvas, mc.Margin)
		positions[n.ID] = g
		placed = append(placed, boxOf(g))
	}

	place(root, cx, cy)

	var fan func(parent *diagram.Node, incoming float64)
	fan = func(parent *diagram.Node, incoming float64) {
		children := d.Children(parent.ID)
		n := len(children)
		if n == 0 {
			return
		}

		level := parent.Level + 1
		for i, child := range children {
			var angle float64
			if parent.Parent == "" {
				// Root children spread around the full circle.
				angle = 2*math.Pi*float64(i)/float64(n) - math.Pi/2
			} else {
				hw := spreadFor(level, mc)
				if n == 1 {
					angle = incoming
				} else {
					angle = incoming - hw + 2*hw*float64(i)/float64(n-1)
				}
			}

			radius := float64(level) * mc.RadiusStep
			x := cx + radius*math.Cos(angle)
			y := cy + radius*math.Sin(angle)

			// Nudge outward while the box overlaps a placed one. Bounded
			// attempts keep the layout deterministic and inside the canvas.
			w, h := mindmapNodeSize(level, mc)
			for attempt := 0; attempt < 3; attempt++ {
				box := boxOf(diagram.Geometry{X: x - w/2, Y: y - h/2, Width: w, Height: h})
				if !overlapsAny(box, placed) {
					break
				}
				radius += mc.RadiusStep * 0.25
				x = cx + radius*math.Cos(angle)
				y = cy + radius*math.Sin(angle)
			}

			place(child, x, y)
			fan(child, angle)
		}
	}
	fan(root, 0)

	return Result{
		Positions: positions,
		Routes:    routeAll(d, positions, NewDirectRouter()),
		Canvas:    canvas,
	}
}

// spreadFor returns the angular half-width for children at the given level.
// The spread narrows with depth but never below the configured floor.
func spreadFor(level int, mc MindmapConfig) float64 {
	spread := mc.Spread * math.Pow(0.7, float64(level-1))
	if spread < mc.MinSpread {
		return mc.MinSpread
	}
	return spread
}

// mindmapNodeSize shrinks box dimensions per level down to a floor.
func mindmapNodeSize(level int, mc MindmapConfig) (w, h float64) {
	factor := math.Pow(mc.Shrink, float64(level))
	w = mc.RootWidth * factor
	if w < mc.MinWidth {
		w = mc.MinWidth
	}
	h = mc.RootHeight * factor
	if min := mc.MinWidth * mc.RootHeight / mc.RootWidth; h < min {
		h = min
	}
	return w, h
}

func overlapsAny(box boundingBox, placed []boundingBox) bool {
	for _, p := range placed {
		if box.intersects(p) {
			return true
		}
	}
	return false
}

// clampToCanvas keeps a box inside the canvas margins.
func clampToCanvas(g diagram.Geometry, canvas Size, margin float64) diagram.Geometry {
	if g.X < margin {
		g.X = margin
	}
	if g.Y < margin {
		g.Y = margin
	}
	if g.X+g.Width > canvas.Width-margin {
		g.X = canvas.Width - margin - g.Width
	}
	if g.Y+g.Height > canvas.Height-margin {
		g.Y = canvas.Height - margin - g.Height
	}
	return g
}
