package layout

import "github.com/mermaidtools/drawbridge/pkg/diagram"

// flowLayout places flow nodes linearly along the direction axis at fixed
// spacing. Branching structures are laid out in declaration order without
// overlap avoidance; this is a documented limitation of the engine.
func flowLayout(d *diagram.Diagram, cfg *Config) Result {
	fc := cfg.Flow
	positions := make(map[string]diagram.Geometry)
	nodes := d.Nodes()

	for i, n := range nodes {
		var x, y float64
		switch d.Direction {
		case "LR":
			x = fc.Margin + float64(i)*(fc.NodeWidth+fc.SpacingX)
			y = fc.Margin
		case "RL":
			x = fc.Margin + float64(len(nodes)-1-i)*(fc.NodeWidth+fc.SpacingX)
			y = fc.Margin
		case "BT":
			x = fc.Margin
			y = fc.Margin + float64(len(nodes)-1-i)*(fc.NodeHeight+fc.SpacingY)
		default: // TD, TB
			x = fc.Margin
			y = fc.Margin + float64(i)*(fc.NodeHeight+fc.SpacingY)
		}
		positions[n.ID] = diagram.Geometry{X: x, Y: y, Width: fc.NodeWidth, Height: fc.NodeHeight}
	}

	return Result{
		Positions: positions,
		Routes:    routeAll(d, positions, NewDirectRouter()),
		Canvas:    flowCanvas(len(nodes), d.Direction, fc),
	}
}

func flowCanvas(n int, direction string, fc FlowConfig) Size {
	if n == 0 {
		return Size{Width: 2 * fc.Margin, Height: 2 * fc.Margin}
	}
	along := float64(n)*(fc.NodeWidth+fc.SpacingX) - fc.SpacingX
	alongY := float64(n)*(fc.NodeHeight+fc.SpacingY) - fc.SpacingY
	switch direction {
	case "LR", "RL":
		return Size{Width: along + 2*fc.Margin, Height: fc.NodeHeight + 2*fc.Margin}
	default:
		return Size{Width: fc.NodeWidth + 2*fc.Margin, Height: alongY + 2*fc.Margin}
	}
}
