package layout

import (
	"math"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// erLayout places entities on a strict grid at fixed column and row pitch.
// Entity height grows with the attribute count. Relationship routing is
// delegated to the grid router: same-row and same-column connections run
// direct, diagonals pick exit/entry ports toward the nearer axis without
// obstacle-avoidance waypoints.
func erLayout(d *diagram.Diagram, cfg *Config) Result {
	ec := cfg.ER
	nodes := d.Nodes()
	cols := ec.Columns
	if cols <= 0 {
		cols = gridColumns(len(nodes))
	}

	positions := make(map[string]diagram.Geometry)
	rows := 0
	for i, n := range nodes {
		col, row := i%cols, i/cols
		if row+1 > rows {
			rows = row + 1
		}
		height := ec.HeaderHeight + float64(len(n.Attributes))*ec.RowHeight
		if len(n.Attributes) == 0 {
			height = ec.HeaderHeight + ec.RowHeight
		}
		positions[n.ID] = diagram.Geometry{
			X:      ec.Margin + float64(col)*ec.PitchX,
			Y:      ec.Margin + float64(row)*ec.PitchY,
			Width:  ec.EntityWidth,
			Height: height,
		}
	}

	width := 2 * ec.Margin
	if len(nodes) > 0 {
		used := cols
		if len(nodes) < cols {
			used = len(nodes)
		}
		width = 2*ec.Margin + float64(used-1)*ec.PitchX + ec.EntityWidth
	}
	height := 2*ec.Margin + float64(rows)*ec.PitchY

	return Result{
		Positions: positions,
		Routes:    routeAll(d, positions, NewGridRouter()),
		Canvas:    Size{Width: width, Height: height},
	}
}

// gridColumns returns the column count for a near-square grid.
func gridColumns(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
