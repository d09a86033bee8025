package layout

import "github.com/mermaidtools/drawbridge/pkg/diagram"

// gitLayout assigns one x-coordinate per branch (column) and one
// y-coordinate per commit index (row), in flat commit order. Merge commits
// connect to the most recent commit of the merged-from branch through the
// relationships recorded at parse time.
func gitLayout(d *diagram.Diagram, cfg *Config) Result {
	gc := cfg.Git

	branchCol := make(map[string]int, len(d.Branches))
	for i, b := range d.Branches {
		branchCol[b.Name] = i
	}

	positions := make(map[string]diagram.Geometry)
	nodes := d.Nodes()
	for i, n := range nodes {
		col := branchCol[n.Branch]
		positions[n.ID] = diagram.Geometry{
			X:      gc.Margin + float64(col)*gc.ColumnPitch,
			Y:      gc.Margin + float64(i)*gc.RowPitch,
			Width:  gc.NodeSize,
			Height: gc.NodeSize,
		}
	}

	cols := len(d.Branches)
	if cols == 0 {
		cols = 1
	}
	width := 2*gc.Margin + float64(cols-1)*gc.ColumnPitch + gc.NodeSize
	height := 2 * gc.Margin
	if len(nodes) > 0 {
		height = 2*gc.Margin + float64(len(nodes)-1)*gc.RowPitch + gc.NodeSize
	}

	return Result{
		Positions: positions,
		Routes:    routeAll(d, positions, NewDirectRouter()),
		Canvas:    Size{Width: width, Height: height},
	}
}
