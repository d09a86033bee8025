package layout

import "github.com/mermaidtools/drawbridge/pkg/diagram"

// classLayout places classes on a grid with a fixed column count. Box
// height grows with attribute, method, and separator rows. Relationship
// routing reuses the grid router's diagonal heuristic.
func classLayout(d *diagram.Diagram, cfg *Config) Result {
	cc := cfg.Class
	nodes := d.Nodes()
	cols := cc.Columns
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
		positions[n.ID] = diagram.Geometry{
			X:      cc.Margin + float64(col)*cc.PitchX,
			Y:      cc.Margin + float64(row)*cc.PitchY,
			Width:  cc.BoxWidth,
			Height: classBoxHeight(n, cc),
		}
	}

	width := 2 * cc.Margin
	if len(nodes) > 0 {
		used := cols
		if len(nodes) < cols {
			used = len(nodes)
		}
		width = 2*cc.Margin + float64(used-1)*cc.PitchX + cc.BoxWidth
	}
	height := 2*cc.Margin + float64(rows)*cc.PitchY

	return Result{
		Positions: positions,
		Routes:    routeAll(d, positions, NewGridRouter()),
		Canvas:    Size{Width: width, Height: height},
	}
}

// classBoxHeight computes the box height from member row counts: header,
// stereotype row if present, one row per attribute and method, and a
// separator row between the attribute and method compartments.
func classBoxHeight(n *diagram.Node, cc ClassConfig) float64 {
	rows := len(n.Attributes) + len(n.Methods)
	if len(n.Attributes) > 0 && len(n.Methods) > 0 {
		rows++ // separator
	}
	if n.Stereotype != "" {
		rows++
	}
	if rows == 0 {
		rows = 1
	}
	return cc.HeaderHeight + float64(rows)*cc.RowHeight
}
