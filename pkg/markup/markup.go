// Package markup serializes positioned diagrams into draw.io/mxGraph cell
// XML.
//
// The output envelope is an mxfile document: a diagram container with a
// freshly generated unique id, an mxGraphModel carrying the canvas size, two
// fixed boilerplate cells (root and default layer), then one vertex cell per
// node and one edge cell per routed relationship. All label text is escaped
// for the five XML metacharacters before insertion; the output is always
// well-formed.
//
// Styling comes from an immutable [StyleSet] passed in by the caller, never
// from package-level mutable state.
package markup

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/layout"
)

// Cell is one fully-styled, positioned element ready for serialization:
// either a vertex (Geometry set) or an edge (Source/Target set).
type Cell struct {
	ID     string
	Value  string
	Style  string
	Vertex bool

	// Vertex geometry.
	Geometry *diagram.Geometry

	// Edge endpoints and routing.
	Source    string
	Target    string
	Waypoints []diagram.Point
	Offset    *diagram.Point
}

// Cells builds the styled cell list for a laid-out diagram: vertices in
// node insertion order, then note boxes, then edges in relationship order.
// Generated note and edge ids are uniquified against the node id set, so a
// user-supplied id like a gitGraph commit id "edge-0" can never collide.
func Cells(d *diagram.Diagram, res layout.Result, styles *StyleSet) []Cell {
	if styles == nil {
		styles = DefaultStyles()
	}
	var cells []Cell

	used := make(map[string]bool, d.NodeCount())
	for _, n := range d.Nodes() {
		used[n.ID] = true
	}
	genID := func(prefix string, i int) string {
		id := fmt.Sprintf("%s-%d", prefix, i)
		for used[id] {
			id = "_" + id
		}
		used[id] = true
		return id
	}

	for _, n := range d.Nodes() {
		g, ok := res.Positions[n.ID]
		if !ok {
			continue
		}
		geom := g
		cells = append(cells, Cell{
			ID:       n.ID,
			Value:    vertexLabel(d, n),
			Style:    styles.vertexStyle(d, n),
			Vertex:   true,
			Geometry: &geom,
		})
	}

	for i, note := range res.Notes {
		geom := note.Geometry
		cells = append(cells, Cell{
			ID:       genID("note", i),
			Value:    note.Text,
			Style:    styles.Boxes["note"],
			Vertex:   true,
			Geometry: &geom,
		})
	}

	for _, route := range res.Routes {
		rel := d.Relationships[route.Index]
		style := styles.edgeStyle(d, rel)
		if route.HasPorts {
			style += fmt.Sprintf("exitX=%g;exitY=%g;entryX=%g;entryY=%g;",
				route.ExitX, route.ExitY, route.EntryX, route.EntryY)
		}
		cell := Cell{
			ID:        genID("edge", route.Index),
			Value:     edgeLabel(d, rel),
			Style:     style,
			Source:    route.From,
			Target:    route.To,
			Waypoints: route.Waypoints,
		}
		if route.LabelOffset != (diagram.Point{}) {
			offset := route.LabelOffset
			cell.Offset = &offset
		}
		cells = append(cells, cell)
	}

	return cells
}

// Document wraps styled cells into a complete mxfile document. Every call
// generates a fresh diagram id.
func Document(name string, canvas layout.Size, cells []Cell) string {
	var buf bytes.Buffer

	buf.WriteString(`<mxfile host="drawbridge">` + "\n")
	fmt.Fprintf(&buf, `  <diagram id="%s" name="%s">`+"\n", uuid.NewString(), escapeAttr(name))
	fmt.Fprintf(&buf, `    <mxGraphModel dx="%.0f" dy="%.0f" grid="1" gridSize="10" guides="1" tooltips="1" connect="1" arrows="1" fold="1" page="1" pageScale="1" pageWidth="%.0f" pageHeight="%.0f" math="0" shadow="0">`+"\n",
		canvas.Width, canvas.Height, canvas.Width, canvas.Height)
	buf.WriteString("      <root>\n")
	buf.WriteString(`        <mxCell id="0" />` + "\n")
	buf.WriteString(`        <mxCell id="1" parent="0" />` + "\n")

	for _, c := range cells {
		writeCell(&buf, c)
	}

	buf.WriteString("      </root>\n")
	buf.WriteString("    </mxGraphModel>\n")
	buf.WriteString("  </diagram>\n")
	buf.WriteString("</mxfile>\n")

	return buf.String()
}

// Render is the convenience path: build cells and wrap them in one call.
func Render(name string, d *diagram.Diagram, res layout.Result, styles *StyleSet) string {
	return Document(name, res.Canvas, Cells(d, res, styles))
}

func writeCell(buf *bytes.Buffer, c Cell) {
	if c.Vertex {
		fmt.Fprintf(buf, `        <mxCell id="%s" value="%s" style="%s" vertex="1" parent="1">`+"\n",
			escapeAttr(c.ID), escapeAttr(c.Value), escapeAttr(c.Style))
		fmt.Fprintf(buf, `          <mxGeometry x="%.1f" y="%.1f" width="%.1f" height="%.1f" as="geometry" />`+"\n",
			c.Geometry.X, c.Geometry.Y, c.Geometry.Width, c.Geometry.Height)
		buf.WriteString("        </mxCell>\n")
		return
	}

	fmt.Fprintf(buf, `        <mxCell id="%s" value="%s" style="%s" edge="1" parent="1" source="%s" target="%s">`+"\n",
		escapeAttr(c.ID), escapeAttr(c.Value), escapeAttr(c.Style), escapeAttr(c.Source), escapeAttr(c.Target))
	if len(c.Waypoints) == 0 && c.Offset == nil {
		buf.WriteString(`          <mxGeometry relative="1" as="geometry" />` + "\n")
	} else {
		buf.WriteString(`          <mxGeometry relative="1" as="geometry">` + "\n")
		if len(c.Waypoints) > 0 {
			buf.WriteString(`            <Array as="points">` + "\n")
			for _, p := range c.Waypoints {
				fmt.Fprintf(buf, `              <mxPoint x="%.1f" y="%.1f" />`+"\n", p.X, p.Y)
			}
			buf.WriteString("            </Array>\n")
		}
		if c.Offset != nil {
			fmt.Fprintf(buf, `            <mxPoint x="%.1f" y="%.1f" as="offset" />`+"\n", c.Offset.X, c.Offset.Y)
		}
		buf.WriteString("          </mxGeometry>\n")
	}
	buf.WriteString("        </mxCell>\n")
}

// vertexLabel builds the display text for a node: the plain label for most
// dialects, label plus member rows for ER entities and classes, and label
// plus tag for tagged commits.
func vertexLabel(d *diagram.Diagram, n *diagram.Node) string {
	switch d.Dialect {
	case diagram.DialectER:
		text := n.DisplayLabel()
		for _, a := range n.Attributes {
			text += "\n" + a.Type + " " + a.Name
			if a.Constraint != "" {
				text += " " + a.Constraint
			}
		}
		return text
	case diagram.DialectClass:
		text := n.DisplayLabel()
		if n.Stereotype != "" {
			text = "<<" + n.Stereotype + ">>\n" + text
		}
		for _, a := range n.Attributes {
			text += "\n" + a.Constraint + a.Name + ": " + a.Type
		}
		if len(n.Attributes) > 0 && len(n.Methods) > 0 {
			text += "\n--"
		}
		for _, m := range n.Methods {
			text += "\n" + m.Visibility + m.Name + "(" + m.Params + ")"
			if m.Returns != "" {
				text += ": " + m.Returns
			}
		}
		return text
	case diagram.DialectGitGraph:
		text := n.DisplayLabel()
		if n.Tag != "" {
			text += "\n" + n.Tag
		}
		return text
	default:
		return n.DisplayLabel()
	}
}

// edgeLabel builds the display text for a relationship. ER edges show the
// cardinality pair around the label so it survives into the drawing.
func edgeLabel(d *diagram.Diagram, rel diagram.Relationship) string {
	if d.Dialect == diagram.DialectER && rel.Label != "" {
		return rel.FromCard + " " + rel.Label + " " + rel.ToCard
	}
	return rel.Label
}
