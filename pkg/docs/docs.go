// Package docs generates prose documentation from canonical diagrams.
//
// The generator is an alternate sink from the same parsed model the
// converter uses: it consumes the diagram, never the layout. Output is a
// plain-text report with an overview, a node table, a relationship table,
// and the original input echoed back verbatim.
package docs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/errors"
)

// Generate renders the documentation report for a parsed diagram. The
// original input text is echoed in the final section. It returns an error
// only for a dialect without a generator.
func Generate(d *diagram.Diagram, input string) (string, error) {
	var buf bytes.Buffer

	switch d.Dialect {
	case diagram.DialectFlow:
		writeOverview(&buf, "Flowchart", d)
		writeNodeTable(&buf, d, "Nodes", []string{"ID", "Label", "Shape"}, func(n *diagram.Node) []string {
			shape := n.Shape
			if shape == diagram.ShapeDefault {
				shape = diagram.ShapeRectangle // bare references render as rectangles
			}
			return []string{n.ID, n.DisplayLabel(), string(shape)}
		})
		writeRelTable(&buf, d, []string{"From", "To", "Arrow", "Label"}, func(r diagram.Relationship) []string {
			return []string{r.From, r.To, string(r.Arrow), r.Label}
		})
	case diagram.DialectER:
		writeOverview(&buf, "Entity-Relationship Diagram", d)
		writeEntitySection(&buf, d)
		writeRelTable(&buf, d, []string{"From", "Cardinality", "To", "Label"}, func(r diagram.Relationship) []string {
			return []string{r.From, r.FromCard + "--" + r.ToCard, r.To, r.Label}
		})
	case diagram.DialectSequence:
		writeOverview(&buf, "Sequence Diagram", d)
		writeNodeTable(&buf, d, "Participants", []string{"ID", "Label", "Kind"}, func(n *diagram.Node) []string {
			kind := "participant"
			if n.Actor {
				kind = "actor"
			}
			return []string{n.ID, n.DisplayLabel(), kind}
		})
		writeRelTable(&buf, d, []string{"From", "To", "Type", "Message"}, func(r diagram.Relationship) []string {
			return []string{r.From, r.To, string(r.Message), r.Label}
		})
	case diagram.DialectClass:
		writeOverview(&buf, "Class Diagram", d)
		writeClassSection(&buf, d)
		writeRelTable(&buf, d, []string{"From", "To", "Kind", "Label"}, func(r diagram.Relationship) []string {
			return []string{r.From, r.To, string(r.Kind), r.Label}
		})
	case diagram.DialectMindmap:
		writeOverview(&buf, "Mindmap", d)
		writeMindmapTree(&buf, d)
	case diagram.DialectGitGraph:
		writeOverview(&buf, "Commit Graph", d)
		writeNodeTable(&buf, d, "Commits", []string{"ID", "Branch", "Tag", "Type"}, func(n *diagram.Node) []string {
			return []string{n.ID, n.Branch, n.Tag, n.CommitType}
		})
		writeBranchTable(&buf, d)
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "no documentation generator for dialect %q", d.Dialect)
	}

	buf.WriteString("## Source\n\n```\n")
	buf.WriteString(strings.TrimRight(input, "\n"))
	buf.WriteString("\n```\n")

	return buf.String(), nil
}

func writeOverview(buf *bytes.Buffer, title string, d *diagram.Diagram) {
	fmt.Fprintf(buf, "# %s\n\n", title)
	fmt.Fprintf(buf, "Nodes: %d\n", d.NodeCount())
	fmt.Fprintf(buf, "Relationships: %d\n", len(d.Relationships))
	if d.Dialect == diagram.DialectFlow {
		fmt.Fprintf(buf, "Direction: %s\n", d.Direction)
	}
	if d.Dialect == diagram.DialectGitGraph {
		fmt.Fprintf(buf, "Branches: %d\n", len(d.Branches))
	}
	buf.WriteString("\n")
}

func writeNodeTable(buf *bytes.Buffer, d *diagram.Diagram, title string, headers []string, row func(*diagram.Node) []string) {
	if d.NodeCount() == 0 {
		return
	}
	fmt.Fprintf(buf, "## %s\n\n", title)
	var rows [][]string
	for _, n := range d.Nodes() {
		rows = append(rows, row(n))
	}
	writeTable(buf, headers, rows)
}

func writeRelTable(buf *bytes.Buffer, d *diagram.Diagram, headers []string, row func(diagram.Relationship) []string) {
	if len(d.Relationships) == 0 {
		return
	}
	buf.WriteString("## Relationships\n\n")
	var rows [][]string
	for _, r := range d.Relationships {
		rows = append(rows, row(r))
	}
	writeTable(buf, headers, rows)
}

func writeEntitySection(buf *bytes.Buffer, d *diagram.Diagram) {
	for _, n := range d.Nodes() {
		fmt.Fprintf(buf, "## Entity: %s\n\n", n.DisplayLabel())
		if len(n.Attributes) == 0 {
			buf.WriteString("No attributes.\n\n")
			continue
		}
		var rows [][]string
		for _, a := range n.Attributes {
			rows = append(rows, []string{a.Type, a.Name, a.Constraint})
		}
		writeTable(buf, []string{"Type", "Name", "Key"}, rows)
	}
}

func writeClassSection(buf *bytes.Buffer, d *diagram.Diagram) {
	for _, n := range d.Nodes() {
		fmt.Fprintf(buf, "## Class: %s\n\n", n.DisplayLabel())
		if n.Stereotype != "" {
			fmt.Fprintf(buf, "Stereotype: <<%s>>\n\n", n.Stereotype)
		}
		var rows [][]string
		for _, a := range n.Attributes {
			rows = append(rows, []string{"attribute", a.Constraint + a.Name, a.Type})
		}
		for _, m := range n.Methods {
			sig := m.Name + "(" + m.Params + ")"
			rows = append(rows, []string{"method", m.Visibility + sig, m.Returns})
		}
		if len(rows) == 0 {
			buf.WriteString("No members.\n\n")
			continue
		}
		writeTable(buf, []string{"Member", "Name", "Type"}, rows)
	}
}

func writeMindmapTree(buf *bytes.Buffer, d *diagram.Diagram) {
	root := d.Root()
	if root == nil {
		return
	}
	buf.WriteString("## Tree\n\n")
	var walk func(n *diagram.Node)
	walk = func(n *diagram.Node) {
		fmt.Fprintf(buf, "%s- %s\n", strings.Repeat("  ", n.Level), n.DisplayLabel())
		for _, child := range d.Children(n.ID) {
			walk(child)
		}
	}
	walk(root)
	buf.WriteString("\n")
}

func writeBranchTable(buf *bytes.Buffer, d *diagram.Diagram) {
	if len(d.Branches) == 0 {
		return
	}
	buf.WriteString("## Branches\n\n")
	var rows [][]string
	for _, b := range d.Branches {
		rows = append(rows, []string{b.Name, fmt.Sprintf("%d", len(b.Commits))})
	}
	writeTable(buf, []string{"Branch", "Commits"}, rows)
}

// writeTable renders rows with padded columns sized to the widest cell.
func writeTable(buf *bytes.Buffer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		buf.WriteString("|")
		for i, cell := range cells {
			fmt.Fprintf(buf, " %-*s |", widths[i], cell)
		}
		buf.WriteString("\n")
	}

	writeRow(headers)
	buf.WriteString("|")
	for _, w := range widths {
		buf.WriteString(strings.Repeat("-", w+2) + "|")
	}
	buf.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	buf.WriteString("\n")
}
