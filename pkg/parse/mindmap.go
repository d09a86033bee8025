package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

var mindmapHeaderRe = regexp.MustCompile(`(?i)^mindmap\s*$`)

// mindmapArena accumulates nodes during tree construction. Parent links are
// arena indices, which makes the tree acyclic by construction: a node's
// parent always has a smaller index.
type mindmapArena struct {
	nodes []mindmapNode
}

type mindmapNode struct {
	id     string
	label  string
	shape  diagram.Shape
	level  int
	parent int // arena index of the parent, -1 for the root
}

// attach appends a node whose parent is the nearest ancestor with a smaller
// level, tracked by the caller's level stack.
func (a *mindmapArena) attach(label string, shape diagram.Shape, level, parent int) int {
	idx := len(a.nodes)
	a.nodes = append(a.nodes, mindmapNode{
		id:     fmt.Sprintf("mm%d", idx),
		label:  label,
		shape:  shape,
		level:  level,
		parent: parent,
	})
	return idx
}

// Mindmap parses mindmap text. Hierarchy comes purely from leading
// whitespace (two spaces per level); shape comes from the bracket pair
// around the text. The result is a single-rooted tree: any node indented as
// deeply as (or deeper than) its predecessor attaches to the nearest
// shallower ancestor.
func Mindmap(text string) Result {
	d := diagram.New(diagram.DialectMindmap)
	var report Report
	arena := &mindmapArena{}

	// stack holds the current ancestor chain. indent is the raw source
	// indentation used for popping; level is the recorded tree depth,
	// always the parent's depth plus one so gaps in indentation never
	// leak into the model.
	type levelEntry struct {
		indent int
		level  int
		index  int
	}
	var stack []levelEntry

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		num := i + 1

		if line == "" {
			report.add(num, "", OutcomeBlank)
			continue
		}
		if mindmapHeaderRe.MatchString(line) {
			report.add(num, line, OutcomeMatched)
			continue
		}

		indent := mindmapLevel(raw)
		shape, label := mindmapShape(line)
		if label == "" {
			report.add(num, line, OutcomeSkipped)
			continue
		}

		// Pop ancestors indented as deeply as this line before attaching.
		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		parent := -1
		level := 0
		if len(stack) > 0 {
			parent = stack[len(stack)-1].index
			level = stack[len(stack)-1].level + 1
		} else if len(arena.nodes) > 0 {
			// A second root-level line attaches to the root to keep the
			// tree single-rooted.
			parent = 0
			level = 1
		}

		idx := arena.attach(label, shape, level, parent)
		stack = append(stack, levelEntry{indent: indent, level: level, index: idx})
		report.add(num, line, OutcomeMatched)
	}

	for _, n := range arena.nodes {
		parentID := ""
		if n.parent >= 0 {
			parentID = arena.nodes[n.parent].id
		}
		d.AddNode(diagram.Node{
			ID:     n.id,
			Label:  n.label,
			Shape:  n.shape,
			Level:  n.level,
			Parent: parentID,
		})
	}

	return Result{Diagram: d, Report: report}
}

// mindmapLevel computes the nesting level from leading whitespace,
// floor-divided at two columns per level. Tabs count as one level each.
func mindmapLevel(raw string) int {
	spaces := 0
	for _, r := range raw {
		if r == ' ' {
			spaces++
		} else if r == '\t' {
			spaces += 2
		} else {
			break
		}
	}
	return spaces / 2
}

// mindmapShape decodes the bracket convention around a node's text. The
// brackets may carry a leading identifier ("root((Center))"), which is
// dropped in favor of the inner text.
func mindmapShape(line string) (diagram.Shape, string) {
	type conv struct {
		open, close string
		shape       diagram.Shape
	}
	// Paired conventions first, longest delimiters first.
	conventions := []conv{
		{"((", "))", diagram.ShapeCircle},
		{"{{", "}}", diagram.ShapeHexagon},
		{"(", ")", diagram.ShapeRounded},
		{"[", "]", diagram.ShapeRectangle},
		{")", "(", diagram.ShapeCloud},
	}
	rest := strings.TrimLeft(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_")
	for _, c := range conventions {
		if strings.HasPrefix(rest, c.open) && strings.HasSuffix(rest, c.close) && len(rest) > len(c.open)+len(c.close) {
			return c.shape, strings.TrimSpace(rest[len(c.open) : len(rest)-len(c.close)])
		}
	}
	return diagram.ShapeDefault, line
}
