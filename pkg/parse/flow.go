package parse

import (
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// Flow-graph line grammar. Shape brackets are matched longest-pair-first so
// that "([" is not consumed as "(".
const flowShapePattern = `\(\[[^\]]*\]\)|\(\([^)]*\)\)|\[\[[^\]]*\]\]|\[[^\]]*\]|\([^)]*\)|\{[^}]*\}`

var (
	flowHeaderRe = regexp.MustCompile(`(?i)^(?:flowchart|graph)(?:\s+(TD|TB|LR|RL|BT))?\s*$`)
	flowEdgeRe   = regexp.MustCompile(`^(\w+)\s*(` + flowShapePattern + `)?\s*(-->|---|-\.->|==>)\s*(?:\|([^|]*)\|\s*)?(\w+)\s*(` + flowShapePattern + `)?\s*$`)
	flowNodeRe   = regexp.MustCompile(`^(\w+)\s*(` + flowShapePattern + `)\s*$`)
)

// flowArrows maps connector glyphs to arrow kinds.
var flowArrows = map[string]diagram.FlowArrow{
	"-->":  diagram.ArrowSolid,
	"---":  diagram.ArrowOpen,
	"-.->": diagram.ArrowDotted,
	"==>":  diagram.ArrowThick,
}

// Flow parses flowchart/graph text. Recognized lines are the direction
// header, standalone node declarations, and edge declarations; everything
// else is skipped.
func Flow(text string) Result {
	d := diagram.New(diagram.DialectFlow)
	d.Direction = "TD"
	var report Report

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		num := i + 1
		switch {
		case line == "":
			report.add(num, "", OutcomeBlank)
		case flowMatchLine(d, line):
			report.add(num, line, OutcomeMatched)
		default:
			report.add(num, line, OutcomeSkipped)
		}
	}

	return Result{Diagram: d, Report: report}
}

// flowMatchLine applies the flow grammar rules in order and reports whether
// any rule matched.
func flowMatchLine(d *diagram.Diagram, line string) bool {
	if m := flowHeaderRe.FindStringSubmatch(line); m != nil {
		if m[1] != "" {
			d.Direction = strings.ToUpper(m[1])
		}
		return true
	}

	if m := flowEdgeRe.FindStringSubmatch(line); m != nil {
		from := flowRegisterNode(d, m[1], m[2])
		to := flowRegisterNode(d, m[5], m[6])
		d.AddRelationship(diagram.Relationship{
			From:  from,
			To:    to,
			Label: strings.TrimSpace(m[4]),
			Arrow: flowArrows[m[3]],
		})
		return true
	}

	if m := flowNodeRe.FindStringSubmatch(line); m != nil {
		flowRegisterNode(d, m[1], m[2])
		return true
	}

	return false
}

// flowRegisterNode adds or updates a node from an id and optional bracket
// chunk, returning the node id. A bare reference registers a placeholder
// with no label or shape so that a later declaration can fill both in.
func flowRegisterNode(d *diagram.Diagram, id, bracket string) string {
	shape, label := flowShape(bracket)
	d.AddNode(diagram.Node{ID: id, Label: label, Shape: shape})
	return id
}

// flowShape decodes a bracket chunk into a shape and inner label. An empty
// chunk means the node was referenced bare; the shape and label stay unset
// until a declaration supplies them.
func flowShape(bracket string) (diagram.Shape, string) {
	switch {
	case bracket == "":
		return diagram.ShapeDefault, ""
	case strings.HasPrefix(bracket, "(["):
		return diagram.ShapeStadium, strings.TrimSuffix(strings.TrimPrefix(bracket, "(["), "])")
	case strings.HasPrefix(bracket, "(("):
		return diagram.ShapeCircle, strings.TrimSuffix(strings.TrimPrefix(bracket, "(("), "))")
	case strings.HasPrefix(bracket, "[["):
		return diagram.ShapeSubroutine, strings.TrimSuffix(strings.TrimPrefix(bracket, "[["), "]]")
	case strings.HasPrefix(bracket, "["):
		return diagram.ShapeRectangle, strings.TrimSuffix(strings.TrimPrefix(bracket, "["), "]")
	case strings.HasPrefix(bracket, "("):
		return diagram.ShapeRounded, strings.TrimSuffix(strings.TrimPrefix(bracket, "("), ")")
	case strings.HasPrefix(bracket, "{"):
		return diagram.ShapeDiamond, strings.TrimSuffix(strings.TrimPrefix(bracket, "{"), "}")
	default:
		return diagram.ShapeRectangle, bracket
	}
}
