package parse

import (
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// ER line grammar. Cardinality tokens come from a fixed 6-symbol alphabet
// bracketing "--"; two-character alternatives are ordered so "||" wins over
// "|o" prefix overlap.
const erCardPattern = `\|\||\|o|o\||\}\||\|\{|\}o|o\{`

var (
	erHeaderRe = regexp.MustCompile(`(?i)^erdiagram\s*$`)
	erRelRe    = regexp.MustCompile(`^(\w+)\s+(` + erCardPattern + `)--(` + erCardPattern + `)\s+(\w+)\s*:\s*(.+)$`)
	erBlockRe  = regexp.MustCompile(`^(\w+)\s*\{\s*$`)
	erAttrRe   = regexp.MustCompile(`^(\S+)\s+(\S+)(?:\s+(PK|FK|UK))?\s*$`)
)

// ER parses erDiagram text: relationship lines and brace-delimited entity
// attribute blocks. Attribute order matches declaration order and key
// constraint tags are preserved verbatim.
func ER(text string) Result {
	d := diagram.New(diagram.DialectER)
	var report Report

	// current is the entity whose attribute block is open, nil outside one.
	var current *diagram.Node

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		num := i + 1

		if line == "" {
			report.add(num, "", OutcomeBlank)
			continue
		}

		if current != nil {
			if line == "}" {
				current = nil
				report.add(num, line, OutcomeMatched)
				continue
			}
			if m := erAttrRe.FindStringSubmatch(line); m != nil {
				current.Attributes = append(current.Attributes, diagram.Attribute{
					Type:       m[1],
					Name:       m[2],
					Constraint: m[3],
				})
				report.add(num, line, OutcomeMatched)
				continue
			}
			report.add(num, line, OutcomeSkipped)
			continue
		}

		switch {
		case erHeaderRe.MatchString(line):
			report.add(num, line, OutcomeMatched)
		case erMatchRel(d, line):
			report.add(num, line, OutcomeMatched)
		default:
			if m := erBlockRe.FindStringSubmatch(line); m != nil {
				current = d.EnsureNode(m[1])
				report.add(num, line, OutcomeMatched)
				continue
			}
			report.add(num, line, OutcomeSkipped)
		}
	}

	return Result{Diagram: d, Report: report}
}

// erMatchRel parses a relationship line, auto-registering both entities.
func erMatchRel(d *diagram.Diagram, line string) bool {
	m := erRelRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	d.EnsureNode(m[1])
	d.EnsureNode(m[4])
	d.AddRelationship(diagram.Relationship{
		From:     m[1],
		To:       m[4],
		FromCard: m[2],
		ToCard:   m[3],
		Label:    strings.TrimSpace(m[5]),
	})
	return true
}
