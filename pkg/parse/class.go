package parse

import (
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// Class line grammar. Relationship glyphs are ordered so "<|--" and "..>"
// are tried before their shorter overlaps.
var (
	classHeaderRe     = regexp.MustCompile(`(?i)^classdiagram\s*$`)
	classBlockRe      = regexp.MustCompile(`^class\s+(\w+)\s*\{\s*$`)
	classDeclRe       = regexp.MustCompile(`^class\s+(\w+)\s*$`)
	classRelRe        = regexp.MustCompile(`^(\w+)\s*(<\|--|\*--|o--|-->|\.\.>|\.\.)\s*(\w+)(?:\s*:\s*(.+))?$`)
	classStereotypeRe = regexp.MustCompile(`^<<(\w+)>>$`)
	classMethodRe     = regexp.MustCompile(`^([+\-#~])?\s*(\w+)\(([^)]*)\)(?:\s*:?\s*(\S+))?\s*$`)
	classAttrRe       = regexp.MustCompile(`^([+\-#~])?\s*(\w+)\s*:\s*(\S+)\s*$`)
)

// classRelations maps relationship glyphs to kinds.
var classRelations = map[string]diagram.RelationKind{
	"<|--": diagram.RelationInheritance,
	"*--":  diagram.RelationComposition,
	"o--":  diagram.RelationAggregation,
	"..>":  diagram.RelationDependency,
	"..":   diagram.RelationAssociation,
	"-->":  diagram.RelationAssociation,
}

// Class parses classDiagram text: class blocks with attribute and method
// members, stereotype annotations, and relationship lines classified by
// glyph inspection.
func Class(text string) Result {
	d := diagram.New(diagram.DialectClass)
	var report Report

	// current is the class whose member block is open, nil outside one.
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
			if classMatchMember(current, line) {
				report.add(num, line, OutcomeMatched)
			} else {
				report.add(num, line, OutcomeSkipped)
			}
			continue
		}

		switch {
		case classHeaderRe.MatchString(line):
			report.add(num, line, OutcomeMatched)
		default:
			if m := classBlockRe.FindStringSubmatch(line); m != nil {
				current = d.EnsureNode(m[1])
				report.add(num, line, OutcomeMatched)
				continue
			}
			if m := classDeclRe.FindStringSubmatch(line); m != nil {
				d.EnsureNode(m[1])
				report.add(num, line, OutcomeMatched)
				continue
			}
			if classMatchRel(d, line) {
				report.add(num, line, OutcomeMatched)
				continue
			}
			report.add(num, line, OutcomeSkipped)
		}
	}

	return Result{Diagram: d, Report: report}
}

// classMatchMember parses one member line of an open class block.
// Methods are distinguished from attributes by the parameter parentheses.
func classMatchMember(class *diagram.Node, line string) bool {
	if m := classStereotypeRe.FindStringSubmatch(line); m != nil {
		class.Stereotype = m[1]
		return true
	}

	if strings.Contains(line, "(") {
		m := classMethodRe.FindStringSubmatch(line)
		if m == nil {
			return false
		}
		class.Methods = append(class.Methods, diagram.Method{
			Visibility: m[1],
			Name:       m[2],
			Params:     strings.TrimSpace(m[3]),
			Returns:    m[4],
		})
		return true
	}

	m := classAttrRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	class.Attributes = append(class.Attributes, diagram.Attribute{
		Name:       m[2],
		Type:       m[3],
		Constraint: m[1],
	})
	return true
}

// classMatchRel parses a relationship line, auto-registering both classes.
func classMatchRel(d *diagram.Diagram, line string) bool {
	m := classRelRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	d.EnsureNode(m[1])
	d.EnsureNode(m[3])
	d.AddRelationship(diagram.Relationship{
		From:  m[1],
		To:    m[3],
		Label: strings.TrimSpace(m[4]),
		Kind:  classRelations[m[2]],
	})
	return true
}
