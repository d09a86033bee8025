// Package detect classifies raw diagram text into one of the supported
// dialects by inspecting the first non-empty line.
//
// Detection is a pure function: no parsing, no side effects. Keywords are
// tested in a fixed precedence order so that specific keywords are not
// shadowed by the generic flow-graph keyword ("graph" would otherwise match
// "gitGraph").
package detect

import (
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// keywordRule maps a leading keyword to a dialect. Order is significant.
type keywordRule struct {
	keyword string
	dialect diagram.Dialect
}

// rules in precedence order: most specific keywords first.
var rules = []keywordRule{
	{"gitgraph", diagram.DialectGitGraph},
	{"erdiagram", diagram.DialectER},
	{"sequencediagram", diagram.DialectSequence},
	{"classdiagram", diagram.DialectClass},
	{"mindmap", diagram.DialectMindmap},
	{"flowchart", diagram.DialectFlow},
	{"graph", diagram.DialectFlow},
}

// Detect returns the dialect of the given diagram text, or
// diagram.DialectUnknown when the first non-empty line matches no known
// keyword. Matching is case-insensitive and ignores surrounding whitespace.
func Detect(text string) diagram.Dialect {
	line := firstLine(text)
	if line == "" {
		return diagram.DialectUnknown
	}
	line = strings.ToLower(line)
	for _, r := range rules {
		if strings.HasPrefix(line, r.keyword) {
			return r.dialect
		}
	}
	return diagram.DialectUnknown
}

// firstLine returns the first non-blank line of text, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
