// Package validate checks diagram text against dialect-specific structural
// rules. It reuses the conversion parser, so anything the converter would
// accept is the same model the validator inspects. Findings come back in two
// lists: issues make the input invalid, suggestions only downgrade it to a
// warning.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/detect"
	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/parse"
)

// Status classifies the overall validation outcome.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

// Report is the structured validation result.
type Report struct {
	Status            Status          `json:"status"`
	Dialect           diagram.Dialect `json:"dialect"`
	NodeCount         int             `json:"node_count"`
	RelationshipCount int             `json:"relationship_count"`
	SkippedLines      int             `json:"skipped_lines"`
	Issues            []string        `json:"issues"`
	Suggestions       []string        `json:"suggestions"`
}

func (r *Report) issue(format string, args ...any) {
	r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
}

func (r *Report) suggest(format string, args ...any) {
	r.Suggestions = append(r.Suggestions, fmt.Sprintf(format, args...))
}

// flowIDRe is the accepted node id character class for flowcharts.
var flowIDRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// terminalLabels are the labels treated as start/end markers in flowcharts.
var terminalLabels = map[string]bool{
	"start": true, "begin": true, "end": true, "stop": true, "finish": true, "done": true,
}

// Run detects the dialect of text, parses it, and applies the structural
// checks for that dialect. An unrecognized dialect is reported as invalid,
// never as an error: validation always produces a report.
func Run(text string) Report {
	dialect := detect.Detect(text)
	report := Report{Dialect: dialect}

	if dialect == diagram.DialectUnknown {
		report.issue("first line matches no known diagram dialect")
		report.Status = StatusInvalid
		return report
	}

	res, err := parse.Parse(text, dialect)
	if err != nil {
		report.issue("parse failed: %v", err)
		report.Status = StatusInvalid
		return report
	}
	d := res.Diagram

	report.NodeCount = d.NodeCount()
	report.RelationshipCount = len(d.Relationships)
	for _, rec := range res.Report.Skipped() {
		report.SkippedLines++
		report.suggest("line %d not recognized: %q", rec.Number, rec.Text)
	}

	switch dialect {
	case diagram.DialectFlow:
		checkFlow(d, &report)
	case diagram.DialectER:
		checkER(d, &report)
	case diagram.DialectSequence:
		checkSequence(d, &report)
	case diagram.DialectClass:
		checkClass(d, &report)
	case diagram.DialectMindmap:
		checkMindmap(d, &report)
	case diagram.DialectGitGraph:
		checkGitGraph(d, res.Report, &report)
	}

	switch {
	case len(report.Issues) > 0:
		report.Status = StatusInvalid
	case len(report.Suggestions) > 0:
		report.Status = StatusWarning
	default:
		report.Status = StatusValid
	}
	return report
}

func checkFlow(d *diagram.Diagram, r *Report) {
	if d.NodeCount() == 0 {
		r.issue("flowchart declares no nodes")
		return
	}
	for _, n := range d.Nodes() {
		if !flowIDRe.MatchString(n.ID) {
			r.issue("node id %q is not a valid identifier", n.ID)
		}
	}

	var hasTerminal bool
	for _, n := range d.Nodes() {
		if terminalLabels[strings.ToLower(n.DisplayLabel())] {
			hasTerminal = true
			break
		}
	}
	if !hasTerminal {
		r.suggest("no start or end node found (by label); consider marking terminals")
	}
}

func checkER(d *diagram.Diagram, r *Report) {
	if d.NodeCount() == 0 {
		r.issue("diagram declares no entities")
		return
	}
	connected := make(map[string]bool, d.NodeCount())
	for _, rel := range d.Relationships {
		connected[rel.From] = true
		connected[rel.To] = true
	}
	for _, n := range d.Nodes() {
		if !connected[n.ID] {
			r.suggest("entity %q has no relationships", n.ID)
		}
	}
}

func checkSequence(d *diagram.Diagram, r *Report) {
	if d.NodeCount() < 2 {
		r.issue("sequence diagram needs at least two participants, found %d", d.NodeCount())
		return
	}
	// Message endpoints are auto-registered during parsing, so a reference
	// can only be missing if the model was built by hand.
	for _, rel := range d.Relationships {
		if d.Node(rel.From) == nil {
			r.issue("message from unknown participant %q", rel.From)
		}
		if d.Node(rel.To) == nil {
			r.issue("message to unknown participant %q", rel.To)
		}
	}
}

func checkClass(d *diagram.Diagram, r *Report) {
	if d.NodeCount() == 0 {
		r.issue("diagram declares no classes")
		return
	}
	for _, n := range d.Nodes() {
		if len(n.Attributes) == 0 && len(n.Methods) == 0 {
			r.suggest("class %q has no members", n.ID)
		}
	}
}

func checkMindmap(d *diagram.Diagram, r *Report) {
	if d.NodeCount() == 0 {
		r.issue("mindmap declares no nodes")
		return
	}
	var roots int
	for _, n := range d.Nodes() {
		if n.Level == 0 {
			roots++
		}
	}
	if roots != 1 {
		r.issue("mindmap must have exactly one root, found %d", roots)
	}
}

// gitMergeLineRe re-inspects merge directives from the parse report, since a
// merge of an unknown branch leaves no trace in the model beyond a commit
// with no incoming merge connection.
var gitMergeLineRe = regexp.MustCompile(`^merge\s+(\S+)`)

func checkGitGraph(d *diagram.Diagram, lines parse.Report, r *Report) {
	if d.NodeCount() == 0 {
		r.issue("graph declares no commits")
		return
	}
	for _, rec := range lines.Lines {
		if rec.Outcome != parse.OutcomeMatched {
			continue
		}
		m := gitMergeLineRe.FindStringSubmatch(rec.Text)
		if m == nil {
			continue
		}
		b := d.Branch(m[1])
		if b == nil || len(b.Commits) == 0 {
			r.issue("line %d merges branch %q which has no commits", rec.Number, m[1])
		}
	}
}
