// Package parse implements the six dialect parsers that turn raw diagram
// text into the canonical model.
//
// # Parsing Policy
//
// Parsing is permissive: a line that matches no grammar rule of the dialect
// is skipped, never an error. Unlike an implicit skip, every line's outcome
// is recorded in a [Report] so callers (and tests) can inspect exactly what
// was matched, skipped, or blank.
//
// # Dangling References
//
// A relationship that names a node never declared auto-registers a
// placeholder node. This policy is uniform across all dialects; the one
// exception is a gitGraph merge of a branch that was never created, which
// records the merge commit but produces no cross-branch connection.
//
// # Usage
//
//	res, err := parse.Parse(text, diagram.DialectFlow)
//	if err != nil {
//	    // unsupported dialect - a contract violation, not bad input
//	}
//	model := res.Diagram
//	for _, rec := range res.Report.Skipped() {
//	    log.Debug("skipped line", "line", rec.Number, "text", rec.Text)
//	}
package parse

import (
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/errors"
)

// Outcome classifies how a single input line was handled.
type Outcome string

// Line outcomes.
const (
	OutcomeMatched Outcome = "matched"
	OutcomeSkipped Outcome = "skipped"
	OutcomeBlank   Outcome = "blank"
)

// LineRecord is the parse outcome for one input line.
type LineRecord struct {
	Number  int    // 1-based line number
	Text    string // trimmed line text
	Outcome Outcome
}

// Report collects per-line outcomes for a full parse.
type Report struct {
	Lines []LineRecord
}

// add appends an outcome record. Blank lines store empty text.
func (r *Report) add(number int, text string, outcome Outcome) {
	r.Lines = append(r.Lines, LineRecord{Number: number, Text: text, Outcome: outcome})
}

// Skipped returns the records for lines that matched no grammar rule.
func (r *Report) Skipped() []LineRecord {
	var out []LineRecord
	for _, rec := range r.Lines {
		if rec.Outcome == OutcomeSkipped {
			out = append(out, rec)
		}
	}
	return out
}

// Matched returns the number of lines that matched a grammar rule.
func (r *Report) Matched() int {
	n := 0
	for _, rec := range r.Lines {
		if rec.Outcome == OutcomeMatched {
			n++
		}
	}
	return n
}

// Result is the output of a parse: the canonical model plus the line report.
type Result struct {
	Diagram *diagram.Diagram
	Report  Report
}

// Parse dispatches to the parser for the given dialect. It returns an error
// only for diagram.DialectUnknown or a dialect with no parser; malformed
// input never errors.
func Parse(text string, dialect diagram.Dialect) (Result, error) {
	switch dialect {
	case diagram.DialectFlow:
		return Flow(text), nil
	case diagram.DialectER:
		return ER(text), nil
	case diagram.DialectSequence:
		return Sequence(text), nil
	case diagram.DialectClass:
		return Class(text), nil
	case diagram.DialectMindmap:
		return Mindmap(text), nil
	case diagram.DialectGitGraph:
		return GitGraph(text), nil
	default:
		return Result{}, errors.New(errors.ErrCodeUnsupported, "no parser for dialect %q", dialect)
	}
}

// splitLines splits text into lines, handling both \n and \r\n endings.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
