package parse

import (
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// Sequence line grammar. Arrow alternatives are ordered longest-first so
// "-->>" is not consumed as "-->" plus a stray ">".
var (
	seqHeaderRe = regexp.MustCompile(`(?i)^sequencediagram\s*$`)
	seqDeclRe   = regexp.MustCompile(`^(participant|actor)\s+(\S+)(?:\s+as\s+(.+))?$`)
	seqMsgRe    = regexp.MustCompile(`^(\S+?)\s*(-->>|->>|--x|-x|--\)|-\)|-->|->)\s*(\S+)\s*:\s*(.*)$`)
	seqNoteRe   = regexp.MustCompile(`(?i)^note\s+(right of|left of|over)\s+([^:]+):\s*(.*)$`)
	seqActRe    = regexp.MustCompile(`^(activate|deactivate)\s+(\S+)\s*$`)
)

// seqArrows maps message glyphs to message types.
var seqArrows = map[string]diagram.MessageType{
	"->>":  diagram.MessageSync,
	"-->>": diagram.MessageAsync,
	"->":   diagram.MessageSync,
	"-->":  diagram.MessageAsync,
	"-x":   diagram.MessageLost,
	"--x":  diagram.MessageLost,
	"-)":   diagram.MessageCreate,
	"--)":  diagram.MessageCreate,
}

// Sequence parses sequenceDiagram text: participant declarations, messages,
// notes, and activation markers. Participants referenced in a message but
// never declared are auto-registered in first-seen order.
func Sequence(text string) Result {
	d := diagram.New(diagram.DialectSequence)
	var report Report

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		num := i + 1
		switch {
		case line == "":
			report.add(num, "", OutcomeBlank)
		case seqMatchLine(d, line):
			report.add(num, line, OutcomeMatched)
		default:
			report.add(num, line, OutcomeSkipped)
		}
	}

	return Result{Diagram: d, Report: report}
}

func seqMatchLine(d *diagram.Diagram, line string) bool {
	if seqHeaderRe.MatchString(line) {
		return true
	}

	if m := seqDeclRe.FindStringSubmatch(line); m != nil {
		label := strings.TrimSpace(m[3])
		if label == "" {
			label = m[2]
		}
		d.AddNode(diagram.Node{ID: m[2], Label: label, Actor: m[1] == "actor"})
		return true
	}

	if m := seqMsgRe.FindStringSubmatch(line); m != nil {
		d.EnsureNode(m[1])
		d.EnsureNode(m[3])
		d.AddRelationship(diagram.Relationship{
			From:    m[1],
			To:      m[3],
			Label:   strings.TrimSpace(m[4]),
			Message: seqArrows[m[2]],
		})
		return true
	}

	if m := seqNoteRe.FindStringSubmatch(line); m != nil {
		var participants []string
		for _, p := range strings.Split(m[2], ",") {
			if p = strings.TrimSpace(p); p != "" {
				participants = append(participants, p)
				d.EnsureNode(p)
			}
		}
		d.Notes = append(d.Notes, diagram.Note{
			Position:     diagram.NotePosition(strings.ToLower(m[1])),
			Participants: participants,
			Text:         strings.TrimSpace(m[3]),
		})
		return true
	}

	if m := seqActRe.FindStringSubmatch(line); m != nil {
		d.EnsureNode(m[2])
		d.Activations = append(d.Activations, diagram.Activation{
			Participant: m[2],
			Activate:    m[1] == "activate",
			Index:       len(d.Relationships),
		})
		return true
	}

	return false
}
