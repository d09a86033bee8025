package detect

import (
	"testing"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want diagram.Dialect
	}{
		{"Flowchart", "flowchart TD\nA --> B", diagram.DialectFlow},
		{"Graph", "graph LR\nA --> B", diagram.DialectFlow},
		{"ER", "erDiagram\nX ||--o{ Y : has", diagram.DialectER},
		{"Sequence", "sequenceDiagram\nA->>B: Hi", diagram.DialectSequence},
		{"Class", "classDiagram\nclass Animal", diagram.DialectClass},
		{"Mindmap", "mindmap\nRoot", diagram.DialectMindmap},
		{"GitGraph", "gitGraph\ncommit", diagram.DialectGitGraph},
		{"Unknown", "pie title Pets\n\"Dogs\": 3", diagram.DialectUnknown},
		{"Empty", "", diagram.DialectUnknown},
		{"OnlyBlankLines", "\n\n  \n", diagram.DialectUnknown},
		{"LeadingBlankLines", "\n\n  flowchart TD\nA", diagram.DialectFlow},
		{"TrailingWhitespace", "erDiagram   \n", diagram.DialectER},
		{"MixedCase", "SequenceDiagram\nA->>B: Hi", diagram.DialectSequence},
		{"UpperCase", "GITGRAPH\ncommit", diagram.DialectGitGraph},
		// gitGraph must win over the generic "graph" keyword.
		{"GitGraphPrecedence", "gitGraph LR:\ncommit", diagram.DialectGitGraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
