package validate

import (
	"strings"
	"testing"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

func TestRunValidFlow(t *testing.T) {
	r := Run("flowchart TD\n  A[Start] --> B[Work]\n  B --> C[End]\n")
	if r.Status != StatusValid {
		t.Fatalf("Status = %q, want %q (issues: %v, suggestions: %v)", r.Status, StatusValid, r.Issues, r.Suggestions)
	}
	if r.Dialect != diagram.DialectFlow {
		t.Errorf("Dialect = %q, want %q", r.Dialect, diagram.DialectFlow)
	}
	if r.NodeCount != 3 || r.RelationshipCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", r.NodeCount, r.RelationshipCount)
	}
}

func TestRunFlowMissingTerminal(t *testing.T) {
	r := Run("flowchart TD\n  A[Fetch] --> B[Store]\n")
	if r.Status != StatusWarning {
		t.Fatalf("Status = %q, want %q", r.Status, StatusWarning)
	}
	if len(r.Suggestions) != 1 || !strings.Contains(r.Suggestions[0], "start or end") {
		t.Errorf("Suggestions = %v, want terminal hint", r.Suggestions)
	}
}

func TestRunFlowEmpty(t *testing.T) {
	r := Run("flowchart TD\n")
	if r.Status != StatusInvalid {
		t.Fatalf("Status = %q, want %q", r.Status, StatusInvalid)
	}
	if len(r.Issues) == 0 || !strings.Contains(r.Issues[0], "no nodes") {
		t.Errorf("Issues = %v, want no-nodes issue", r.Issues)
	}
}

func TestRunUnknownDialect(t *testing.T) {
	r := Run("this is not a diagram\n")
	if r.Status != StatusInvalid {
		t.Fatalf("Status = %q, want %q", r.Status, StatusInvalid)
	}
	if r.Dialect != diagram.DialectUnknown {
		t.Errorf("Dialect = %q, want %q", r.Dialect, diagram.DialectUnknown)
	}
}

func TestRunSkippedLinesAreSuggestions(t *testing.T) {
	r := Run("flowchart TD\n  A[Start] --> B[End]\n  !!! garbage !!!\n")
	if r.Status != StatusWarning {
		t.Fatalf("Status = %q, want %q", r.Status, StatusWarning)
	}
	if r.SkippedLines != 1 {
		t.Errorf("SkippedLines = %d, want 1", r.SkippedLines)
	}
	var found bool
	for _, s := range r.Suggestions {
		if strings.Contains(s, "line 3") && strings.Contains(s, "garbage") {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want skipped-line entry for line 3", r.Suggestions)
	}
}

func TestRunEROrphanEntity(t *testing.T) {
	r := Run("erDiagram\n  USER ||--o{ ORDER : places\n  AUDIT {\n    int id PK\n  }\n")
	if r.Status != StatusWarning {
		t.Fatalf("Status = %q, want %q (issues: %v)", r.Status, StatusWarning, r.Issues)
	}
	if len(r.Suggestions) != 1 || !strings.Contains(r.Suggestions[0], `"AUDIT"`) {
		t.Errorf("Suggestions = %v, want orphan AUDIT", r.Suggestions)
	}
}

func TestRunSequenceTooFewParticipants(t *testing.T) {
	r := Run("sequenceDiagram\n  participant A\n")
	if r.Status != StatusInvalid {
		t.Fatalf("Status = %q, want %q", r.Status, StatusInvalid)
	}
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], "two participants") {
		t.Errorf("Issues = %v, want participant-count issue", r.Issues)
	}
}

func TestRunSequenceValid(t *testing.T) {
	r := Run("sequenceDiagram\n  A->>B: ping\n  B-->>A: pong\n")
	if r.Status != StatusValid {
		t.Fatalf("Status = %q, want %q (issues: %v, suggestions: %v)", r.Status, StatusValid, r.Issues, r.Suggestions)
	}
}

func TestRunClassEmptyBody(t *testing.T) {
	r := Run("classDiagram\n  class Animal {\n  }\n  class Dog {\n    +bark() void\n  }\n  Animal <|-- Dog\n")
	if r.Status != StatusWarning {
		t.Fatalf("Status = %q, want %q (issues: %v)", r.Status, StatusWarning, r.Issues)
	}
	if len(r.Suggestions) != 1 || !strings.Contains(r.Suggestions[0], `"Animal"`) {
		t.Errorf("Suggestions = %v, want empty-Animal suggestion", r.Suggestions)
	}
}

func TestRunMindmapSingleRoot(t *testing.T) {
	r := Run("mindmap\n  root((Center))\n    A\n    B\n")
	if r.Status != StatusValid {
		t.Fatalf("Status = %q, want %q (issues: %v, suggestions: %v)", r.Status, StatusValid, r.Issues, r.Suggestions)
	}
}

func TestRunGitGraphGhostMerge(t *testing.T) {
	r := Run("gitGraph\n  commit\n  merge ghost\n")
	if r.Status != StatusInvalid {
		t.Fatalf("Status = %q, want %q", r.Status, StatusInvalid)
	}
	if len(r.Issues) != 1 || !strings.Contains(r.Issues[0], `"ghost"`) {
		t.Errorf("Issues = %v, want ghost-merge issue", r.Issues)
	}
}

func TestRunGitGraphValid(t *testing.T) {
	r := Run("gitGraph\n  commit\n  branch dev\n  commit\n  checkout main\n  merge dev\n")
	if r.Status != StatusValid {
		t.Fatalf("Status = %q, want %q (issues: %v, suggestions: %v)", r.Status, StatusValid, r.Issues, r.Suggestions)
	}
}
