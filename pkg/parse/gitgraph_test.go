package parse

import (
	"testing"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

func TestGitGraph(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNodes int
		wantRels  int
		check     func(t *testing.T, d *diagram.Diagram)
	}{
		{
			name:      "LinearCommits",
			text:      "gitGraph\ncommit\ncommit\ncommit",
			wantNodes: 3,
			wantRels:  2,
			check: func(t *testing.T, d *diagram.Diagram) {
				for _, n := range d.Nodes() {
					if n.Branch != "main" {
						t.Errorf("commit %s branch = %q, want main", n.ID, n.Branch)
					}
				}
				if got := len(d.Branch("main").Commits); got != 3 {
					t.Errorf("main commit list = %d, want 3", got)
				}
			},
		},
		{
			name:      "CommitOptions",
			text:      `gitGraph` + "\n" + `commit id:"rel" tag:"v1.0" type:HIGHLIGHT`,
			wantNodes: 1,
			wantRels:  0,
			check: func(t *testing.T, d *diagram.Diagram) {
				n := d.Node("rel")
				if n == nil {
					t.Fatal("commit id not used as node id")
				}
				if n.Tag != "v1.0" {
					t.Errorf("tag = %q, want v1.0", n.Tag)
				}
				if n.CommitType != "HIGHLIGHT" {
					t.Errorf("type = %q, want HIGHLIGHT", n.CommitType)
				}
			},
		},
		{
			name:      "BranchAndMerge",
			text:      "gitGraph\ncommit\nbranch develop\ncommit\ncheckout main\nmerge develop",
			wantNodes: 3,
			wantRels:  3,
			check: func(t *testing.T, d *diagram.Diagram) {
				if len(d.Branches) != 2 {
					t.Fatalf("branches = %d, want 2", len(d.Branches))
				}
				// The merge commit connects both to main's head and to
				// develop's head.
				merge := d.Nodes()[2]
				incoming := 0
				for _, r := range d.Relationships {
					if r.To == merge.ID {
						incoming++
					}
				}
				if incoming != 2 {
					t.Errorf("merge commit incoming = %d, want 2", incoming)
				}
			},
		},
		{
			name:      "MergeGhostBranch",
			text:      "gitGraph\nmerge ghost",
			wantNodes: 1,
			wantRels:  0,
			check: func(t *testing.T, d *diagram.Diagram) {
				// The merge commit exists but its source lookup yields no
				// connection.
				if d.Nodes()[0].Branch != "main" {
					t.Errorf("merge commit branch = %q", d.Nodes()[0].Branch)
				}
			},
		},
		{
			name:      "BranchForksFromHead",
			text:      "gitGraph\ncommit id:\"a\"\nbranch feature\ncommit id:\"b\"",
			wantNodes: 2,
			wantRels:  1,
			check: func(t *testing.T, d *diagram.Diagram) {
				r := d.Relationships[0]
				if r.From != "a" || r.To != "b" {
					t.Errorf("fork edge = %s->%s, want a->b", r.From, r.To)
				}
				if d.Node("b").Branch != "feature" {
					t.Errorf("b branch = %q, want feature", d.Node("b").Branch)
				}
			},
		},
		{
			name:      "UnknownDirectiveSkipped",
			text:      "gitGraph\ncommit\ncherry-pick id:\"x\"\ncommit",
			wantNodes: 2,
			wantRels:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := GitGraph(tt.text)
			d := res.Diagram
			if d.NodeCount() != tt.wantNodes {
				t.Errorf("NodeCount = %d, want %d", d.NodeCount(), tt.wantNodes)
			}
			if len(d.Relationships) != tt.wantRels {
				t.Errorf("len(Relationships) = %d, want %d", len(d.Relationships), tt.wantRels)
			}
			if tt.check != nil {
				tt.check(t, d)
			}
		})
	}
}

func TestParseDispatch(t *testing.T) {
	if _, err := Parse("flowchart TD\nA --> B", diagram.DialectFlow); err != nil {
		t.Errorf("Parse(flow) error = %v", err)
	}
	if _, err := Parse("anything", diagram.DialectUnknown); err == nil {
		t.Error("Parse(unknown) should error")
	}
}
