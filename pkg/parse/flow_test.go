package parse

import (
	"testing"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

func TestFlow(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantNodes int
		wantRels  int
		check     func(t *testing.T, d *diagram.Diagram)
	}{
		{
			name:      "SpecScenario",
			text:      "flowchart TD\nA[Start] --> B{Check}\nB -->|Yes| C[Done]",
			wantNodes: 3,
			wantRels:  2,
			check: func(t *testing.T, d *diagram.Diagram) {
				wantShapes := map[string]diagram.Shape{
					"A": diagram.ShapeRectangle,
					"B": diagram.ShapeDiamond,
					"C": diagram.ShapeRectangle,
				}
				for id, shape := range wantShapes {
					if got := d.Node(id).Shape; got != shape {
						t.Errorf("node %s shape = %q, want %q", id, got, shape)
					}
				}
				if d.Relationships[0].Label != "" {
					t.Errorf("first edge label = %q, want empty", d.Relationships[0].Label)
				}
				if d.Relationships[1].Label != "Yes" {
					t.Errorf("second edge label = %q, want Yes", d.Relationships[1].Label)
				}
			},
		},
		{
			name:      "Direction",
			text:      "graph LR\nA --> B",
			wantNodes: 2,
			wantRels:  1,
			check: func(t *testing.T, d *diagram.Diagram) {
				if d.Direction != "LR" {
					t.Errorf("Direction = %q, want LR", d.Direction)
				}
			},
		},
		{
			name:      "DefaultDirection",
			text:      "flowchart\nA --> B",
			wantNodes: 2,
			wantRels:  1,
			check: func(t *testing.T, d *diagram.Diagram) {
				if d.Direction != "TD" {
					t.Errorf("Direction = %q, want TD", d.Direction)
				}
			},
		},
		{
			name:      "AllShapes",
			text:      "flowchart TD\nA[rect]\nB(round)\nC{diamond}\nD([stadium])\nE((circle))\nF[[sub]]",
			wantNodes: 6,
			wantRels:  0,
			check: func(t *testing.T, d *diagram.Diagram) {
				want := map[string]diagram.Shape{
					"A": diagram.ShapeRectangle,
					"B": diagram.ShapeRounded,
					"C": diagram.ShapeDiamond,
					"D": diagram.ShapeStadium,
					"E": diagram.ShapeCircle,
					"F": diagram.ShapeSubroutine,
				}
				for id, shape := range want {
					if got := d.Node(id).Shape; got != shape {
						t.Errorf("node %s shape = %q, want %q", id, got, shape)
					}
				}
			},
		},
		{
			name:      "AllArrows",
			text:      "flowchart TD\nA --> B\nB --- C\nC -.-> D\nD ==> E",
			wantNodes: 5,
			wantRels:  4,
			check: func(t *testing.T, d *diagram.Diagram) {
				want := []diagram.FlowArrow{
					diagram.ArrowSolid, diagram.ArrowOpen,
					diagram.ArrowDotted, diagram.ArrowThick,
				}
				for i, arrow := range want {
					if got := d.Relationships[i].Arrow; got != arrow {
						t.Errorf("edge %d arrow = %q, want %q", i, got, arrow)
					}
				}
			},
		},
		{
			name:      "BareNodeStaysPlaceholder",
			text:      "flowchart TD\nA --> B",
			wantNodes: 2,
			wantRels:  1,
			check: func(t *testing.T, d *diagram.Diagram) {
				if got := d.Node("A").Shape; got != diagram.ShapeDefault {
					t.Errorf("bare node shape = %q, want unset", got)
				}
				if got := d.Node("A").Label; got != "" {
					t.Errorf("bare node label = %q, want empty", got)
				}
				if got := d.Node("A").DisplayLabel(); got != "A" {
					t.Errorf("bare node display label = %q, want id", got)
				}
			},
		},
		{
			name:      "DeclarationAfterBareReference",
			text:      "flowchart TD\nA --> B\nA{Check}",
			wantNodes: 2,
			wantRels:  1,
			check: func(t *testing.T, d *diagram.Diagram) {
				if got := d.Node("A").Shape; got != diagram.ShapeDiamond {
					t.Errorf("A shape = %q, want diamond", got)
				}
				if got := d.Node("A").Label; got != "Check" {
					t.Errorf("A label = %q, want Check", got)
				}
			},
		},
		{
			name:      "ShapeOnEdgeLine",
			text:      "flowchart TD\nA[Start] --> B(End)",
			wantNodes: 2,
			wantRels:  1,
			check: func(t *testing.T, d *diagram.Diagram) {
				if got := d.Node("B").Shape; got != diagram.ShapeRounded {
					t.Errorf("B shape = %q, want rounded", got)
				}
				if got := d.Node("B").Label; got != "End" {
					t.Errorf("B label = %q, want End", got)
				}
			},
		},
		{
			name:      "MalformedLinesSkipped",
			text:      "flowchart TD\nA --> B\nthis is not a thing\nB --> C",
			wantNodes: 3,
			wantRels:  2,
		},
		{
			name:      "Empty",
			text:      "flowchart TD",
			wantNodes: 0,
			wantRels:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Flow(tt.text)
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

func TestFlowReport(t *testing.T) {
	res := Flow("flowchart TD\n\nA --> B\ngarbage line here!\n")
	skipped := res.Report.Skipped()
	if len(skipped) != 1 {
		t.Fatalf("len(Skipped) = %d, want 1", len(skipped))
	}
	if skipped[0].Text != "garbage line here!" {
		t.Errorf("skipped text = %q", skipped[0].Text)
	}
	if skipped[0].Number != 4 {
		t.Errorf("skipped line number = %d, want 4", skipped[0].Number)
	}
	if got := res.Report.Matched(); got != 2 {
		t.Errorf("Matched() = %d, want 2", got)
	}
}
