package layout

import (
	"os"
	"reflect"
	"testing"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/parse"
)

func mustParse(t *testing.T, text string, dialect diagram.Dialect) *diagram.Diagram {
	t.Helper()
	res, err := parse.Parse(text, dialect)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return res.Diagram
}

func TestComputeUnsupportedDialect(t *testing.T) {
	d := diagram.New(diagram.DialectUnknown)
	if _, err := Compute(d, nil); err == nil {
		t.Error("Compute should error for an unknown dialect")
	}
}

func TestComputeDeterministic(t *testing.T) {
	text := "mindmap\nRoot\n  A\n    A1\n  B\n  C"
	d := mustParse(t, text, diagram.DialectMindmap)

	first, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Positions, second.Positions) {
		t.Error("layout is not deterministic")
	}
}

func TestFlowLayoutDirections(t *testing.T) {
	tests := []struct {
		name       string
		direction  string
		horizontal bool
		reversed   bool
	}{
		{"TD", "TD", false, false},
		{"TB", "TB", false, false},
		{"LR", "LR", true, false},
		{"RL", "RL", true, true},
		{"BT", "BT", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, "flowchart "+tt.direction+"\nA --> B\nB --> C", diagram.DialectFlow)
			res, err := Compute(d, nil)
			if err != nil {
				t.Fatal(err)
			}

			a, c := res.Positions["A"], res.Positions["C"]
			if tt.horizontal {
				if a.Y != c.Y {
					t.Error("horizontal layout should keep a single row")
				}
				if !tt.reversed && a.X >= c.X {
					t.Error("LR should place A left of C")
				}
				if tt.reversed && a.X <= c.X {
					t.Error("RL should place A right of C")
				}
			} else {
				if a.X != c.X {
					t.Error("vertical layout should keep a single column")
				}
				if !tt.reversed && a.Y >= c.Y {
					t.Error("TD should place A above C")
				}
				if tt.reversed && a.Y <= c.Y {
					t.Error("BT should place A below C")
				}
			}
			if len(res.Routes) != 2 {
				t.Errorf("routes = %d, want 2", len(res.Routes))
			}
		})
	}
}

func TestRelationshipConservation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		dialect diagram.Dialect
	}{
		{"Flow", "flowchart TD\nA --> B\nB --> C\nC --> A", diagram.DialectFlow},
		{"ER", "erDiagram\nX ||--o{ Y : has\nY ||--|| Z : owns", diagram.DialectER},
		{"Sequence", "sequenceDiagram\nA->>B: one\nB-->>A: two", diagram.DialectSequence},
		{"Class", "classDiagram\nA <|-- B\nB *-- C", diagram.DialectClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.text, tt.dialect)
			res, err := Compute(d, nil)
			if err != nil {
				t.Fatal(err)
			}
			// Every relationship survives layout: placeholder registration
			// at parse time guarantees both endpoints have geometry.
			if len(res.Routes) != len(d.Relationships) {
				t.Errorf("routes = %d, want %d", len(res.Routes), len(d.Relationships))
			}
		})
	}
}

func TestERLayoutGridAndPorts(t *testing.T) {
	// Five entities declared in order land on a 3-column auto grid:
	// A B C / D E. A-B shares a row, A-D a column, A-E is diagonal.
	text := "erDiagram\n" +
		"A {\n}\nB {\n}\nC {\n}\nD {\n}\nE {\n}\n" +
		"A ||--|| B : r1\nA ||--|| D : r2\nA ||--|| E : r3"
	d := mustParse(t, text, diagram.DialectER)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}

	a, b := res.Positions["A"], res.Positions["B"]
	dd := res.Positions["D"]
	if a.Y != b.Y {
		t.Error("A and B should share a row")
	}
	if a.X != dd.X {
		t.Error("A and D should share a column")
	}

	routes := map[string]Route{}
	for _, r := range res.Routes {
		routes[r.Label] = r
	}

	// Same row: horizontal ports.
	if r := routes["r1"]; !r.HasPorts || r.ExitX != 1 || r.ExitY != 0.5 || r.EntryX != 0 {
		t.Errorf("same-row route = %+v", r)
	}
	// Same column: vertical ports.
	if r := routes["r2"]; !r.HasPorts || r.ExitY != 1 || r.ExitX != 0.5 || r.EntryY != 0 {
		t.Errorf("same-column route = %+v", r)
	}
	// Diagonal: exit toward the dominant axis, no waypoints.
	if r := routes["r3"]; !r.HasPorts || len(r.Waypoints) != 0 {
		t.Errorf("diagonal route = %+v", r)
	}
}

func TestERLayoutEntityHeight(t *testing.T) {
	d := mustParse(t, "erDiagram\nX {\n  int a PK\n  int b\n  int c\n}\nY {\n}", diagram.DialectER)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default().ER
	wantX := cfg.HeaderHeight + 3*cfg.RowHeight
	if got := res.Positions["X"].Height; got != wantX {
		t.Errorf("X height = %v, want %v", got, wantX)
	}
	if got := res.Positions["Y"].Height; got != cfg.HeaderHeight+cfg.RowHeight {
		t.Errorf("empty entity height = %v", got)
	}
}

func TestSequenceLayout(t *testing.T) {
	d := mustParse(t, "sequenceDiagram\nA->>B: one\nB-->>A: two\nNote right of B: hmm", diagram.DialectSequence)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default().Sequence

	a, b := res.Positions["A"], res.Positions["B"]
	if b.X-a.X != cfg.PitchX {
		t.Errorf("participant pitch = %v, want %v", b.X-a.X, cfg.PitchX)
	}
	if a.Y != b.Y {
		t.Error("participants should share the top row")
	}

	if len(res.Routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(res.Routes))
	}
	first, second := res.Routes[0], res.Routes[1]
	if len(first.Waypoints) != 2 {
		t.Fatalf("message waypoints = %d, want 2", len(first.Waypoints))
	}
	if first.Waypoints[0].Y != first.Waypoints[1].Y {
		t.Error("message should be horizontal")
	}
	if second.Waypoints[0].Y-first.Waypoints[0].Y != cfg.MessagePitch {
		t.Errorf("message pitch = %v, want %v", second.Waypoints[0].Y-first.Waypoints[0].Y, cfg.MessagePitch)
	}

	// Lifelines sized to message + note rows.
	wantLifeline := float64(2+1+1) * cfg.MessagePitch
	if got := res.Lifelines["A"]; got != wantLifeline {
		t.Errorf("lifeline = %v, want %v", got, wantLifeline)
	}

	if len(res.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(res.Notes))
	}
	lifelineB := b.X + cfg.ParticipantWidth/2
	if res.Notes[0].Geometry.X <= lifelineB {
		t.Error("right-of note should sit right of B's lifeline")
	}
}

func TestClassLayoutBoxHeight(t *testing.T) {
	text := `classDiagram
class A {
    +x: int
    +y: int
    +do(): void
}
class B`
	d := mustParse(t, text, diagram.DialectClass)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default().Class
	// 2 attributes + 1 method + separator row.
	want := cfg.HeaderHeight + 4*cfg.RowHeight
	if got := res.Positions["A"].Height; got != want {
		t.Errorf("A height = %v, want %v", got, want)
	}
	if got := res.Positions["B"].Height; got != cfg.HeaderHeight+cfg.RowHeight {
		t.Errorf("empty class height = %v", got)
	}
}

func TestMindmapLayoutBounded(t *testing.T) {
	text := "mindmap\nRoot\n  A\n    A1\n      A2\n  B\n    B1\n  C\n  D\n  E\n  F"
	d := mustParse(t, text, diagram.DialectMindmap)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	margin := Default().Mindmap.Margin

	for id, g := range res.Positions {
		if g.X < margin || g.Y < margin {
			t.Errorf("node %s at (%v,%v) breaches the top/left margin", id, g.X, g.Y)
		}
		if g.X+g.Width > res.Canvas.Width-margin || g.Y+g.Height > res.Canvas.Height-margin {
			t.Errorf("node %s breaches the bottom/right margin", id)
		}
	}

	// The root sits at canvas center.
	root := res.Positions[d.Root().ID]
	if c := root.Center(); c.X != res.Canvas.Width/2 || c.Y != res.Canvas.Height/2 {
		t.Errorf("root center = %+v, want canvas center", c)
	}
}

func TestMindmapDeepLevelsNotCollinear(t *testing.T) {
	// Three siblings at level 2 under one parent: the spread floor must
	// keep them from collapsing onto a single ray.
	text := "mindmap\nRoot\n  A\n    A1\n    A2\n    A3"
	d := mustParse(t, text, diagram.DialectMindmap)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}

	var pts []diagram.Point
	for _, n := range d.Nodes() {
		if n.Level == 2 {
			pts = append(pts, res.Positions[n.ID].Center())
		}
	}
	if len(pts) != 3 {
		t.Fatalf("level-2 nodes = %d, want 3", len(pts))
	}
	// Collinear points have zero cross product.
	cross := (pts[1].X-pts[0].X)*(pts[2].Y-pts[0].Y) - (pts[1].Y-pts[0].Y)*(pts[2].X-pts[0].X)
	if cross == 0 {
		t.Error("level-2 siblings are collinear")
	}
}

func TestGitLayoutColumns(t *testing.T) {
	text := "gitGraph\ncommit id:\"a\"\nbranch develop\ncommit id:\"b\"\ncheckout main\ncommit id:\"c\"\nmerge develop"
	d := mustParse(t, text, diagram.DialectGitGraph)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Default().Git

	a, b, c := res.Positions["a"], res.Positions["b"], res.Positions["c"]
	if a.X != c.X {
		t.Error("main commits should share a column")
	}
	if b.X != a.X+cfg.ColumnPitch {
		t.Errorf("develop column x = %v, want %v", b.X, a.X+cfg.ColumnPitch)
	}
	if b.Y-a.Y != cfg.RowPitch {
		t.Errorf("row pitch = %v, want %v", b.Y-a.Y, cfg.RowPitch)
	}
}

func TestGhostMergeDropsRoute(t *testing.T) {
	d := mustParse(t, "gitGraph\ncommit\nmerge ghost", diagram.DialectGitGraph)
	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Two commits, one chain edge; the ghost merge contributed no
	// relationship, so nothing is dropped and nothing dangles.
	if len(res.Routes) != len(d.Relationships) {
		t.Errorf("routes = %d, want %d", len(res.Routes), len(d.Relationships))
	}
}

func TestRouteDropsMissingEndpoint(t *testing.T) {
	// Hand-built diagram with a dangling relationship exercises the
	// defensive drop in routeAll.
	d := diagram.New(diagram.DialectFlow)
	d.AddNode(diagram.Node{ID: "a"})
	d.Relationships = append(d.Relationships, diagram.Relationship{From: "a", To: "missing"})

	res, err := Compute(d, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Routes) != 0 {
		t.Errorf("routes = %d, want 0", len(res.Routes))
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/layout.toml"
	content := "[flow]\nnode_width = 200.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Flow.NodeWidth != 200 {
		t.Errorf("NodeWidth = %v, want 200", cfg.Flow.NodeWidth)
	}
	// Untouched keys keep defaults.
	if cfg.Flow.NodeHeight != Default().Flow.NodeHeight {
		t.Errorf("NodeHeight = %v, want default", cfg.Flow.NodeHeight)
	}
	if cfg.Mindmap.RadiusStep != Default().Mindmap.RadiusStep {
		t.Errorf("RadiusStep = %v, want default", cfg.Mindmap.RadiusStep)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/layout.toml"); err == nil {
		t.Error("Load should error for a missing file")
	}
}
