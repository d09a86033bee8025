package pipeline

import (
	"strings"
	"testing"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/errors"
	"github.com/mermaidtools/drawbridge/pkg/layout"
	"github.com/mermaidtools/drawbridge/pkg/validate"
)

const flowInput = "flowchart LR\n  A[Start] --> B{Check}\n  B -->|yes| C[End]\n"

func TestConvertFlow(t *testing.T) {
	res, err := Convert(flowInput, Options{Name: "checkout"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if res.Dialect != diagram.DialectFlow {
		t.Errorf("Dialect = %q, want %q", res.Dialect, diagram.DialectFlow)
	}
	if res.Stats.NodeCount != 3 || res.Stats.RelationshipCount != 2 {
		t.Errorf("stats = %d/%d, want 3/2", res.Stats.NodeCount, res.Stats.RelationshipCount)
	}
	for _, want := range []string{`name="checkout"`, "<mxfile", `id="A"`, `source="B" target="C"`} {
		if !strings.Contains(res.Markup, want) {
			t.Errorf("markup missing %q", want)
		}
	}
}

func TestConvertAllDialects(t *testing.T) {
	inputs := map[diagram.Dialect]string{
		diagram.DialectFlow:     flowInput,
		diagram.DialectER:       "erDiagram\n  USER ||--o{ ORDER : places\n",
		diagram.DialectSequence: "sequenceDiagram\n  A->>B: ping\n",
		diagram.DialectClass:    "classDiagram\n  Animal <|-- Dog\n",
		diagram.DialectMindmap:  "mindmap\n  root((Center))\n    A\n",
		diagram.DialectGitGraph: "gitGraph\n  commit\n  commit\n",
	}
	for want, input := range inputs {
		res, err := Convert(input, Options{})
		if err != nil {
			t.Fatalf("Convert(%s) error = %v", want, err)
		}
		if res.Dialect != want {
			t.Errorf("Dialect = %q, want %q", res.Dialect, want)
		}
		if res.Markup == "" {
			t.Errorf("Convert(%s) produced empty markup", want)
		}
	}
}

func TestConvertEmptyInput(t *testing.T) {
	_, err := Convert("  \n\t\n", Options{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestConvertUnknownDialect(t *testing.T) {
	_, err := Convert("just some prose\n", Options{})
	if !errors.Is(err, errors.ErrCodeUnknownDialect) {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeUnknownDialect)
	}
}

func TestConvertForcedDialect(t *testing.T) {
	// Force flow parsing on input whose header would not auto-detect.
	res, err := Convert("A --> B\n", Options{Dialect: diagram.DialectFlow})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Stats.NodeCount != 2 {
		t.Errorf("NodeCount = %d, want 2", res.Stats.NodeCount)
	}
}

func TestConvertInvalidForcedDialect(t *testing.T) {
	_, err := Convert(flowInput, Options{Dialect: "spaghetti"})
	if !errors.Is(err, errors.ErrCodeInvalidDialect) {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeInvalidDialect)
	}
}

func TestConvertSkippedLineStats(t *testing.T) {
	res, err := Convert("flowchart TD\n  A --> B\n  %% not a rule\n", Options{})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Stats.SkippedLines != 1 {
		t.Errorf("SkippedLines = %d, want 1", res.Stats.SkippedLines)
	}
}

func TestConvertCustomLayoutConfig(t *testing.T) {
	cfg := layout.Default()
	cfg.Flow.NodeWidth = 300

	res, err := Convert(flowInput, Options{Layout: cfg})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	geom, ok := res.Geometry.Positions["A"]
	if !ok {
		t.Fatal("node A has no geometry")
	}
	if geom.Width != 300 {
		t.Errorf("A width = %v, want 300", geom.Width)
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	lay := opts.Layout
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Layout != lay {
		t.Error("second validation replaced the layout config")
	}
	if opts.Name != DefaultName {
		t.Errorf("Name = %q, want %q", opts.Name, DefaultName)
	}
}

func TestDocs(t *testing.T) {
	res, err := Docs(flowInput, Options{})
	if err != nil {
		t.Fatalf("Docs() error = %v", err)
	}
	if !strings.Contains(res.Markup, "# Flowchart") {
		t.Errorf("docs output missing overview:\n%s", res.Markup)
	}
	if strings.Contains(res.Markup, "<mxfile") {
		t.Error("docs output contains markup envelope")
	}
}

func TestValidatePassthrough(t *testing.T) {
	r := Validate("flowchart TD\n  A[Start] --> B[End]\n")
	if r.Status != validate.StatusValid {
		t.Fatalf("Status = %q, want %q", r.Status, validate.StatusValid)
	}
}
