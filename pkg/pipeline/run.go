package pipeline

import (
	"strings"
	"time"

	"github.com/mermaidtools/drawbridge/pkg/detect"
	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/docs"
	"github.com/mermaidtools/drawbridge/pkg/errors"
	"github.com/mermaidtools/drawbridge/pkg/layout"
	"github.com/mermaidtools/drawbridge/pkg/markup"
	"github.com/mermaidtools/drawbridge/pkg/parse"
	"github.com/mermaidtools/drawbridge/pkg/validate"
)

// Convert runs the complete detect → parse → layout → assemble pipeline.
func Convert(text string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := parseStage(text, &opts)
	if err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	geom, err := layout.Compute(result.Diagram, opts.Layout)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "layout %s diagram", result.Dialect)
	}
	result.Geometry = geom
	result.Stats.LayoutTime = time.Since(layoutStart)

	opts.Logger.Debug("computed layout",
		"positions", len(geom.Positions),
		"routes", len(geom.Routes),
		"canvas", geom.Canvas,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	result.Markup = markup.Render(opts.Name, result.Diagram, geom, opts.Styles)
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("converted diagram",
		"dialect", result.Dialect,
		"nodes", result.Stats.NodeCount,
		"relationships", result.Stats.RelationshipCount,
		"bytes", len(result.Markup))

	return result, nil
}

// Docs parses the input and emits the documentation report instead of
// markup. Layout is skipped entirely.
func Docs(text string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result, err := parseStage(text, &opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	out, err := docs.Generate(result.Diagram, text)
	if err != nil {
		return nil, err
	}
	result.Markup = out
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("generated documentation",
		"dialect", result.Dialect,
		"nodes", result.Stats.NodeCount,
		"bytes", len(result.Markup))

	return result, nil
}

// Validate runs the structural validator. It never fails: malformed or
// unrecognized input comes back as an invalid report.
func Validate(text string) validate.Report {
	return validate.Run(text)
}

// parseStage resolves the dialect and parses the input, filling the model
// and parse statistics of the result.
func parseStage(text string, opts *Options) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input is empty")
	}

	dialect := opts.Dialect
	if dialect == "" {
		dialect = detect.Detect(text)
		if dialect == diagram.DialectUnknown {
			return nil, errors.New(errors.ErrCodeUnknownDialect,
				"first line matches no known diagram dialect")
		}
		opts.Logger.Debug("detected dialect", "dialect", dialect)
	}

	parseStart := time.Now()
	parsed, err := parse.Parse(text, dialect)
	if err != nil {
		return nil, err
	}

	result := &Result{Dialect: dialect, Diagram: parsed.Diagram}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = parsed.Diagram.NodeCount()
	result.Stats.RelationshipCount = len(parsed.Diagram.Relationships)
	result.Stats.SkippedLines = len(parsed.Report.Skipped())

	for _, rec := range parsed.Report.Skipped() {
		opts.Logger.Debug("skipped line", "line", rec.Number, "text", rec.Text)
	}

	return result, nil
}

// validDialect reports whether a forced dialect names one of the six
// supported grammars.
func validDialect(d diagram.Dialect) error {
	switch d {
	case diagram.DialectFlow, diagram.DialectER, diagram.DialectSequence,
		diagram.DialectClass, diagram.DialectMindmap, diagram.DialectGitGraph:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidDialect, "unsupported dialect %q", d)
	}
}
