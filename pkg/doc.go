// Package pkg provides the core libraries for Drawbridge diagram conversion.
//
// # Overview
//
// Drawbridge turns Mermaid-style diagram text into draw.io documents,
// documentation tables, and validation reports. The pkg directory is
// organized into three main areas:
//
//  1. Model (diagram, detect, parse) - dialect detection and the canonical
//     diagram model the six parsers produce
//  2. Geometry (layout) - the six layout engines and the Router for
//     connection paths
//  3. Sinks (markup, docs, validate) - the draw.io assembler, the
//     documentation generator, and the structural validator
//
// The pipeline package orchestrates the stages; errors carries the
// structured error codes shared by the CLI and HTTP surfaces.
//
// # Architecture
//
// The typical data flow through Drawbridge:
//
//	Diagram text
//	     ↓
//	[detect] package (classify the dialect)
//	     ↓
//	[parse] package (canonical model + line report)
//	     ↓
//	[layout] package (geometry + routes)
//	     ↓
//	[markup] package (draw.io XML)
//
// The docs and validate packages are alternate sinks from the parsed model,
// bypassing layout.
//
// # Quick Start
//
// Convert diagram text to a draw.io document:
//
//	import "github.com/mermaidtools/drawbridge/pkg/pipeline"
//
//	result, err := pipeline.Convert(text, pipeline.Options{Name: "checkout"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("checkout.drawio", []byte(result.Markup), 0o644)
//
// Run the stages individually:
//
//	dialect := detect.Detect(text)
//	parsed, err := parse.Parse(text, dialect)
//	geom, err := layout.Compute(parsed.Diagram, layout.Default())
//	xml := markup.Render("checkout", parsed.Diagram, geom, markup.DefaultStyles())
package pkg
