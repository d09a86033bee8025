// Package pipeline provides the core conversion pipeline for Drawbridge.
//
// This package implements the complete detect → parse → layout → assemble
// pipeline that can be used by CLI and server components. By centralizing
// this logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Detect: Classify the input's dialect from its first line
//  2. Parse: Build the canonical diagram model
//  3. Layout: Compute geometry and connection routes
//  4. Assemble: Emit the draw.io document
//
// The documentation generator and validator are alternate sinks from the
// same parsed model, bypassing layout.
//
// # Usage
//
//	opts := pipeline.Options{Name: "checkout-flow"}
//	result, err := pipeline.Convert(text, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Markup)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/layout"
	"github.com/mermaidtools/drawbridge/pkg/markup"
)

// DefaultName is the document name used when Options.Name is empty.
const DefaultName = "diagram"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a conversion.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Name is the document name embedded in the output envelope.
	Name string `json:"name,omitempty"`

	// Dialect forces the input's dialect. Empty means auto-detect.
	Dialect diagram.Dialect `json:"dialect,omitempty"`

	// Layout overrides the default spacing configuration.
	Layout *layout.Config `json:"layout,omitempty"`

	// Styles overrides the default style tables.
	Styles *markup.StyleSet `json:"styles,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Dialect != "" {
		if err := validDialect(o.Dialect); err != nil {
			return err
		}
	}
	if o.Layout == nil {
		o.Layout = layout.Default()
	}
	if o.Styles == nil {
		o.Styles = markup.DefaultStyles()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a conversion.
type Result struct {
	// Dialect is the dialect the input was parsed as.
	Dialect diagram.Dialect

	// Diagram is the parsed canonical model.
	Diagram *diagram.Diagram

	// Geometry is the computed layout.
	Geometry layout.Result

	// Markup is the assembled document.
	Markup string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount         int           `json:"node_count"`
	RelationshipCount int           `json:"relationship_count"`
	SkippedLines      int           `json:"skipped_lines"`
	ParseTime         time.Duration `json:"parse_time"`
	LayoutTime        time.Duration `json:"layout_time"`
	RenderTime        time.Duration `json:"render_time"`
}
