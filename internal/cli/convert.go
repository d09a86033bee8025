package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/layout"
	"github.com/mermaidtools/drawbridge/pkg/markup"
	"github.com/mermaidtools/drawbridge/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output  string // output file path (stdout if empty)
	name    string // document name embedded in the envelope
	dialect string // forced dialect (auto-detect if empty)
	config  string // TOML layout config path
	styles  string // TOML style override path
}

// newConvertCmd creates the convert command for generating draw.io markup.
//
// The input dialect is auto-detected from the first line unless --dialect
// forces one. Layout spacing and cell styles can be overridden with TOML
// files via --config and --styles.
func newConvertCmd() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert diagram text to draw.io XML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.name, "name", "", "document name (default: diagram)")
	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "force input dialect: flowchart, er, sequence, class, mindmap, gitgraph")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML layout configuration file")
	cmd.Flags().StringVar(&opts.styles, "styles", "", "TOML style override file")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *convertOpts) error {
	logger := loggerFromContext(cmd.Context())

	text, err := readInput(args)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Name:    opts.name,
		Dialect: diagram.Dialect(opts.dialect),
		Logger:  logger,
	}
	if opts.config != "" {
		cfg, err := layout.Load(opts.config)
		if err != nil {
			return err
		}
		pipeOpts.Layout = cfg
	}
	if opts.styles != "" {
		styles, err := markup.LoadStyles(opts.styles)
		if err != nil {
			return err
		}
		pipeOpts.Styles = styles
	}

	prog := newProgress(logger)
	result, err := pipeline.Convert(text, pipeOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s diagram", result.Dialect))

	if err := writeOutput(opts.output, result.Markup); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Wrote draw.io document")
		printFile(opts.output)
		printStats(result.Stats.NodeCount, result.Stats.RelationshipCount)
	}
	return nil
}
