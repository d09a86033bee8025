package cli

import (
	"github.com/spf13/cobra"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/pipeline"
)

// docsOpts holds the command-line flags for the docs command.
type docsOpts struct {
	output  string // output file path (stdout if empty)
	dialect string // forced dialect (auto-detect if empty)
}

// newDocsCmd creates the docs command for generating documentation tables.
func newDocsCmd() *cobra.Command {
	var opts docsOpts

	cmd := &cobra.Command{
		Use:   "docs [file]",
		Short: "Generate documentation tables from diagram text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			text, err := readInput(args)
			if err != nil {
				return err
			}

			result, err := pipeline.Docs(text, pipeline.Options{
				Dialect: diagram.Dialect(opts.dialect),
				Logger:  logger,
			})
			if err != nil {
				return err
			}

			if err := writeOutput(opts.output, result.Markup); err != nil {
				return err
			}
			if opts.output != "" {
				printSuccess("Wrote documentation")
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.dialect, "dialect", "", "force input dialect")

	return cmd
}
