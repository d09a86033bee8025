package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidtools/drawbridge/pkg/detect"
	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// newDetectCmd creates the detect command for printing an input's dialect.
func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Print the detected dialect of an input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}

			dialect := detect.Detect(text)
			fmt.Println(dialect)
			if dialect == diagram.DialectUnknown {
				return fmt.Errorf("first line matches no known diagram dialect")
			}
			return nil
		},
	}
}
