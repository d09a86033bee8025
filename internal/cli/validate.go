package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mermaidtools/drawbridge/pkg/pipeline"
	"github.com/mermaidtools/drawbridge/pkg/validate"
)

// newValidateCmd creates the validate command for checking diagram
// structure. The exit code is 0 for valid or warning reports and 1 for
// invalid ones.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check diagram structure and report issues",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}

			report := pipeline.Validate(text)
			printReport(report)

			if report.Status == validate.StatusInvalid {
				return fmt.Errorf("validation failed with %d issue(s)", len(report.Issues))
			}
			return nil
		},
	}
}

// printReport renders a validation report with the terminal styles.
func printReport(r validate.Report) {
	switch r.Status {
	case validate.StatusValid:
		printSuccess("Diagram is %s", StyleSuccess.Render("valid"))
	case validate.StatusWarning:
		printWarning("Diagram is valid with suggestions")
	case validate.StatusInvalid:
		printError("Diagram is invalid")
	}

	printKeyValue("dialect", string(r.Dialect))
	printKeyValue("nodes", fmt.Sprintf("%d", r.NodeCount))
	printKeyValue("relationships", fmt.Sprintf("%d", r.RelationshipCount))
	if r.SkippedLines > 0 {
		printKeyValue("skipped lines", fmt.Sprintf("%d", r.SkippedLines))
	}

	for _, issue := range r.Issues {
		printError("%s", issue)
	}
	for _, suggestion := range r.Suggestions {
		printDetail("%s", suggestion)
	}
}
