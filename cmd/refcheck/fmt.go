package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/manuscript-tools/refcheck/internal/checker"
	"github.com/manuscript-tools/refcheck/internal/format"
)

var fmtStyle string

func init() {
	fmtCmd.Flags().StringVar(&fmtStyle, "style", "apa", "Output style: apa, vancouver, ieee, harvard, chicago")
	rootCmd.AddCommand(fmtCmd)
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <document>",
	Short: "Reformat a manuscript's reference list",
	Long: `Parse a manuscript's reference list and print it reformatted
in a citation style.

Examples:
  refcheck fmt paper.docx
  refcheck fmt paper.md --style vancouver`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func runFmt(cmd *cobra.Command, args []string) error {
	result, err := checker.New().ProcessFile(context.Background(), args[0], checker.Options{})
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}

	refs := result.Extraction.References
	formatted := make([]string, 0, len(refs))
	for _, ref := range refs {
		formatted = append(formatted, format.Format(ref, fmtStyle))
	}

	if humanOutput {
		for i, line := range formatted {
			outputHuman("%d. %s\n", i+1, line)
		}
	} else {
		outputJSON(FormatResponse{Style: fmtStyle, References: formatted})
	}
	return nil
}
