package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manuscript-tools/refcheck/internal/checker"
	"github.com/manuscript-tools/refcheck/internal/export"
	"github.com/manuscript-tools/refcheck/internal/reference"
)

var (
	exportFormat string
	exportOut    string
	exportBib    string
)

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "bibtex", "Output format: bibtex, ris, endnote, json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportBib, "bib", "", "Append to an existing .bib file, skipping entries already present")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <document>",
	Short: "Export a manuscript's reference list",
	Long: `Export the parsed reference list of a manuscript.

Supported formats are BibTeX, RIS, EndNote XML, and JSON. With --bib,
new BibTeX entries are appended to an existing bibliography file and
entries already present (matched by DOI, then citation key) are skipped.

Examples:
  refcheck export paper.docx > refs.bib
  refcheck export paper.md --format ris --out refs.ris
  refcheck export paper.pdf --bib library.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	result, err := checker.New().ProcessFile(context.Background(), args[0], checker.Options{})
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}
	refs := result.Extraction.References

	if exportBib != "" {
		return appendToBib(refs)
	}

	content, err := serialize(refs, exportFormat)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if exportOut != "" {
		if err := os.WriteFile(exportOut, []byte(content), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", exportOut, err)
		}
		if humanOutput {
			outputHuman("Wrote %d references to %s\n", len(refs), exportOut)
		} else {
			outputJSON(ExportResponse{Format: exportFormat, References: len(refs), Output: exportOut})
		}
		return nil
	}

	fmt.Print(content)
	return nil
}

// serialize renders references in the requested format.
func serialize(refs []*reference.Entry, format string) (string, error) {
	switch format {
	case "bibtex":
		return export.ToBibTeXList(refs), nil
	case "ris":
		return export.ToRISList(refs), nil
	case "endnote":
		return export.ToEndNoteXML(refs), nil
	case "json":
		return export.ToJSON(refs)
	default:
		return "", fmt.Errorf("unknown format %q (want bibtex, ris, endnote, or json)", format)
	}
}

// appendToBib appends entries not already in the target .bib file.
func appendToBib(refs []*reference.Entry) error {
	idx, err := export.ParseBibTeXFile(exportBib)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", exportBib, err)
	}

	var fresh []*reference.Entry
	for _, ref := range refs {
		if idx.HasEntry(ref.FormattedKey(), ref.DOI) {
			continue
		}
		fresh = append(fresh, ref)
	}

	if len(fresh) > 0 {
		if err := export.AppendToBibFile(exportBib, export.ToBibTeXList(fresh)); err != nil {
			exitWithError(ExitError, "appending to %s: %v", exportBib, err)
		}
	}

	if humanOutput {
		outputHuman("Appended %d references to %s (%d already present)\n",
			len(fresh), exportBib, len(refs)-len(fresh))
	} else {
		outputJSON(ExportResponse{
			Format:     "bibtex",
			References: len(fresh),
			Skipped:    len(refs) - len(fresh),
			Output:     exportBib,
		})
	}
	return nil
}
