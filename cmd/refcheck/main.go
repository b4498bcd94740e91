// Package main provides the refcheck CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "Manuscript reference validator",
	Long: `refcheck validates the reference apparatus of a manuscript.

It extracts in-text citations and bibliography entries from plain text,
Markdown, HTML, PDF, or DOCX documents, matches them against each other,
screens entries against predatory journal registries, and checks entry
completeness per citation style. All commands output JSON by default
for easy integration with editorial tooling and scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
