package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/manuscript-tools/refcheck/internal/config"
	"github.com/manuscript-tools/refcheck/internal/predatory"
	"github.com/manuscript-tools/refcheck/internal/reference"
)

var registryPaths []string

func init() {
	registryCmd.PersistentFlags().StringSliceVar(&registryPaths, "registry", nil, "Predatory registry CSV file (repeatable)")
	registryCmd.AddCommand(registryInfoCmd)
	registryCmd.AddCommand(registryLookupCmd)
	rootCmd.AddCommand(registryCmd)
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect the predatory journal registry",
}

var registryInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the loaded registry",
	Long: `Summarize the loaded predatory registry.

Examples:
  refcheck registry info
  refcheck registry info --registry predatory.csv`,
	Args: cobra.NoArgs,
	RunE: runRegistryInfo,
}

var registryLookupCmd = &cobra.Command{
	Use:   "lookup <name-or-domain>",
	Short: "Look up a journal or publisher in the registry",
	Long: `Look up a journal name, publisher name, or URL domain.

Examples:
  refcheck registry lookup "Journal of Advanced Research"
  refcheck registry lookup omicsonline.org`,
	Args: cobra.ExactArgs(1),
	RunE: runRegistryLookup,
}

func runRegistryInfo(cmd *cobra.Command, args []string) error {
	registry := mustLoadRegistry()

	byType := make(map[string]int)
	for _, record := range registry.Records {
		byType[record.EntryType]++
	}

	if humanOutput {
		outputHuman("%d registry records\n", len(registry.Records))
		types := make([]string, 0, len(byType))
		for t := range byType {
			types = append(types, t)
		}
		sort.Strings(types)
		for _, t := range types {
			outputHuman("  %-12s %d\n", t, byType[t])
		}
	} else {
		outputJSON(RegistryInfoResponse{Records: len(registry.Records), ByType: byType})
	}
	return nil
}

func runRegistryLookup(cmd *cobra.Command, args []string) error {
	registry := mustLoadRegistry()
	query := args[0]

	// Probe the query as a journal name, a publisher name, and a URL
	// domain; the registry decides which indexes answer.
	seen := make(map[*predatory.Record]bool)
	var matches []predatory.Match
	for _, probe := range []*reference.Entry{
		{Journal: query, EntryType: "journal"},
		{Publisher: query},
		{URL: query, EntryType: "website"},
	} {
		for _, m := range registry.MatchEntry(probe) {
			if seen[m.Record] {
				continue
			}
			seen[m.Record] = true
			matches = append(matches, m)
		}
	}

	response := LookupResponse{Query: query, Status: predatory.StatusNo}
	if len(matches) > 0 {
		response.Status = predatory.StatusYes
	}
	for _, m := range matches {
		response.Matches = append(response.Matches, LookupMatch{
			Name:           m.Record.Name,
			Type:           m.Record.EntryType,
			Basis:          m.Basis,
			MatchedValue:   m.MatchedValue,
			RiskLevel:      m.Record.RiskLevel,
			NorwegianLevel: m.Record.NorwegianLevel,
		})
	}

	if humanOutput {
		if len(matches) == 0 {
			outputHuman("No registry matches for %q\n", query)
			return nil
		}
		for _, m := range response.Matches {
			outputHuman("%s (%s)\n", m.Name, m.Type)
			outputHuman("  matched by %s: %s\n", m.Basis, m.MatchedValue)
			if m.RiskLevel != "" {
				outputHuman("  risk level: %s\n", m.RiskLevel)
			}
			if m.NorwegianLevel != "" {
				outputHuman("  norwegian level: %s\n", m.NorwegianLevel)
			}
		}
	} else {
		outputJSON(response)
	}
	return nil
}

// mustLoadRegistry loads the registry or exits. Unlike check, the
// registry commands are about the registry itself, so not finding one
// is an error rather than a degraded run.
func mustLoadRegistry() *predatory.Registry {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	registry := loadRegistry(registryPaths, cfg)
	if registry == nil || len(registry.Records) == 0 {
		exitWithError(ExitConfigError, "no registry files found (use --registry or configure registry_paths)")
	}
	return registry
}
