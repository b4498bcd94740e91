package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/manuscript-tools/refcheck/internal/cache"
	"github.com/manuscript-tools/refcheck/internal/checker"
	"github.com/manuscript-tools/refcheck/internal/config"
	"github.com/manuscript-tools/refcheck/internal/enrich"
	"github.com/manuscript-tools/refcheck/internal/linkcheck"
	"github.com/manuscript-tools/refcheck/internal/predatory"
	"github.com/manuscript-tools/refcheck/internal/reference"
	"github.com/manuscript-tools/refcheck/internal/report"
	"github.com/manuscript-tools/refcheck/internal/validate"
)

var (
	checkLinks    bool
	checkVerify   bool
	checkEnrich   bool
	checkStyle    string
	checkRegistry []string
	checkMailto   string
	checkCache    string
	checkWorkers  int
	checkDocxOut  string
	checkVerbose  bool
)

func init() {
	checkCmd.Flags().BoolVar(&checkLinks, "links", false, "Check DOI and URL reachability")
	checkCmd.Flags().BoolVar(&checkVerify, "verify", false, "Verify entry metadata against Crossref (implies --enrich)")
	checkCmd.Flags().BoolVar(&checkEnrich, "enrich", false, "Fill missing entry fields from Crossref and web pages")
	checkCmd.Flags().StringVar(&checkStyle, "style", "", "Citation style for completeness checks (apa, ama)")
	checkCmd.Flags().StringSliceVar(&checkRegistry, "registry", nil, "Predatory registry CSV file (repeatable)")
	checkCmd.Flags().StringVar(&checkMailto, "mailto", "", "Contact address for the Crossref polite pool")
	checkCmd.Flags().StringVar(&checkCache, "cache", "", "SQLite cache for online lookups")
	checkCmd.Flags().IntVar(&checkWorkers, "concurrency", 0, "Parallel entries for network checks")
	checkCmd.Flags().StringVar(&checkDocxOut, "docx-out", "", "Write an updated DOCX with a reformatted reference list")
	checkCmd.Flags().BoolVar(&checkVerbose, "verbose", false, "Enable debug logging")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check <document>",
	Short: "Validate a manuscript's references",
	Long: `Validate the reference apparatus of a manuscript.

Extracts in-text citations and bibliography entries, matches them,
screens entries against predatory registries, and checks completeness.
Online checks (--links, --verify, --enrich) are off by default.

The command exits 4 when error-severity issues are found, so scripts
can distinguish "ran fine, manuscript has problems" from tool failure.

Examples:
  refcheck check paper.docx
  refcheck check paper.md --style ama --registry predatory.csv
  refcheck check paper.pdf --enrich --links --mailto editor@example.org`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	style := checkStyle
	if style == "" {
		style = cfg.Style
	}
	if !validate.KnownStyle(validate.Style(style)) {
		exitWithError(ExitConfigError, "unknown citation style %q (want apa or ama)", style)
	}

	registry := loadRegistry(checkRegistry, cfg)

	logLevel := slog.LevelWarn
	if checkVerbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	concurrency := checkWorkers
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	options := []checker.Option{
		checker.WithRegistry(registry),
		checker.WithStyle(validate.Style(style)),
		checker.WithLogger(log),
		checker.WithConcurrency(concurrency),
	}

	if checkEnrich || checkVerify {
		mailto := checkMailto
		if mailto == "" {
			mailto = cfg.CrossrefMailto
		}
		crossrefOpts := []enrich.CrossrefOption{enrich.WithMailto(mailto)}

		cachePath := checkCache
		if cachePath == "" {
			cachePath = cfg.CachePath
		}
		if cachePath != "" {
			store, err := cache.Open(cachePath)
			if err != nil {
				exitWithError(ExitConfigError, "opening cache %s: %v", cachePath, err)
			}
			defer store.Close()
			crossrefOpts = append(crossrefOpts, enrich.WithFetchWrapper(store.WrapFetcher))
		}

		client := enrich.NewCrossrefClient(crossrefOpts...)
		options = append(options, checker.WithProvider(enrich.NewComposite(
			&enrich.CrossrefProvider{Client: client},
			enrich.NewWebPage(),
		)))
		if checkVerify {
			options = append(options, checker.WithVerifier(&enrich.Verifier{Client: client}))
		}
	}

	if checkLinks {
		options = append(options, checker.WithLinkChecker(linkcheck.New()))
	}

	c := checker.New(options...)
	result, err := c.ProcessFile(context.Background(), args[0], checker.Options{
		CheckLinks:   checkLinks,
		VerifyOnline: checkVerify,
	})
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}

	rep := report.New(result.Extraction, result.Issues, result.Screening)

	if checkDocxOut != "" {
		data, err := report.BuildUpdatedDocx(result.Extraction, result.Issues, style)
		if err != nil {
			exitWithError(ExitError, "building updated docx: %v", err)
		}
		if err := os.WriteFile(checkDocxOut, data, 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", checkDocxOut, err)
		}
	}

	if humanOutput {
		outputHuman("%s", rep.Render())
	} else {
		outputJSON(rep)
	}

	if hasErrors(result.Issues) {
		os.Exit(ExitIssuesFound)
	}
	return nil
}

// hasErrors reports whether any issue is error severity.
func hasErrors(issues []reference.ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == reference.SeverityError {
			return true
		}
	}
	return false
}

// loadRegistry builds the predatory registry from explicit paths, the
// config file, or the default file names in the working directory, in
// that order. A missing registry is not an error: screening degrades
// to "Unavailable".
func loadRegistry(paths []string, cfg *config.Config) *predatory.Registry {
	if len(paths) == 0 {
		paths = cfg.RegistryPaths
	}
	if len(paths) > 0 {
		registry, err := predatory.LoadCSV(paths...)
		if err != nil {
			exitWithError(ExitConfigError, "loading registry: %v", err)
		}
		return registry
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	return predatory.LoadDefault(cwd)
}
