// Package checker wires the extraction, parsing, enrichment, matching,
// and validation stages into one pipeline.
package checker

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/manuscript-tools/refcheck/internal/enrich"
	"github.com/manuscript-tools/refcheck/internal/extract"
	"github.com/manuscript-tools/refcheck/internal/loader"
	"github.com/manuscript-tools/refcheck/internal/match"
	"github.com/manuscript-tools/refcheck/internal/parser"
	"github.com/manuscript-tools/refcheck/internal/predatory"
	"github.com/manuscript-tools/refcheck/internal/reference"
	"github.com/manuscript-tools/refcheck/internal/validate"
)

// Checker runs the reference validation pipeline. The zero
// configuration runs parsing, matching, and offline validation only;
// the registry, enrichment, link checking, and online verification are
// injected at construction time so tests can always supply a fresh or
// empty collaborator.
type Checker struct {
	registry    *predatory.Registry
	provider    enrich.Provider
	linkChecker validate.LinkChecker
	verifier    *enrich.Verifier
	style       validate.Style
	log         *slog.Logger
	concurrency int
}

// Option configures a Checker.
type Option func(*Checker)

// WithRegistry injects the predatory registry. A nil registry means
// screening reports "Unavailable".
func WithRegistry(registry *predatory.Registry) Option {
	return func(c *Checker) { c.registry = registry }
}

// WithProvider injects the metadata enrichment provider.
func WithProvider(provider enrich.Provider) Option {
	return func(c *Checker) { c.provider = provider }
}

// WithLinkChecker injects the link reachability checker.
func WithLinkChecker(checker validate.LinkChecker) Option {
	return func(c *Checker) { c.linkChecker = checker }
}

// WithVerifier injects the online metadata verifier.
func WithVerifier(verifier *enrich.Verifier) Option {
	return func(c *Checker) { c.verifier = verifier }
}

// WithStyle sets the citation style used for style-specific checks.
func WithStyle(style validate.Style) Option {
	return func(c *Checker) { c.style = style }
}

// WithLogger sets the pipeline logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Checker) { c.log = log }
}

// WithConcurrency bounds how many entries are enriched and checked at
// once when network-backed checks are enabled.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		style:       validate.StyleAPA,
		log:         slog.Default(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Options toggles the per-run network-backed checks.
type Options struct {
	CheckLinks   bool
	VerifyOnline bool
}

// Result is the pipeline output. A run always completes: findings come
// back as issues, never as errors.
type Result struct {
	Extraction *reference.DocumentExtraction
	Issues     []reference.ValidationIssue
	// Screening holds one registry screening result per reference, in
	// document order.
	Screening []predatory.ScreenResult
}

// ProcessText runs the full pipeline over manuscript text.
func (c *Checker) ProcessText(ctx context.Context, text string, opts Options) *Result {
	body, refsText := extract.SplitSections(text)
	citations := extract.Citations(body)
	references := parser.Parse(refsText)
	c.log.Debug("extracted manuscript",
		"citations", len(citations), "references", len(references))

	if c.provider != nil {
		// Classification runs after enrichment so external metadata
		// types can participate in it; drop the parse-time tag so the
		// provider may fill it.
		for _, ref := range references {
			ref.EntryType = ""
		}
		c.forEachEntry(ctx, references, func(ctx context.Context, ref *reference.Entry) {
			c.provider.Enrich(ctx, ref)
		})
	}
	for _, ref := range references {
		ref.EntryType = reference.Classify(ref)
	}

	matched := match.Match(citations, references)
	issues := append([]reference.ValidationIssue(nil), matched.Issues...)
	issues = append(issues, validate.BrokenCitationMarkers(body)...)
	issues = append(issues, validate.Duplicates(references)...)

	perEntry := c.validateEntries(ctx, references, opts)
	for _, entryIssues := range perEntry {
		issues = append(issues, entryIssues...)
	}

	screening := make([]predatory.ScreenResult, len(references))
	for i, ref := range references {
		screening[i] = c.registry.Screen(ref)
	}

	extraction := &reference.DocumentExtraction{
		BodyText:       body,
		ReferencesText: refsText,
		Citations:      citations,
		References:     references,
		Metadata:       map[string]string{"matched": strconv.Itoa(len(matched.Matched))},
	}
	c.log.Info("validation complete",
		"matched", len(matched.Matched), "issues", len(issues))
	return &Result{Extraction: extraction, Issues: issues, Screening: screening}
}

// validateEntries runs the per-entry checks and returns issue slices
// indexed by entry position, so results merge back in document order no
// matter how the work was scheduled.
func (c *Checker) validateEntries(ctx context.Context, references []*reference.Entry, opts Options) [][]reference.ValidationIssue {
	perEntry := make([][]reference.ValidationIssue, len(references))
	indexed := make(map[*reference.Entry]int, len(references))
	for i, ref := range references {
		indexed[ref] = i
	}

	c.forEachEntry(ctx, references, func(ctx context.Context, ref *reference.Entry) {
		var issues []reference.ValidationIssue
		issues = append(issues, validate.Completeness(ref)...)
		issues = append(issues, validate.TypeCompleteness(ref)...)
		issues = append(issues, validate.StyleCompleteness(ref, c.style)...)
		if c.registry != nil {
			issues = append(issues, c.registry.CheckEntry(ref)...)
		}
		if opts.CheckLinks && c.linkChecker != nil {
			issues = append(issues, validate.Links(ref, c.linkChecker)...)
		}
		if opts.VerifyOnline && c.verifier != nil {
			issues = append(issues, c.verifier.Verify(ctx, ref)...)
		}
		perEntry[indexed[ref]] = issues
	})
	return perEntry
}

// forEachEntry applies fn to every entry, in parallel when concurrency
// allows. Each entry is owned by exactly one goroutine, so in-place
// mutation stays race-free.
func (c *Checker) forEachEntry(ctx context.Context, references []*reference.Entry, fn func(context.Context, *reference.Entry)) {
	if c.concurrency <= 1 || len(references) <= 1 {
		for _, ref := range references {
			fn(ctx, ref)
		}
		return
	}

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	for _, ref := range references {
		wg.Add(1)
		sem <- struct{}{}
		go func(ref *reference.Entry) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(ctx, ref)
		}(ref)
	}
	wg.Wait()
}

// ProcessFile loads a manuscript file and runs the pipeline over it.
// A load failure is the only fatal outcome: the error is returned and
// nothing is partially processed.
func (c *Checker) ProcessFile(ctx context.Context, path string, opts Options) (*Result, error) {
	text, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	return c.ProcessText(ctx, text, opts), nil
}
