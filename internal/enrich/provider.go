// Package enrich fills missing reference fields from external metadata
// sources and verifies local fields against them.
//
// Providers only ever fill empty fields. A lookup that fails or returns
// nothing leaves the entry untouched; enrichment degrades to a no-op
// rather than aborting the pipeline.
package enrich

import (
	"context"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Provider fills missing fields on an entry in place.
type Provider interface {
	// Name identifies the provider in logs and reports.
	Name() string
	// Enrich fills currently-empty fields on the entry. Populated
	// fields are never overwritten. Failures are swallowed; the entry
	// comes back unchanged.
	Enrich(ctx context.Context, entry *reference.Entry)
}

// Metadata is a normalized view of what a source knows about a work.
type Metadata struct {
	Authors   []string
	Title     string
	Journal   string
	Year      string
	Volume    string
	Issue     string
	Pages     string
	DOI       string
	EntryType string
}

// Apply copies metadata onto the entry, filling only empty fields.
func (m Metadata) Apply(entry *reference.Entry) {
	if len(m.Authors) > 0 && len(entry.Authors) == 0 {
		entry.Authors = append([]string(nil), m.Authors...)
	}
	fill(&entry.Title, m.Title)
	fill(&entry.Journal, m.Journal)
	fill(&entry.Year, m.Year)
	fill(&entry.Volume, m.Volume)
	fill(&entry.Issue, m.Issue)
	fill(&entry.Pages, m.Pages)
	fill(&entry.DOI, m.DOI)
	fill(&entry.EntryType, m.EntryType)
}

// Empty reports whether the metadata carries nothing at all.
func (m Metadata) Empty() bool {
	return len(m.Authors) == 0 && m.Title == "" && m.Journal == "" && m.Year == "" &&
		m.Volume == "" && m.Issue == "" && m.Pages == "" && m.DOI == "" && m.EntryType == ""
}

func fill(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

// Composite chains providers; each sees the fields the previous ones
// filled.
type Composite struct {
	Providers []Provider
}

// NewComposite creates a provider chain.
func NewComposite(providers ...Provider) *Composite {
	return &Composite{Providers: providers}
}

// Name implements Provider.
func (c *Composite) Name() string { return "composite" }

// Enrich implements Provider.
func (c *Composite) Enrich(ctx context.Context, entry *reference.Entry) {
	for _, p := range c.Providers {
		p.Enrich(ctx, entry)
	}
}

// Static serves metadata from a fixed map keyed by formatted key.
// Useful for tests and offline enrichment.
type Static struct {
	ByKey map[string]Metadata
}

// Name implements Provider.
func (s *Static) Name() string { return "static" }

// Enrich implements Provider.
func (s *Static) Enrich(_ context.Context, entry *reference.Entry) {
	if metadata, ok := s.ByKey[entry.FormattedKey()]; ok {
		metadata.Apply(entry)
	}
}
