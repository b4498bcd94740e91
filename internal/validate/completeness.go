// Package validate holds the pure validation checks run over parsed
// entries and citations. Every check is a function of its inputs only;
// findings come back as issues, never as errors.
package validate

import (
	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Completeness reports the always-on per-entry checks: authors, title,
// year, and at least one of DOI or URL.
func Completeness(entry *reference.Entry) []reference.ValidationIssue {
	var issues []reference.ValidationIssue
	if len(entry.Authors) == 0 {
		issues = append(issues, reference.Warning("missing-authors", "Reference entry missing authors", entry.RawText))
	}
	if entry.Title == "" {
		issues = append(issues, reference.Warning("missing-title", "Reference entry missing title", entry.RawText))
	}
	if entry.Year == "" {
		issues = append(issues, reference.Warning("missing-year", "Reference entry missing year", entry.RawText))
	}
	if entry.DOI == "" && entry.URL == "" {
		issues = append(issues, reference.Warning("missing-locator", "Reference entry missing DOI or URL", entry.RawText))
	}
	return issues
}

// TypeCompleteness reports fields required by the entry's classified
// type. Codes follow the pattern <type>-missing-<field>.
func TypeCompleteness(entry *reference.Entry) []reference.ValidationIssue {
	var issues []reference.ValidationIssue
	missing := func(field, detail string) {
		issues = append(issues, reference.Warning(
			entry.EntryType+"-missing-"+field,
			detail,
			entry.RawText,
		))
	}

	switch entry.EntryType {
	case reference.TypeJournal:
		if entry.Journal == "" {
			missing("journal", "Journal article missing journal name")
		}
	case reference.TypeBook:
		if entry.Publisher == "" {
			missing("publisher", "Book missing publisher")
		}
	case reference.TypeChapter:
		if entry.Publisher == "" {
			missing("publisher", "Book chapter missing publisher")
		}
		if entry.BookTitle == "" {
			missing("book-title", "Book chapter missing book title")
		}
	case reference.TypeConference:
		if entry.ConferenceName == "" && entry.Journal == "" {
			missing("conference-name", "Conference paper missing proceedings or conference name")
		}
	case reference.TypePreprint:
		if entry.PreprintServer == "" {
			missing("preprint-server", "Preprint missing server name")
		}
	case reference.TypeDataset:
		if entry.DatasetName == "" && entry.Title == "" {
			missing("dataset-name", "Dataset missing name or title")
		}
	case reference.TypeWebsite:
		if entry.URL == "" {
			missing("url", "Website reference missing URL")
		}
	}
	return issues
}
