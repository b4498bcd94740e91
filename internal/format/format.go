// Package format renders reference entries into citation styles. It
// only renders from structured fields; it never touches body text.
package format

import (
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Style names accepted by Format.
const (
	StyleAPA       = "apa"
	StyleVancouver = "vancouver"
	StyleIEEE      = "ieee"
	StyleHarvard   = "harvard"
	StyleChicago   = "chicago"
)

// Format renders an entry in the named style. Unknown styles fall back
// to APA. Dispatch is an explicit switch so adding a style is a
// compile-time-visible change.
func Format(entry *reference.Entry, style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case StyleVancouver:
		return formatVancouver(entry)
	case StyleIEEE:
		return formatIEEE(entry)
	case StyleHarvard:
		return formatHarvard(entry)
	case StyleChicago:
		return formatChicago(entry)
	default:
		return formatAPA(entry)
	}
}

func formatAPA(entry *reference.Entry) string {
	var year string
	if entry.Year != "" {
		year = "(" + entry.Year + ")"
	}
	return joinPresent(". ",
		formatAuthors(entry),
		year,
		entry.Title,
		venue(entry),
		volumeIssuePages(entry, ", "),
		entry.Publisher,
		locator(entry),
	)
}

func formatVancouver(entry *reference.Entry) string {
	var trailing []string
	if entry.Year != "" {
		trailing = append(trailing, entry.Year)
	}
	if entry.Volume != "" {
		volIssue := entry.Volume
		if entry.Issue != "" {
			volIssue += "(" + entry.Issue + ")"
		}
		trailing = append(trailing, volIssue)
	}
	if entry.Pages != "" {
		trailing = append(trailing, entry.Pages)
	}
	return joinPresent(". ",
		formatAuthors(entry),
		entry.Title,
		venueOrPublisher(entry),
		strings.Join(trailing, ";"),
		locator(entry),
	)
}

func formatIEEE(entry *reference.Entry) string {
	var title string
	if entry.Title != "" {
		title = `"` + entry.Title + `"`
	}
	var pieces []string
	if entry.Volume != "" {
		pieces = append(pieces, "vol. "+entry.Volume)
	}
	if entry.Issue != "" {
		pieces = append(pieces, "no. "+entry.Issue)
	}
	if entry.Pages != "" {
		pieces = append(pieces, "pp. "+entry.Pages)
	}
	if entry.Year != "" {
		pieces = append(pieces, entry.Year)
	}
	return joinPresent(", ",
		formatAuthors(entry),
		title,
		venueOrPublisher(entry),
		strings.Join(pieces, ", "),
		locator(entry),
	)
}

func formatHarvard(entry *reference.Entry) string {
	return joinPresent(", ",
		formatAuthors(entry),
		entry.Year,
		entry.Title,
		venueOrPublisher(entry),
		volumeIssuePages(entry, ", "),
		locator(entry),
	)
}

func formatChicago(entry *reference.Entry) string {
	var title string
	if entry.Title != "" {
		title = `"` + entry.Title + `"`
	}
	var core []string
	if v := venueOrPublisher(entry); v != "" {
		core = append(core, v)
	}
	if details := volumeIssuePages(entry, ", "); details != "" {
		core = append(core, details)
	}
	if entry.Year != "" {
		core = append(core, "("+entry.Year+")")
	}
	return joinPresent(". ",
		formatAuthors(entry),
		title,
		strings.Join(core, " "),
		locator(entry),
	)
}

func formatAuthors(entry *reference.Entry) string {
	return strings.Join(entry.Authors, "; ")
}

func volumeIssuePages(entry *reference.Entry, sep string) string {
	var trailing []string
	if entry.Volume != "" {
		volIssue := entry.Volume
		if entry.Issue != "" {
			volIssue += "(" + entry.Issue + ")"
		}
		trailing = append(trailing, volIssue)
	}
	if entry.Pages != "" {
		trailing = append(trailing, entry.Pages)
	}
	return strings.Join(trailing, sep)
}

func locator(entry *reference.Entry) string {
	if entry.DOI != "" {
		doi := strings.TrimPrefix(strings.TrimPrefix(entry.DOI, "https://doi.org/"), "http://doi.org/")
		return "https://doi.org/" + doi
	}
	return entry.URL
}

// venue prefers the preprint server for preprints, then journal, book
// title, and conference name.
func venue(entry *reference.Entry) string {
	if entry.EntryType == reference.TypePreprint && entry.PreprintServer != "" {
		return entry.PreprintServer
	}
	if entry.Journal != "" {
		return entry.Journal
	}
	if entry.BookTitle != "" {
		return entry.BookTitle
	}
	return entry.ConferenceName
}

func venueOrPublisher(entry *reference.Entry) string {
	if v := venue(entry); v != "" {
		return v
	}
	return entry.Publisher
}

func joinPresent(sep string, parts ...string) string {
	var present []string
	for _, part := range parts {
		if part != "" {
			present = append(present, part)
		}
	}
	return strings.Join(present, sep)
}
