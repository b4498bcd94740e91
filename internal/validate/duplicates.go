package validate

import (
	"regexp"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

var doiPrefixPattern = regexp.MustCompile(`^https?://(dx\.)?doi\.org/`)

// NormalizeDOI lowercases a DOI and strips resolver prefixes so that
// textual variants of the same DOI compare equal.
func NormalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	doi = doiPrefixPattern.ReplaceAllString(doi, "")
	return strings.TrimPrefix(doi, "doi:")
}

// Duplicates flags entries sharing a formatted key or a normalized DOI.
// The first occurrence of a key or DOI is never flagged, only the
// second and later ones.
func Duplicates(entries []*reference.Entry) []reference.ValidationIssue {
	var issues []reference.ValidationIssue
	seenKeys := make(map[string]bool)
	seenDOIs := make(map[string]bool)

	for _, entry := range entries {
		key := entry.FormattedKey()
		if seenKeys[key] {
			issues = append(issues, reference.Warning(
				"duplicate-reference",
				"Duplicate reference entry for key "+key,
				entry.RawText,
			))
		}
		seenKeys[key] = true

		if entry.DOI != "" {
			doi := NormalizeDOI(entry.DOI)
			if seenDOIs[doi] {
				issues = append(issues, reference.Warning(
					"duplicate-doi",
					"Duplicate DOI "+doi,
					entry.RawText,
				))
			}
			seenDOIs[doi] = true
		}
	}
	return issues
}
