package validate

import (
	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Style identifies a citation style with style-specific completeness
// rules.
type Style string

// Supported styles.
const (
	StyleAPA Style = "apa"
	StyleAMA Style = "ama"
)

// styleValidators maps each style to its validator. The table is
// enumerated here so adding a style is a compile-time-visible change,
// not a reflective lookup.
var styleValidators = map[Style]func(*reference.Entry) []reference.ValidationIssue{
	StyleAPA: validateAPA,
	StyleAMA: validateAMA,
}

// StyleCompleteness runs the style-specific completeness rules for the
// given style. Unknown styles yield no issues.
func StyleCompleteness(entry *reference.Entry, style Style) []reference.ValidationIssue {
	validator, ok := styleValidators[style]
	if !ok {
		return nil
	}
	return validator(entry)
}

// KnownStyle reports whether style has style-specific rules.
func KnownStyle(style Style) bool {
	_, ok := styleValidators[style]
	return ok
}

func validateAPA(entry *reference.Entry) []reference.ValidationIssue {
	return styleCommon(entry, StyleAPA)
}

// AMA shares the common journal/pages rules and additionally requires a
// URL on website-type entries.
func validateAMA(entry *reference.Entry) []reference.ValidationIssue {
	issues := styleCommon(entry, StyleAMA)
	if entry.EntryType == reference.TypeWebsite && entry.URL == "" {
		issues = append(issues, styleIssue(entry, StyleAMA, "url", "website reference requires a URL"))
	}
	return issues
}

// styleCommon covers the rules APA and AMA agree on: journal articles
// need volume, issue, and pages; chapters and conference papers need
// pages.
func styleCommon(entry *reference.Entry, style Style) []reference.ValidationIssue {
	var issues []reference.ValidationIssue
	switch entry.EntryType {
	case reference.TypeJournal:
		if entry.Volume == "" {
			issues = append(issues, styleIssue(entry, style, "volume", "journal article requires a volume"))
		}
		if entry.Issue == "" {
			issues = append(issues, styleIssue(entry, style, "issue", "journal article requires an issue"))
		}
		if entry.Pages == "" {
			issues = append(issues, styleIssue(entry, style, "pages", "journal article requires pages"))
		}
	case reference.TypeChapter, reference.TypeConference:
		if entry.Pages == "" {
			issues = append(issues, styleIssue(entry, style, "pages", "entry requires pages"))
		}
	}
	return issues
}

func styleIssue(entry *reference.Entry, style Style, field, detail string) reference.ValidationIssue {
	return reference.Warning(
		string(style)+"-"+entry.EntryType+"-missing-"+field,
		string(style)+" style: "+detail,
		entry.RawText,
	)
}
