package extract

import (
	"regexp"
	"strings"
)

// A "References" or "Bibliography" heading on its own line marks where
// the reference list starts.
var referenceHeading = regexp.MustCompile(`(?im)^(references|bibliography)\s*$`)

// SplitSections splits manuscript text at the reference-list heading.
// The heading line stays with the body; text without a heading is all
// body with an empty reference section.
func SplitSections(text string) (body, references string) {
	loc := referenceHeading.FindStringIndex(text)
	if loc == nil {
		return text, ""
	}
	return strings.TrimSpace(text[:loc[1]]), strings.TrimSpace(text[loc[1]:])
}
