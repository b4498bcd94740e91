package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// A well-formed numeric marker opening: "[" followed by a digit group
// (with optional commas/ranges) and a closing "]".
var wellFormedMarker = regexp.MustCompile(`^\[[0-9][0-9,\s\-–]*\]`)

// BrokenCitationMarkers checks the body text for unbalanced brackets,
// unbalanced parentheses, and "[" characters that do not open a
// well-formed numeric marker. At most one issue of each kind is
// produced no matter how many offenders exist.
func BrokenCitationMarkers(body string) []reference.ValidationIssue {
	var issues []reference.ValidationIssue

	opens := strings.Count(body, "[")
	closes := strings.Count(body, "]")
	if opens != closes {
		issues = append(issues, reference.Warning(
			"broken-citation-brackets",
			fmt.Sprintf("Unbalanced square brackets in body text (%d open, %d close)", opens, closes),
			"",
		))
	}

	parenOpens := strings.Count(body, "(")
	parenCloses := strings.Count(body, ")")
	if parenOpens != parenCloses {
		issues = append(issues, reference.Warning(
			"broken-citation-parentheses",
			fmt.Sprintf("Unbalanced parentheses in body text (%d open, %d close)", parenOpens, parenCloses),
			"",
		))
	}

	for idx := 0; idx < len(body); idx++ {
		if body[idx] != '[' {
			continue
		}
		if !wellFormedMarker.MatchString(body[idx:]) {
			issues = append(issues, reference.Warning(
				"broken-citation-marker",
				"Citation marker opened but not closed with a numeric label",
				"",
			))
			break
		}
	}

	return issues
}
