package validate

import (
	"fmt"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// LinkResult is a single reachability outcome. Success means an
// HTTP-style status in [200,400).
type LinkResult struct {
	URL        string `json:"url"`
	Reachable  bool   `json:"reachable"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
}

// LinkChecker checks whether a URL is reachable. Implementations live
// outside the core; network failures come back as unreachable results,
// not errors.
type LinkChecker interface {
	Check(url string) LinkResult
}

// Links checks an entry's DOI (as a resolver URL) and raw URL for
// reachability, deduplicating identical targets. A nil checker skips
// the check entirely.
func Links(entry *reference.Entry, checker LinkChecker) []reference.ValidationIssue {
	if checker == nil {
		return nil
	}

	type target struct{ kind, url string }
	var targets []target
	if entry.DOI != "" {
		doiURL := entry.DOI
		if !strings.HasPrefix(doiURL, "http") {
			doiURL = "https://doi.org/" + entry.DOI
		}
		targets = append(targets, target{"doi", doiURL})
	}
	if entry.URL != "" {
		targets = append(targets, target{"url", entry.URL})
	}

	var issues []reference.ValidationIssue
	seen := make(map[string]bool)
	for _, t := range targets {
		if seen[t.url] {
			continue
		}
		seen[t.url] = true

		result := checker.Check(t.url)
		if result.Reachable {
			continue
		}
		detail := strings.ToUpper(t.kind) + " unreachable"
		if result.StatusCode != 0 {
			detail += fmt.Sprintf(" (status %d)", result.StatusCode)
		} else if result.Error != "" {
			detail += " (" + result.Error + ")"
		}
		issues = append(issues, reference.Error(t.kind+"-unreachable", detail, entry.RawText))
	}
	return issues
}
