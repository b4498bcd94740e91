package predatory

import (
	"strings"

	"github.com/manuscript-tools/refcheck/internal/normalize"
	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Match basis values.
const (
	BasisName   = "name"
	BasisDomain = "domain"
)

// Screening status values. StatusUnavailable means no registry was
// loaded, which is not the same as a registry that matched nothing.
const (
	StatusYes         = "Yes"
	StatusNo          = "No"
	StatusUnavailable = "Unavailable"
)

// Match pairs a registry record with how it was hit.
type Match struct {
	Record       *Record `json:"record"`
	Basis        string  `json:"basis"`         // "name" or "domain"
	MatchedValue string  `json:"matched_value"` // The literal journal/publisher/domain that hit
}

// ScreenResult summarizes registry screening for one entry.
type ScreenResult struct {
	Status            string  `json:"status"` // Yes, No, or Unavailable
	Matches           []Match `json:"matches,omitempty"`
	NorwegianConflict bool    `json:"norwegian_conflict"` // Matched, yet rated level 1 or 2
}

// MatchEntry returns every registry hit for an entry: name matches on
// its journal and publisher, and domain matches on its URL.
func (r *Registry) MatchEntry(entry *reference.Entry) []Match {
	var matches []Match
	if entry.Journal != "" {
		matches = append(matches, r.matchName(entry.Journal, "journal", "publisher")...)
	}
	if entry.Publisher != "" {
		matches = append(matches, r.matchName(entry.Publisher, "publisher")...)
	}
	if domain := normalize.Domain(entry.URL); domain != "" {
		matches = append(matches, r.matchDomain(domain, "journal", "publisher")...)
	}
	return matches
}

// CheckEntry converts registry matches into validation issues, one per
// distinct matched record.
func (r *Registry) CheckEntry(entry *reference.Entry) []reference.ValidationIssue {
	var issues []reference.ValidationIssue
	seen := make(map[*Record]bool)
	for _, match := range r.MatchEntry(entry) {
		if seen[match.Record] {
			continue
		}
		seen[match.Record] = true
		issues = append(issues, reference.Warning(
			"predatory-db-"+match.Record.EntryType,
			matchMessage(match),
			entry.RawText,
		))
	}
	return issues
}

// Screen runs MatchEntry and reduces the result to a status plus the
// Norwegian-level conflict flag. A nil registry screens everything as
// StatusUnavailable.
func (r *Registry) Screen(entry *reference.Entry) ScreenResult {
	if r == nil {
		return ScreenResult{Status: StatusUnavailable}
	}
	matches := r.MatchEntry(entry)
	if len(matches) == 0 {
		return ScreenResult{Status: StatusNo}
	}
	result := ScreenResult{Status: StatusYes, Matches: matches}
	for _, match := range matches {
		level := strings.TrimSpace(match.Record.NorwegianLevel)
		if level == "1" || level == "2" {
			result.NorwegianConflict = true
			break
		}
	}
	return result
}

func (r *Registry) matchName(name string, expectedTypes ...string) []Match {
	normalized := normalize.Text(name)
	if normalized == "" {
		return nil
	}
	var matches []Match
	for _, record := range r.nameIndex[normalized] {
		if typeExpected(record.EntryType, expectedTypes) {
			matches = append(matches, Match{Record: record, Basis: BasisName, MatchedValue: name})
		}
	}
	return matches
}

func (r *Registry) matchDomain(domain string, expectedTypes ...string) []Match {
	var matches []Match
	for _, candidate := range normalize.DomainCandidates(domain) {
		for _, record := range r.domainIndex[candidate] {
			if typeExpected(record.EntryType, expectedTypes) {
				matches = append(matches, Match{Record: record, Basis: BasisDomain, MatchedValue: domain})
			}
		}
	}
	return matches
}

func typeExpected(entryType string, expected []string) bool {
	for _, t := range expected {
		if entryType == t {
			return true
		}
	}
	return false
}

// manualLinkPriority fixes the order manual-verification links appear
// in match messages.
var manualLinkPriority = []string{
	"manual_check_homepage",
	"manual_check_doaj",
	"manual_check_cope",
	"manual_check_nlm_catalog",
	"manual_check_pubmed_search",
	"manual_check_scimagojr",
	"manual_check_kanalregister",
	"manual_check_google",
}

func matchMessage(match Match) string {
	record := match.Record
	risk := record.RiskLevel
	if risk == "" {
		risk = "unknown"
	}
	norwegian := record.NorwegianLevel
	if norwegian == "" {
		norwegian = "Unknown"
	}
	parts := []string{
		"Possible predatory " + record.EntryType + " match: " + record.Name,
		"risk=" + risk,
		"Norwegian level=" + norwegian,
		"match=" + match.Basis,
	}
	if record.WarningSummary != "" {
		parts = append(parts, record.WarningSummary)
	}
	if links := formatManualLinks(record.ManualLinks); links != "" {
		parts = append(parts, links)
	}
	return strings.Join(parts, " | ")
}

func formatManualLinks(links map[string]string) string {
	if len(links) == 0 {
		return ""
	}
	var parts []string
	for _, key := range manualLinkPriority {
		url := links[key]
		if url == "" {
			continue
		}
		label := strings.ReplaceAll(strings.TrimPrefix(key, "manual_check_"), "_", " ")
		parts = append(parts, label+": "+url)
	}
	if len(parts) == 0 {
		return ""
	}
	return "manual checks -> " + strings.Join(parts, "; ")
}
