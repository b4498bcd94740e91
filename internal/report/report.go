// Package report renders validation results for people: a plain-text
// summary and an updated DOCX copy of the manuscript.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/manuscript-tools/refcheck/internal/predatory"
	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Report is a rendered validation run.
type Report struct {
	RunID      string                      `json:"run_id"`
	Citations  int                         `json:"citations"`
	References int                         `json:"references"`
	Matched    int                         `json:"matched"`
	Predatory  string                      `json:"predatory_status"`
	Issues     []reference.ValidationIssue `json:"issues"`
	Screening  []predatory.ScreenResult    `json:"screening,omitempty"`
	ByEntry    map[string][]string         `json:"-"`
}

// New assembles a report from an extraction, its issues, and the
// per-entry registry screening. Every run gets a unique ID.
func New(extraction *reference.DocumentExtraction, issues []reference.ValidationIssue, screening []predatory.ScreenResult) *Report {
	r := &Report{
		RunID:      uuid.NewString(),
		Citations:  len(extraction.Citations),
		References: len(extraction.References),
		Predatory:  predatoryStatus(screening),
		Issues:     issues,
		Screening:  screening,
		ByEntry:    groupByEntry(issues, extraction.References),
	}
	if matched, ok := extraction.Metadata["matched"]; ok {
		fmt.Sscanf(matched, "%d", &r.Matched)
	}
	return r
}

// predatoryStatus reduces per-entry screening to one document-level
// status. No screening data at all means the registry was unavailable.
func predatoryStatus(screening []predatory.ScreenResult) string {
	if len(screening) == 0 {
		return predatory.StatusUnavailable
	}
	status := predatory.StatusNo
	for _, s := range screening {
		switch s.Status {
		case predatory.StatusUnavailable:
			return predatory.StatusUnavailable
		case predatory.StatusYes:
			status = predatory.StatusYes
		}
	}
	return status
}

// groupByEntry maps each entry's raw text to the issue messages whose
// context points at it.
func groupByEntry(issues []reference.ValidationIssue, references []*reference.Entry) map[string][]string {
	known := make(map[string]bool, len(references))
	for _, ref := range references {
		known[ref.RawText] = true
	}
	grouped := make(map[string][]string)
	for _, issue := range issues {
		if issue.Context != "" && known[issue.Context] {
			grouped[issue.Context] = append(grouped[issue.Context], issue.Message)
		}
	}
	return grouped
}

// Render produces the plain-text report.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("Reference Validation Report\n")
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Citations detected: %d\n", r.Citations)
	fmt.Fprintf(&b, "Reference entries: %d\n", r.References)
	fmt.Fprintf(&b, "Matched pairs: %d\n", r.Matched)
	fmt.Fprintf(&b, "Predatory registry screening: %s\n", r.Predatory)

	for i, s := range r.Screening {
		if s.NorwegianConflict {
			fmt.Fprintf(&b, "Conflict: reference %d matches the registry but holds Norwegian level 1 or 2\n", i+1)
		}
	}

	if len(r.Issues) == 0 {
		b.WriteString("No reference issues detected.\n")
		return b.String()
	}

	b.WriteString("Issues:\n")
	for _, issue := range r.Issues {
		line := fmt.Sprintf("[%s] %s: %s", strings.ToUpper(issue.Severity), issue.Code, issue.Message)
		if issue.Context != "" {
			line += " -> " + issue.Context
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
