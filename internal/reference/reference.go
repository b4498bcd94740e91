// Package reference defines the core domain types for manuscript
// reference validation.
package reference

import "strings"

// Citation represents an in-text citation marker found in body text.
type Citation struct {
	RawText       string `json:"raw_text"`       // Marker as it appears in the text
	Position      int    `json:"position"`       // Character offset in body text
	NormalizedKey string `json:"normalized_key"` // Key used to match against entries
}

// Entry represents a single reference list entry.
//
// Entries are created by the bibliography parser, one per non-blank
// line, and may be filled in (never overwritten) by enrichment
// providers afterwards.
type Entry struct {
	RawText        string   `json:"raw_text"`
	IndexLabel     string   `json:"index_label,omitempty"` // Numeric label from "[1]" style prefixes
	Authors        []string `json:"authors,omitempty"`     // "Surname, Given" where detectable
	Title          string   `json:"title,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	BookTitle      string   `json:"book_title,omitempty"`
	ConferenceName string   `json:"conference_name,omitempty"`
	Publisher      string   `json:"publisher,omitempty"`
	PreprintServer string   `json:"preprint_server,omitempty"`
	DatasetName    string   `json:"dataset_name,omitempty"`
	Year           string   `json:"year,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	URL            string   `json:"url,omitempty"`
	EntryType      string   `json:"entry_type,omitempty"` // Type key, or a raw Crossref type before classification
}

// FormattedKey returns the canonical key used for citation matching and
// duplicate detection. The index label wins when present, then
// first-author-surname + year, then the raw text. The key is stable for
// a given entry state.
func (e *Entry) FormattedKey() string {
	if e.IndexLabel != "" {
		return strings.ToLower(strings.TrimSpace(e.IndexLabel))
	}
	if len(e.Authors) > 0 && e.Year != "" {
		surname, _, _ := strings.Cut(e.Authors[0], ",")
		return strings.ToLower(strings.TrimSpace(surname)) + e.Year
	}
	return strings.ToLower(strings.TrimSpace(e.RawText))
}

// Issue severities.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ValidationIssue represents a single validation finding. Issues are
// produced, never mutated. Context, when set, equals the raw text of
// the entry or citation the issue is about so callers can group issues
// by reference.
type ValidationIssue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Context  string `json:"context,omitempty"`
	Severity string `json:"severity"`
}

// Warning builds a warning-severity issue.
func Warning(code, message, context string) ValidationIssue {
	return ValidationIssue{Code: code, Message: message, Context: context, Severity: SeverityWarning}
}

// Error builds an error-severity issue.
func Error(code, message, context string) ValidationIssue {
	return ValidationIssue{Code: code, Message: message, Context: context, Severity: SeverityError}
}

// DocumentExtraction bundles everything the pipeline extracted from one
// manuscript. Immutable once built.
type DocumentExtraction struct {
	BodyText       string            `json:"body_text"`
	ReferencesText string            `json:"references_text"`
	Citations      []Citation        `json:"citations"`
	References     []*Entry          `json:"references"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}
