package enrich

import (
	"context"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
	"github.com/manuscript-tools/refcheck/internal/validate"
)

// Verifier compares local reference fields against authoritative
// Crossref metadata and reports mismatches.
type Verifier struct {
	Client *CrossrefClient
}

// Verify checks DOI, title, first author, journal, and year. Only
// fields populated on both sides are compared; text comparisons ignore
// case and whitespace. Each mismatch issue carries the online value.
func (v *Verifier) Verify(ctx context.Context, entry *reference.Entry) []reference.ValidationIssue {
	metadata := v.Client.Lookup(ctx, entry)
	if metadata.Empty() {
		return nil
	}

	var issues []reference.ValidationIssue
	mismatch := func(code, detail string) {
		issues = append(issues, reference.Error(code, detail, entry.RawText))
	}

	if entry.DOI != "" && metadata.DOI != "" &&
		validate.NormalizeDOI(entry.DOI) != validate.NormalizeDOI(metadata.DOI) {
		mismatch("doi-mismatch", "DOI points to "+metadata.DOI+" online")
	}
	if entry.Title != "" && metadata.Title != "" && !sameText(entry.Title, metadata.Title) {
		mismatch("title-mismatch", "Online title: "+metadata.Title)
	}
	if len(entry.Authors) > 0 && len(metadata.Authors) > 0 {
		recorded := surname(entry.Authors[0])
		fetched := surname(metadata.Authors[0])
		if recorded != "" && fetched != "" && recorded != fetched {
			mismatch("author-mismatch", "First author online: "+metadata.Authors[0])
		}
	}
	if entry.Journal != "" && metadata.Journal != "" && !sameText(entry.Journal, metadata.Journal) {
		mismatch("journal-mismatch", "Online venue: "+metadata.Journal)
	}
	if entry.Year != "" && metadata.Year != "" &&
		strings.TrimSpace(entry.Year) != strings.TrimSpace(metadata.Year) {
		mismatch("year-mismatch", "Online year: "+metadata.Year)
	}
	return issues
}

func sameText(a, b string) bool {
	return strings.Join(strings.Fields(strings.ToLower(a)), " ") ==
		strings.Join(strings.Fields(strings.ToLower(b)), " ")
}

func surname(author string) string {
	s, _, _ := strings.Cut(author, ",")
	return strings.ToLower(strings.TrimSpace(s))
}
