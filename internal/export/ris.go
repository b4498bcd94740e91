package export

import (
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// risTypes maps classified types to RIS TY tags.
var risTypes = map[string]string{
	reference.TypeJournal:    "JOUR",
	reference.TypeBook:       "BOOK",
	reference.TypeChapter:    "CHAP",
	reference.TypeConference: "CONF",
	reference.TypeDataset:    "DATA",
	reference.TypePreprint:   "GEN",
	reference.TypeWebsite:    "ELEC",
}

// ToRIS converts an entry to an RIS record, terminated by the ER tag.
func ToRIS(entry *reference.Entry) string {
	var b strings.Builder
	tag := func(name, value string) {
		if value != "" {
			b.WriteString(name)
			b.WriteString("  - ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}

	ty, ok := risTypes[entry.EntryType]
	if !ok {
		ty = "GEN"
	}
	tag("TY", ty)
	for _, author := range entry.Authors {
		tag("AU", author)
	}
	tag("TI", entry.Title)
	tag("JO", entry.Journal)
	secondary := entry.BookTitle
	if secondary == "" {
		secondary = entry.ConferenceName
	}
	tag("T2", secondary)
	tag("PB", entry.Publisher)
	tag("PY", entry.Year)
	tag("VL", entry.Volume)
	tag("IS", entry.Issue)
	start, end := splitPages(entry.Pages)
	tag("SP", start)
	tag("EP", end)
	tag("DO", entry.DOI)
	tag("UR", entry.URL)
	b.WriteString("ER  - \n")
	return b.String()
}

// ToRISList converts multiple entries to an RIS document.
func ToRISList(entries []*reference.Entry) string {
	records := make([]string, 0, len(entries))
	for _, entry := range entries {
		records = append(records, ToRIS(entry))
	}
	return strings.Join(records, "\n")
}

// splitPages splits "10-12" into start and end pages. A single page or
// unparseable value goes entirely into the start page.
func splitPages(pages string) (start, end string) {
	if pages == "" {
		return "", ""
	}
	normalized := strings.NewReplacer("–", "-", "—", "-").Replace(pages)
	start, end, found := strings.Cut(normalized, "-")
	if !found {
		return strings.TrimSpace(normalized), ""
	}
	return strings.TrimSpace(start), strings.TrimSpace(end)
}
