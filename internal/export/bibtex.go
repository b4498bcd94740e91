// Package export renders reference entries into interchange formats:
// BibTeX, RIS, EndNote XML, and JSON.
package export

import (
	"fmt"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// bibtexEntryTypes maps classified types to BibTeX entry types.
var bibtexEntryTypes = map[string]string{
	reference.TypeJournal:    "article",
	reference.TypeBook:       "book",
	reference.TypeChapter:    "incollection",
	reference.TypeConference: "inproceedings",
	reference.TypePreprint:   "article",
	reference.TypeDataset:    "misc",
	reference.TypeWebsite:    "misc",
}

// ToBibTeX converts a single entry to a BibTeX record. Fields appear in
// a fixed order; empty fields are omitted.
func ToBibTeX(entry *reference.Entry) string {
	entryType, ok := bibtexEntryTypes[entry.EntryType]
	if !ok {
		entryType = "misc"
	}

	key := entry.FormattedKey()
	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))

	writeField := func(name, value string) {
		if value != "" {
			b.WriteString(fmt.Sprintf("  %s = {%s},\n", name, value))
		}
	}

	writeField("author", strings.Join(entry.Authors, ", "))
	writeField("title", entry.Title)
	writeField("journal", entry.Journal)
	writeField("year", entry.Year)
	writeField("volume", entry.Volume)
	writeField("number", entry.Issue)
	writeField("pages", entry.Pages)
	writeField("doi", entry.DOI)
	writeField("url", entry.URL)

	b.WriteString("}\n")
	return b.String()
}

// ToBibTeXList converts multiple entries to BibTeX.
func ToBibTeXList(entries []*reference.Entry) string {
	records := make([]string, 0, len(entries))
	for _, entry := range entries {
		records = append(records, ToBibTeX(entry))
	}
	return strings.Join(records, "\n")
}
