package export

import (
	"encoding/xml"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// endnoteTypes maps classified types to EndNote ref-type names.
var endnoteTypes = map[string]string{
	reference.TypeJournal:    "Journal Article",
	reference.TypeBook:       "Book",
	reference.TypeChapter:    "Book Section",
	reference.TypeConference: "Conference Paper",
	reference.TypeDataset:    "Dataset",
	reference.TypePreprint:   "Preprint",
	reference.TypeWebsite:    "Web Page",
}

// ToEndNoteXML converts entries to an EndNote-style XML document with
// nested title, contributor, and date elements. All text content is
// entity-escaped.
func ToEndNoteXML(entries []*reference.Entry) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString("<xml><records>\n")
	for _, entry := range entries {
		writeEndNoteRecord(&b, entry)
	}
	b.WriteString("</records></xml>\n")
	return b.String()
}

func writeEndNoteRecord(b *strings.Builder, entry *reference.Entry) {
	refType, ok := endnoteTypes[entry.EntryType]
	if !ok {
		refType = "Generic"
	}

	b.WriteString("<record>")
	b.WriteString(`<ref-type name="` + escape(refType) + `"/>`)

	if len(entry.Authors) > 0 {
		b.WriteString("<contributors><authors>")
		for _, author := range entry.Authors {
			element(b, "author", author)
		}
		b.WriteString("</authors></contributors>")
	}

	b.WriteString("<titles>")
	element(b, "title", entry.Title)
	secondary := entry.Journal
	if secondary == "" {
		secondary = entry.BookTitle
	}
	if secondary == "" {
		secondary = entry.ConferenceName
	}
	element(b, "secondary-title", secondary)
	b.WriteString("</titles>")

	if entry.Year != "" {
		b.WriteString("<dates>")
		element(b, "year", entry.Year)
		b.WriteString("</dates>")
	}

	element(b, "publisher", entry.Publisher)
	element(b, "volume", entry.Volume)
	element(b, "number", entry.Issue)
	element(b, "pages", entry.Pages)
	element(b, "electronic-resource-num", entry.DOI)

	if entry.URL != "" {
		b.WriteString("<urls><related-urls>")
		element(b, "url", entry.URL)
		b.WriteString("</related-urls></urls>")
	}

	b.WriteString("</record>\n")
}

func element(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString("<" + name + ">" + escape(value) + "</" + name + ">")
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
