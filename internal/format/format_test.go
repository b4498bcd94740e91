package format

import (
	"strings"
	"testing"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

func journalEntry() *reference.Entry {
	return &reference.Entry{
		Authors:   []string{"Doe, J", "Roe, R"},
		Title:     "Article title",
		Journal:   "Journal Name",
		Year:      "2020",
		Volume:    "10",
		Issue:     "2",
		Pages:     "10-12",
		DOI:       "10.1234/example",
		EntryType: reference.TypeJournal,
	}
}

func TestFormat_APA(t *testing.T) {
	got := Format(journalEntry(), "apa")
	for _, want := range []string{
		"Doe, J; Roe, R",
		"(2020)",
		"Article title",
		"Journal Name",
		"10(2), 10-12",
		"https://doi.org/10.1234/example",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("APA output missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_Vancouver(t *testing.T) {
	got := Format(journalEntry(), "vancouver")
	if !strings.Contains(got, "2020;10(2);10-12") {
		t.Errorf("Vancouver output missing year;volume(issue);pages:\n%s", got)
	}
}

func TestFormat_IEEE(t *testing.T) {
	got := Format(journalEntry(), "ieee")
	for _, want := range []string{`"Article title"`, "vol. 10", "no. 2", "pp. 10-12"} {
		if !strings.Contains(got, want) {
			t.Errorf("IEEE output missing %q:\n%s", want, got)
		}
	}
}

func TestFormat_Chicago(t *testing.T) {
	got := Format(journalEntry(), "chicago")
	if !strings.Contains(got, `"Article title"`) || !strings.Contains(got, "(2020)") {
		t.Errorf("Chicago output:\n%s", got)
	}
}

func TestFormat_UnknownStyleFallsBackToAPA(t *testing.T) {
	entry := journalEntry()
	if got, want := Format(entry, "mystery"), Format(entry, "apa"); got != want {
		t.Errorf("unknown style = %q, want APA rendering %q", got, want)
	}
}

func TestFormat_PreprintVenueIsServer(t *testing.T) {
	entry := &reference.Entry{
		Authors:        []string{"Doe, J"},
		Title:          "New results",
		Journal:        "bioRxiv preprint page",
		PreprintServer: "bioRxiv",
		Year:           "2023",
		EntryType:      reference.TypePreprint,
	}
	got := Format(entry, "apa")
	if !strings.Contains(got, "New results. bioRxiv") {
		t.Errorf("preprint venue should be the server name:\n%s", got)
	}
}

func TestFormat_SparseEntryNoSeparatorRuns(t *testing.T) {
	entry := &reference.Entry{Title: "Only a title"}
	got := Format(entry, "apa")
	if got != "Only a title" {
		t.Errorf("Format() = %q, want just the title", got)
	}
	if strings.Contains(got, ". .") {
		t.Errorf("output has empty segments: %q", got)
	}
}

func TestFormat_BookUsesPublisher(t *testing.T) {
	entry := &reference.Entry{
		Authors:   []string{"Doe, J"},
		Title:     "The Book",
		Publisher: "MIT Press",
		Year:      "2019",
		EntryType: reference.TypeBook,
	}
	got := Format(entry, "harvard")
	if !strings.Contains(got, "MIT Press") {
		t.Errorf("Harvard book output missing publisher:\n%s", got)
	}
}
