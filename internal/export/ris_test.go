package export

import (
	"strings"
	"testing"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

func TestToRIS_JournalArticle(t *testing.T) {
	got := ToRIS(sampleEntry())

	if !strings.HasPrefix(got, "TY  - JOUR\n") {
		t.Errorf("record should open TY  - JOUR:\n%s", got)
	}
	for _, want := range []string{
		"AU  - Doe, J\n",
		"AU  - Roe, R\n",
		"TI  - Article title\n",
		"JO  - Journal Name\n",
		"PY  - 2020\n",
		"VL  - 10\n",
		"IS  - 2\n",
		"SP  - 10\n",
		"EP  - 12\n",
		"DO  - 10.1234/example\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("record missing %q:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "ER  - \n") {
		t.Errorf("record should end with ER:\n%s", got)
	}
}

func TestToRIS_TypeMapping(t *testing.T) {
	tests := []struct {
		entryType string
		want      string
	}{
		{reference.TypeBook, "BOOK"},
		{reference.TypeChapter, "CHAP"},
		{reference.TypeConference, "CONF"},
		{reference.TypeDataset, "DATA"},
		{reference.TypeWebsite, "ELEC"},
		{reference.TypeUnknown, "GEN"},
	}
	for _, tt := range tests {
		got := ToRIS(&reference.Entry{EntryType: tt.entryType})
		if !strings.HasPrefix(got, "TY  - "+tt.want+"\n") {
			t.Errorf("type %q opened %q, want TY  - %s", tt.entryType, got[:strings.Index(got, "\n")], tt.want)
		}
	}
}

func TestToRIS_SecondaryTitle(t *testing.T) {
	chapter := &reference.Entry{EntryType: reference.TypeChapter, BookTitle: "Handbook of Things"}
	if got := ToRIS(chapter); !strings.Contains(got, "T2  - Handbook of Things\n") {
		t.Errorf("chapter record missing book title:\n%s", got)
	}

	conf := &reference.Entry{EntryType: reference.TypeConference, ConferenceName: "Proc. 10th Conf"}
	if got := ToRIS(conf); !strings.Contains(got, "T2  - Proc. 10th Conf\n") {
		t.Errorf("conference record missing conference name:\n%s", got)
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		in         string
		start, end string
	}{
		{"10-12", "10", "12"},
		{"10–12", "10", "12"}, // en dash
		{"7", "7", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		start, end := splitPages(tt.in)
		if start != tt.start || end != tt.end {
			t.Errorf("splitPages(%q) = (%q, %q), want (%q, %q)", tt.in, start, end, tt.start, tt.end)
		}
	}
}
