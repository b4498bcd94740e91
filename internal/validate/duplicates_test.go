package validate

import (
	"testing"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.1234/ABC", "10.1234/abc"},
		{"https://doi.org/10.1234/abc", "10.1234/abc"},
		{"http://dx.doi.org/10.1234/abc", "10.1234/abc"},
		{"doi:10.1234/abc", "10.1234/abc"},
		{"  10.1234/abc  ", "10.1234/abc"},
	}
	for _, tt := range tests {
		if got := NormalizeDOI(tt.in); got != tt.want {
			t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDuplicates_SecondOccurrenceFlagged(t *testing.T) {
	entries := []*reference.Entry{
		{RawText: "[1] First.", IndexLabel: "1"},
		{RawText: "[1] First again.", IndexLabel: "1"},
		{RawText: "[2] Other.", IndexLabel: "2"},
	}
	issues := Duplicates(entries)
	if len(issues) != 1 {
		t.Fatalf("Duplicates() = %v, want exactly one issue", issues)
	}
	if issues[0].Code != "duplicate-reference" {
		t.Errorf("Code = %q", issues[0].Code)
	}
	// The second occurrence is the flagged one.
	if issues[0].Context != "[1] First again." {
		t.Errorf("Context = %q", issues[0].Context)
	}
}

func TestDuplicates_DOIVariantsCollide(t *testing.T) {
	entries := []*reference.Entry{
		{RawText: "a", IndexLabel: "1", DOI: "10.1234/x"},
		{RawText: "b", IndexLabel: "2", DOI: "https://doi.org/10.1234/X"},
	}
	issues := Duplicates(entries)
	if len(issues) != 1 || issues[0].Code != "duplicate-doi" {
		t.Errorf("Duplicates() = %v, want one duplicate-doi", issues)
	}
}

func TestDuplicates_NoneForDistinctEntries(t *testing.T) {
	entries := []*reference.Entry{
		{RawText: "a", IndexLabel: "1", DOI: "10.1/a"},
		{RawText: "b", IndexLabel: "2", DOI: "10.1/b"},
	}
	if issues := Duplicates(entries); len(issues) != 0 {
		t.Errorf("Duplicates() = %v, want none", issues)
	}
}
