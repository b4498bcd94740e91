package reference

import "testing"

func TestFormattedKey_IndexLabelWins(t *testing.T) {
	e := &Entry{
		RawText:    "[3] Smith, J. (2021). Paper.",
		IndexLabel: "3",
		Authors:    []string{"Smith, J"},
		Year:       "2021",
	}
	if got := e.FormattedKey(); got != "3" {
		t.Errorf("FormattedKey() = %q, want %q", got, "3")
	}
}

func TestFormattedKey_AuthorYear(t *testing.T) {
	e := &Entry{
		RawText: "Smith, J. (2021). Paper.",
		Authors: []string{"Smith, J"},
		Year:    "2021",
	}
	if got := e.FormattedKey(); got != "smith2021" {
		t.Errorf("FormattedKey() = %q, want %q", got, "smith2021")
	}
}

func TestFormattedKey_FallbackToRawText(t *testing.T) {
	e := &Entry{RawText: "Untitled Note"}
	if got := e.FormattedKey(); got != "untitled note" {
		t.Errorf("FormattedKey() = %q, want %q", got, "untitled note")
	}
}

func TestFormattedKey_StableAcrossCalls(t *testing.T) {
	e := &Entry{
		IndexLabel: "12",
		Authors:    []string{"Doe, Jane"},
		Year:       "2020",
	}
	first := e.FormattedKey()
	for i := 0; i < 5; i++ {
		if got := e.FormattedKey(); got != first {
			t.Fatalf("FormattedKey() changed between calls: %q then %q", first, got)
		}
	}
}

func TestWarningAndError_Severities(t *testing.T) {
	w := Warning("missing-title", "no title", "ctx")
	if w.Severity != SeverityWarning {
		t.Errorf("Warning severity = %q, want %q", w.Severity, SeverityWarning)
	}
	e := Error("missing-reference", "no entry", "ctx")
	if e.Severity != SeverityError {
		t.Errorf("Error severity = %q, want %q", e.Severity, SeverityError)
	}
}
