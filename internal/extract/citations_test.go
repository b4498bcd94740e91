package extract

import (
	"reflect"
	"testing"
)

func TestCitations_NumericWithRange(t *testing.T) {
	citations := Citations("As shown in [1, 2-3], results hold.")
	want := []string{"1", "2", "3"}
	if got := Keys(citations); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	for _, c := range citations {
		if c.RawText != "[1, 2-3]" {
			t.Errorf("RawText = %q, want %q", c.RawText, "[1, 2-3]")
		}
	}
}

func TestCitations_EnDashRange(t *testing.T) {
	got := Keys(Citations("See [4–6]."))
	want := []string{"4", "5", "6"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestCitations_AuthorYear(t *testing.T) {
	citations := Citations("Prior work (Doe, 2020) and (Smith et al., 2019) agrees.")
	want := []string{"doe2020", "smith2019"}
	if got := Keys(citations); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestCitations_OrderedByPosition(t *testing.T) {
	citations := Citations("(Doe, 2020) then [2] then [1].")
	want := []string{"doe2020", "2", "1"}
	if got := Keys(citations); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	for i := 1; i < len(citations); i++ {
		if citations[i].Position < citations[i-1].Position {
			t.Fatalf("citations not ordered by position: %v", citations)
		}
	}
}

func TestCitations_NoMarkers(t *testing.T) {
	if got := Citations("Plain prose without any markers."); len(got) != 0 {
		t.Errorf("Citations() = %v, want empty", got)
	}
	if got := Citations(""); len(got) != 0 {
		t.Errorf("Citations(\"\") = %v, want empty", got)
	}
}

func TestCitations_MalformedBracketsIgnored(t *testing.T) {
	// An unclosed bracket is not a citation; the well-formed one is.
	got := Keys(Citations("Cite [1 and [2]."))
	want := []string{"2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestExpandNumericGroup_ReversedRangeDropped(t *testing.T) {
	if got := expandNumericGroup("5-3"); len(got) != 0 {
		t.Errorf("expandNumericGroup(5-3) = %v, want empty", got)
	}
}
