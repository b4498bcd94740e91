package report

import (
	"strings"
	"testing"

	"github.com/manuscript-tools/refcheck/internal/predatory"
	"github.com/manuscript-tools/refcheck/internal/reference"
)

func sampleExtraction() *reference.DocumentExtraction {
	return &reference.DocumentExtraction{
		BodyText: "Body [1].\nReferences",
		Citations: []reference.Citation{
			{RawText: "[1]", NormalizedKey: "1"},
		},
		References: []*reference.Entry{
			{RawText: "[1] Doe, J. Title. Journal. 2020.", IndexLabel: "1"},
		},
		Metadata: map[string]string{"matched": "1"},
	}
}

func TestNew_CountsAndRunID(t *testing.T) {
	r := New(sampleExtraction(), nil, nil)
	if r.RunID == "" {
		t.Error("RunID should be set")
	}
	if r.Citations != 1 || r.References != 1 || r.Matched != 1 {
		t.Errorf("counts = %d/%d/%d", r.Citations, r.References, r.Matched)
	}
	if r.Predatory != predatory.StatusUnavailable {
		t.Errorf("Predatory = %q, want Unavailable without screening data", r.Predatory)
	}
}

func TestPredatoryStatus_Reduction(t *testing.T) {
	tests := []struct {
		name      string
		screening []predatory.ScreenResult
		want      string
	}{
		{"none", nil, predatory.StatusUnavailable},
		{"all no", []predatory.ScreenResult{{Status: predatory.StatusNo}}, predatory.StatusNo},
		{"any yes", []predatory.ScreenResult{
			{Status: predatory.StatusNo},
			{Status: predatory.StatusYes},
		}, predatory.StatusYes},
		{"unavailable wins", []predatory.ScreenResult{
			{Status: predatory.StatusYes},
			{Status: predatory.StatusUnavailable},
		}, predatory.StatusUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := predatoryStatus(tt.screening); got != tt.want {
				t.Errorf("predatoryStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_IssuesListed(t *testing.T) {
	issues := []reference.ValidationIssue{
		reference.Error("missing-reference", "No reference entry for citation [2]", "[2]"),
	}
	r := New(sampleExtraction(), issues, nil)
	out := r.Render()

	for _, want := range []string{
		"Citations detected: 1",
		"Reference entries: 1",
		"Matched pairs: 1",
		"[ERROR] missing-reference",
		"-> [2]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRender_CleanRun(t *testing.T) {
	r := New(sampleExtraction(), nil, []predatory.ScreenResult{{Status: predatory.StatusNo}})
	out := r.Render()
	if !strings.Contains(out, "No reference issues detected.") {
		t.Errorf("render:\n%s", out)
	}
	if !strings.Contains(out, "Predatory registry screening: No") {
		t.Errorf("render:\n%s", out)
	}
}

func TestRender_NorwegianConflict(t *testing.T) {
	screening := []predatory.ScreenResult{{Status: predatory.StatusYes, NorwegianConflict: true}}
	r := New(sampleExtraction(), nil, screening)
	if !strings.Contains(r.Render(), "Norwegian level 1 or 2") {
		t.Errorf("render missing conflict line:\n%s", r.Render())
	}
}
