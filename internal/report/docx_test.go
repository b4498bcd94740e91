package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

func readDocxBody(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(body)
	}
	t.Fatal("word/document.xml missing from archive")
	return ""
}

func TestBuildUpdatedDocx_BodyAndReferences(t *testing.T) {
	extraction := sampleExtraction()
	data, err := BuildUpdatedDocx(extraction, nil, "apa")
	if err != nil {
		t.Fatalf("BuildUpdatedDocx() error: %v", err)
	}

	body := readDocxBody(t, data)
	for _, want := range []string{
		"Body [1].",
		"<w:t>References</w:t>",
		"1. ", // numbered reformatted reference
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document missing %q:\n%s", want, body)
		}
	}
}

func TestBuildUpdatedDocx_MissingDetailAnnotations(t *testing.T) {
	extraction := sampleExtraction()
	ref := extraction.References[0]
	issues := []reference.ValidationIssue{
		reference.Warning("missing-year", "Reference entry missing year", ref.RawText),
		reference.Warning("journal-missing-journal", "Journal article missing journal name", ref.RawText),
		// Not a completeness finding: must not appear.
		reference.Warning("uncited-reference", "Reference not cited in text", ref.RawText),
	}
	data, err := BuildUpdatedDocx(extraction, issues, "apa")
	if err != nil {
		t.Fatalf("BuildUpdatedDocx() error: %v", err)
	}

	body := readDocxBody(t, data)
	if !strings.Contains(body, "Missing details:") {
		t.Errorf("annotation paragraph missing:\n%s", body)
	}
	if strings.Contains(body, "not cited") {
		t.Errorf("non-completeness issue leaked into annotations:\n%s", body)
	}
}

func TestBuildUpdatedDocx_ValidPackageParts(t *testing.T) {
	data, err := BuildUpdatedDocx(sampleExtraction(), nil, "apa")
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		if !names[want] {
			t.Errorf("archive missing %s, has %v", want, names)
		}
	}
}
