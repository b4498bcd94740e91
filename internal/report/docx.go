package report

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/format"
	"github.com/manuscript-tools/refcheck/internal/reference"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
    <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
    <Default Extension="xml" ContentType="application/xml"/>
    <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
    <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const wordRelsXML = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// BuildUpdatedDocx creates a DOCX copy containing the manuscript body
// followed by a reformatted reference list. References with missing
// details get an extra annotation paragraph listing them.
func BuildUpdatedDocx(extraction *reference.DocumentExtraction, issues []reference.ValidationIssue, style string) ([]byte, error) {
	var paragraphs []string
	for _, line := range strings.Split(extraction.BodyText, "\n") {
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	paragraphs = append(paragraphs, "References")

	missing := missingDetailIssues(issues)
	grouped := groupByEntry(missing, extraction.References)

	for i, ref := range extraction.References {
		paragraphs = append(paragraphs, fmt.Sprintf("%d. %s", i+1, format.Format(ref, style)))
		if details := grouped[ref.RawText]; len(details) > 0 {
			details = dedupeSorted(details)
			paragraphs = append(paragraphs, "Missing details: "+strings.Join(details, "; "))
		}
	}

	return buildMinimalDocx(paragraphs)
}

// missingDetailIssues keeps only completeness-style findings.
func missingDetailIssues(issues []reference.ValidationIssue) []reference.ValidationIssue {
	var kept []reference.ValidationIssue
	for _, issue := range issues {
		code := strings.ToLower(issue.Code)
		if strings.HasPrefix(code, "missing-") || strings.Contains(code, "-missing-") {
			kept = append(kept, issue)
		}
	}
	return kept
}

func dedupeSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// buildMinimalDocx zips the paragraphs into a minimal OOXML package.
func buildMinimalDocx(paragraphs []string) ([]byte, error) {
	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	doc.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, para := range paragraphs {
		var escaped strings.Builder
		xml.EscapeText(&escaped, []byte(para))
		doc.WriteString("<w:p><w:r><w:t>" + escaped.String() + "</w:t></w:r></w:p>")
	}
	doc.WriteString("</w:body></w:document>")

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	files := []struct{ name, content string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/_rels/document.xml.rels", wordRelsXML},
		{"word/document.xml", doc.String()},
	}
	for _, file := range files {
		w, err := archive.Create(file.name)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", file.name, err)
		}
		if _, err := w.Write([]byte(file.content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", file.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("closing docx archive: %w", err)
	}
	return buf.Bytes(), nil
}
