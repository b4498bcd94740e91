package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// loadMarkdown parses Markdown with goldmark and flattens the AST into
// paragraph-separated plain text. Headings become their own lines so
// the section splitter can still find a "References" heading.
func loadMarkdown(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var lines []string
	err = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.Kind() {
		// TextBlock covers tight list items, which hold their text
		// directly rather than in a paragraph.
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			if line := nodeText(node, src); line != "" {
				lines = append(lines, line)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", fmt.Errorf("walking markdown %s: %w", path, err)
	}
	return strings.Join(lines, "\n"), nil
}

// nodeText collects the text segments under a block node.
func nodeText(node ast.Node, src []byte) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString(" ")
			}
		default:
			b.WriteString(nodeText(child, src))
		}
	}
	return strings.TrimSpace(b.String())
}
