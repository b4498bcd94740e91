package loader

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// blockElements start a new output line when encountered.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "br": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// loadHTML parses an HTML file and flattens its visible text, one line
// per block element.
func loadHTML(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return "", fmt.Errorf("parsing html %s: %w", path, err)
	}

	var lines []string
	var current strings.Builder
	flush := func() {
		if line := strings.TrimSpace(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.ElementNode:
			if node.Data == "script" || node.Data == "style" {
				return
			}
			if blockElements[node.Data] {
				flush()
			}
		case html.TextNode:
			text := strings.TrimSpace(node.Data)
			if text != "" {
				if current.Len() > 0 {
					current.WriteString(" ")
				}
				current.WriteString(text)
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if node.Type == html.ElementNode && blockElements[node.Data] {
			flush()
		}
	}
	walk(doc)
	flush()

	return strings.Join(lines, "\n"), nil
}
