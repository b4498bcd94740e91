package enrich

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// DefaultWebPageTimeout bounds a single page fetch.
const DefaultWebPageTimeout = 6 * time.Second

var webYearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// WebPage scrapes Highwire/Dublin Core/Open Graph meta tags from an
// entry's landing page to fill missing fields.
type WebPage struct {
	httpClient *http.Client
	fetch      Fetcher
}

// WebPageOption configures a WebPage provider.
type WebPageOption func(*WebPage)

// WithWebPageFetcher replaces the HTTP fetch (for testing).
func WithWebPageFetcher(f Fetcher) WebPageOption {
	return func(w *WebPage) { w.fetch = f }
}

// WithWebPageTimeout sets the per-request timeout.
func WithWebPageTimeout(d time.Duration) WebPageOption {
	return func(w *WebPage) { w.httpClient.Timeout = d }
}

// NewWebPage creates a web-page metadata provider.
func NewWebPage(opts ...WebPageOption) *WebPage {
	w := &WebPage{httpClient: &http.Client{Timeout: DefaultWebPageTimeout}}
	for _, opt := range opts {
		opt(w)
	}
	if w.fetch == nil {
		w.fetch = w.httpGet
	}
	return w
}

// Name implements Provider.
func (w *WebPage) Name() string { return "web-page" }

// Enrich implements Provider.
func (w *WebPage) Enrich(ctx context.Context, entry *reference.Entry) {
	target := entry.URL
	if target == "" && entry.DOI != "" {
		target = "https://doi.org/" + entry.DOI
	}
	if target == "" {
		return
	}
	body, err := w.fetch(ctx, target)
	if err != nil || len(body) == 0 {
		return
	}
	metadata := ParsePageMetadata(body)
	if metadata.Empty() {
		return
	}
	metadata.Apply(entry)
}

func (w *WebPage) httpGet(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

// pageMeta collects meta tags and the document title while walking the
// HTML tree.
type pageMeta struct {
	byName     map[string][]string
	byProperty map[string]string
	title      string
}

// ParsePageMetadata extracts reference metadata from an HTML document's
// citation_*, dc.*, and og: meta tags, falling back to the <title>
// element.
func ParsePageMetadata(body []byte) Metadata {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return Metadata{}
	}
	meta := &pageMeta{
		byName:     make(map[string][]string),
		byProperty: make(map[string]string),
	}
	meta.walk(doc)

	m := Metadata{
		Authors: meta.byName["citation_author"],
		Journal: meta.first("citation_journal_title", "citation_conference_title"),
		DOI:     meta.first("citation_doi"),
		Volume:  meta.first("citation_volume"),
		Issue:   meta.first("citation_issue"),
	}

	m.Title = meta.first("citation_title", "dc.title")
	if m.Title == "" {
		m.Title = meta.byProperty["og:title"]
	}
	if m.Title == "" {
		m.Title = strings.TrimSpace(meta.title)
	}

	m.Year = meta.first("citation_year", "dc.date")
	if m.Year == "" {
		if date := meta.first("citation_publication_date"); date != "" {
			m.Year = webYearPattern.FindString(date)
		}
	}

	first := meta.first("citation_firstpage")
	last := meta.first("citation_lastpage")
	switch {
	case first != "" && last != "":
		m.Pages = first + "-" + last
	case first != "":
		m.Pages = first
	}

	return m
}

func (p *pageMeta) walk(node *html.Node) {
	if node.Type == html.ElementNode {
		switch node.Data {
		case "meta":
			var name, property, content string
			for _, attr := range node.Attr {
				switch strings.ToLower(attr.Key) {
				case "name":
					name = strings.ToLower(attr.Val)
				case "property":
					property = strings.ToLower(attr.Val)
				case "content":
					content = strings.TrimSpace(attr.Val)
				}
			}
			if content != "" {
				if name != "" {
					p.byName[name] = append(p.byName[name], content)
				}
				if property != "" {
					p.byProperty[property] = content
				}
			}
		case "title":
			if node.FirstChild != nil && node.FirstChild.Type == html.TextNode {
				p.title += node.FirstChild.Data
			}
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		p.walk(child)
	}
}

func (p *pageMeta) first(names ...string) string {
	for _, name := range names {
		if values := p.byName[name]; len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
