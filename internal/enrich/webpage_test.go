package enrich

import (
	"context"
	"testing"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

const citationMetaHTML = `<html><head>
<title>Fallback Title | Site</title>
<meta name="citation_title" content="Meta Title">
<meta name="citation_author" content="Doe, Jane">
<meta name="citation_author" content="Roe, Richard">
<meta name="citation_journal_title" content="Journal of Pages">
<meta name="citation_publication_date" content="2021/04/02">
<meta name="citation_volume" content="3">
<meta name="citation_firstpage" content="11">
<meta name="citation_lastpage" content="19">
<meta name="citation_doi" content="10.5555/page">
</head><body></body></html>`

func TestParsePageMetadata_CitationTags(t *testing.T) {
	m := ParsePageMetadata([]byte(citationMetaHTML))

	if m.Title != "Meta Title" {
		t.Errorf("Title = %q, want citation_title to win", m.Title)
	}
	if len(m.Authors) != 2 || m.Authors[0] != "Doe, Jane" {
		t.Errorf("Authors = %v", m.Authors)
	}
	if m.Journal != "Journal of Pages" {
		t.Errorf("Journal = %q", m.Journal)
	}
	if m.Year != "2021" {
		t.Errorf("Year = %q, want year extracted from publication date", m.Year)
	}
	if m.Pages != "11-19" {
		t.Errorf("Pages = %q", m.Pages)
	}
	if m.DOI != "10.5555/page" {
		t.Errorf("DOI = %q", m.DOI)
	}
}

func TestParsePageMetadata_TitleFallbacks(t *testing.T) {
	og := `<html><head><meta property="og:title" content="OG Title"><title>Doc Title</title></head></html>`
	if m := ParsePageMetadata([]byte(og)); m.Title != "OG Title" {
		t.Errorf("Title = %q, want og:title over <title>", m.Title)
	}

	bare := `<html><head><title>Doc Title</title></head></html>`
	if m := ParsePageMetadata([]byte(bare)); m.Title != "Doc Title" {
		t.Errorf("Title = %q, want <title> fallback", m.Title)
	}
}

func TestParsePageMetadata_NoMetadata(t *testing.T) {
	if m := ParsePageMetadata([]byte(`<html><body><p>hi</p></body></html>`)); !m.Empty() {
		t.Errorf("metadata = %+v, want empty", m)
	}
}

func TestWebPage_EnrichFillsFromPage(t *testing.T) {
	provider := NewWebPage(WithWebPageFetcher(func(ctx context.Context, url string) ([]byte, error) {
		return []byte(citationMetaHTML), nil
	}))
	entry := &reference.Entry{URL: "https://example.com/article"}
	provider.Enrich(context.Background(), entry)

	if entry.Title != "Meta Title" || entry.Journal != "Journal of Pages" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestWebPage_NoTargetNoFetch(t *testing.T) {
	provider := NewWebPage(WithWebPageFetcher(func(ctx context.Context, url string) ([]byte, error) {
		t.Error("fetch should not happen without URL or DOI")
		return nil, nil
	}))
	provider.Enrich(context.Background(), &reference.Entry{})
}
