package enrich

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/manuscript-tools/refcheck/internal/reference"
	"github.com/manuscript-tools/refcheck/internal/validate"
)

const (
	// CrossrefBaseURL is the Crossref REST API base URL.
	CrossrefBaseURL = "https://api.crossref.org"

	// DefaultCrossrefTimeout bounds a single lookup.
	DefaultCrossrefTimeout = 6 * time.Second

	// CrossrefRateLimit keeps us inside Crossref's polite pool.
	CrossrefRateLimit = 10.0

	userAgent = "refcheck/0.1"
)

// Fetcher retrieves the raw response body for a URL. Swappable for
// tests.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// CrossrefClient is a rate-limited client for the Crossref works API.
// Each lookup is independent and idempotent; a timeout on one entry
// never affects another.
type CrossrefClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
	fetch      Fetcher
	wrap       func(Fetcher) Fetcher
}

// CrossrefOption configures a CrossrefClient.
type CrossrefOption func(*CrossrefClient)

// WithCrossrefBaseURL overrides the API base URL (for testing).
func WithCrossrefBaseURL(base string) CrossrefOption {
	return func(c *CrossrefClient) { c.baseURL = base }
}

// WithCrossrefTimeout sets the per-request timeout.
func WithCrossrefTimeout(d time.Duration) CrossrefOption {
	return func(c *CrossrefClient) { c.httpClient.Timeout = d }
}

// WithMailto adds a mailto parameter so Crossref can attribute traffic.
func WithMailto(address string) CrossrefOption {
	return func(c *CrossrefClient) { c.mailto = address }
}

// WithFetcher replaces the HTTP fetch entirely.
func WithFetcher(f Fetcher) CrossrefOption {
	return func(c *CrossrefClient) { c.fetch = f }
}

// WithFetchWrapper layers middleware (such as a response cache) over
// whatever fetcher the client ends up with.
func WithFetchWrapper(wrap func(Fetcher) Fetcher) CrossrefOption {
	return func(c *CrossrefClient) { c.wrap = wrap }
}

// NewCrossrefClient creates a Crossref client.
func NewCrossrefClient(opts ...CrossrefOption) *CrossrefClient {
	c := &CrossrefClient{
		httpClient: &http.Client{Timeout: DefaultCrossrefTimeout},
		limiter:    rate.NewLimiter(rate.Limit(CrossrefRateLimit), 1),
		baseURL:    CrossrefBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetch == nil {
		c.fetch = c.httpGet
	}
	if c.wrap != nil {
		c.fetch = c.wrap(c.fetch)
	}
	return c
}

// Lookup resolves metadata for an entry by DOI, falling back to a
// title query. Lookups that fail for any reason return empty metadata.
func (c *CrossrefClient) Lookup(ctx context.Context, entry *reference.Entry) Metadata {
	target := c.buildURL(entry)
	if target == "" {
		return Metadata{}
	}
	body, err := c.fetch(ctx, target)
	if err != nil || len(body) == 0 {
		return Metadata{}
	}
	return parseCrossrefResponse(body)
}

func (c *CrossrefClient) buildURL(entry *reference.Entry) string {
	if entry.DOI != "" {
		return c.baseURL + "/works/" + validate.NormalizeDOI(entry.DOI)
	}
	if entry.Title != "" {
		query := url.Values{}
		query.Set("query.title", entry.Title)
		query.Set("rows", "1")
		if c.mailto != "" {
			query.Set("mailto", c.mailto)
		}
		return c.baseURL + "/works?" + query.Encode()
	}
	return ""
}

func (c *CrossrefClient) httpGet(ctx context.Context, target string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return nil, nil
	}
	return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
}

// crossrefWork mirrors the subset of the Crossref message we use.
type crossrefWork struct {
	DOI    string   `json:"DOI"`
	Type   string   `json:"type"`
	Title  []string `json:"title"`
	Volume string   `json:"volume"`
	Issue  string   `json:"issue"`
	Page   string   `json:"page"`
	Author []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	ContainerTitle []string `json:"container-title"`
	Issued         struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
}

func parseCrossrefResponse(body []byte) Metadata {
	// Single-work responses put the work directly in "message";
	// query responses nest a list under "message.items".
	var single struct {
		Message crossrefWork `json:"message"`
	}
	if err := json.Unmarshal(body, &single); err == nil && workPopulated(single.Message) {
		return workMetadata(single.Message)
	}

	var listed struct {
		Message struct {
			Items []crossrefWork `json:"items"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &listed); err == nil && len(listed.Message.Items) > 0 {
		return workMetadata(listed.Message.Items[0])
	}
	return Metadata{}
}

func workPopulated(w crossrefWork) bool {
	return w.DOI != "" || len(w.Title) > 0 || len(w.Author) > 0
}

func workMetadata(w crossrefWork) Metadata {
	m := Metadata{
		DOI:       w.DOI,
		EntryType: w.Type,
		Volume:    w.Volume,
		Issue:     w.Issue,
		Pages:     w.Page,
	}
	if len(w.Title) > 0 {
		m.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		m.Journal = w.ContainerTitle[0]
	}
	for _, author := range w.Author {
		switch {
		case author.Family != "" && author.Given != "":
			m.Authors = append(m.Authors, author.Family+", "+author.Given)
		case author.Family != "":
			m.Authors = append(m.Authors, author.Family)
		}
	}
	if parts := w.Issued.DateParts; len(parts) > 0 && len(parts[0]) > 0 {
		m.Year = strconv.Itoa(parts[0][0])
	}
	return m
}

// CrossrefProvider enriches entries from Crossref metadata.
type CrossrefProvider struct {
	Client *CrossrefClient
}

// Name implements Provider.
func (p *CrossrefProvider) Name() string { return "crossref" }

// Enrich implements Provider.
func (p *CrossrefProvider) Enrich(ctx context.Context, entry *reference.Entry) {
	metadata := p.Client.Lookup(ctx, entry)
	if metadata.Empty() {
		return
	}
	metadata.Apply(entry)
}
