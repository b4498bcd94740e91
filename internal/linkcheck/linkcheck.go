// Package linkcheck provides the HTTP implementation of the link
// reachability check.
package linkcheck

import (
	"context"
	"net/http"
	"time"

	"github.com/manuscript-tools/refcheck/internal/validate"
)

// DefaultTimeout bounds every reachability request.
const DefaultTimeout = 5 * time.Second

// Requester performs the actual status probe. Swappable for tests.
type Requester func(url string) (int, error)

// Checker issues HEAD requests to decide reachability. Each check is
// independent and bounded by the configured timeout; a failure on one
// URL never affects another.
type Checker struct {
	requester Requester
	timeout   time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithRequester replaces the HTTP probe.
func WithRequester(r Requester) Option {
	return func(c *Checker) { c.requester = r }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

// New creates a Checker.
func New(opts ...Option) *Checker {
	c := &Checker{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	if c.requester == nil {
		c.requester = c.headRequest
	}
	return c
}

// Check probes a URL. Success is an HTTP status in [200,400).
func (c *Checker) Check(url string) validate.LinkResult {
	status, err := c.requester(url)
	if err != nil {
		return validate.LinkResult{URL: url, Reachable: false, Error: err.Error()}
	}
	return validate.LinkResult{
		URL:        url,
		Reachable:  status >= 200 && status < 400,
		StatusCode: status,
	}
}

func (c *Checker) headRequest(url string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}
