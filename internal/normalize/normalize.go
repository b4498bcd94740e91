// Package normalize provides text and domain normalization used for
// fuzzy matching against registry data.
package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	punctPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Text normalizes a string for registry matching: Unicode decompose,
// strip combining marks, "&" becomes " and ", lowercase, punctuation
// becomes space, whitespace collapsed.
func Text(value string) string {
	if value == "" {
		return ""
	}
	decomposed := norm.NFKD.String(value)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	text := strings.ToLower(strings.ReplaceAll(b.String(), "&", " and "))
	text = punctPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// Domain extracts a normalized domain from a URL or bare hostname.
// Returns "" when no domain can be extracted.
func Domain(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	domain := parsed.Host
	if domain == "" {
		domain = parsed.Path
	}
	domain, _, _ = strings.Cut(domain, "/")
	domain = strings.ToLower(domain)
	domain = strings.TrimPrefix(domain, "www.")
	return domain
}

// DomainCandidates returns the domain and its parent suffixes down to
// the registrable domain, e.g. "a.b.com" -> ["a.b.com", "b.com"]. A
// subdomain can therefore still match a parent-domain registry entry.
func DomainCandidates(domain string) []string {
	if domain == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(domain, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) < 2 {
		return []string{domain}
	}
	candidates := make([]string, 0, len(parts)-1)
	for i := 0; i < len(parts)-1; i++ {
		candidates = append(candidates, strings.Join(parts[i:], "."))
	}
	return candidates
}
