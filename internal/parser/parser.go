// Package parser turns a bibliography text block into structured
// reference entries.
//
// Lines are the atomic parsing unit: one non-blank line yields exactly
// one entry, and multi-line entries are not joined. Bibliography text is
// not a fixed grammar, so every field is extracted by an independent
// heuristic; a line that matches none of them still produces an entry
// with only its raw text set. Missing data is reported by the validation
// engine, never by this package.
package parser

import (
	"regexp"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

var (
	indexPattern      = regexp.MustCompile(`^\[?(\d+)\]?\.?\s*`)
	yearPattern       = regexp.MustCompile(`(19|20)\d{2}`)
	doiPattern        = regexp.MustCompile(`10\.\d{4,9}/\S+`)
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	volIssuePattern   = regexp.MustCompile(`(\d+)\s*\((\d+)\)`)
	volKeywordPattern = regexp.MustCompile(`(?i)vol\.\s*(\d+)`)
	issKeywordPattern = regexp.MustCompile(`(?i)no\.\s*(\d+)`)
	pagesPrefixed     = regexp.MustCompile(`(?i)pp\.\s*(\d+\s*[-–—]\s*\d+)`)
	pagesBare         = regexp.MustCompile(`(\d+)\s*[-–—]\s*(\d+)`)
	publisherPattern  = regexp.MustCompile(`([A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*\s+(?:Press|Publishing|Publishers?))`)
	conferencePattern = regexp.MustCompile(`(?i)(proceedings of|conference on|conference|symposium|workshop)`)
	initialPattern    = regexp.MustCompile(`^[A-Za-z]{1,2}\.$`)
)

// preprintServers maps lowercase markers to canonical server names.
var preprintServers = []struct{ marker, name string }{
	{"arxiv", "arXiv"},
	{"biorxiv", "bioRxiv"},
	{"medrxiv", "medRxiv"},
	{"ssrn", "SSRN"},
	{"research square", "Research Square"},
}

// Parse splits bibliography text into entries, one per non-blank line.
// No line is ever dropped.
func Parse(text string) []*reference.Entry {
	var entries []*reference.Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entries = append(entries, ParseLine(line))
	}
	return entries
}

// ParseLine parses a single bibliography line.
func ParseLine(line string) *reference.Entry {
	label, content := splitIndex(line)

	entry := &reference.Entry{
		RawText:    line,
		IndexLabel: label,
		Authors:    extractAuthors(content),
		Title:      extractTitle(content),
		Year:       extractYear(content),
		Journal:    extractJournal(content),
		DOI:        extractDOI(content),
		URL:        extractURL(content),
		Publisher:  extractPublisher(content),
	}
	entry.Volume, entry.Issue = extractVolumeIssue(content)
	entry.Pages = extractPages(content)
	entry.ConferenceName = extractConference(content)
	entry.PreprintServer = extractPreprintServer(content)
	if entry.Title != "" && containsDatasetMarker(line) {
		entry.DatasetName = entry.Title
	}
	entry.EntryType = reference.Classify(entry)
	return entry
}

// splitIndex strips a leading "[1]." style marker, returning the bare
// digits and the remaining content.
func splitIndex(line string) (label, content string) {
	m := indexPattern.FindStringSubmatch(line)
	if m == nil {
		return "", line
	}
	return m[1], strings.TrimSpace(line[len(m[0]):])
}

// extractAuthors takes the segment before the first period and splits
// it on semicolons, falling back to commas.
func extractAuthors(content string) []string {
	if content == "" {
		return nil
	}
	authorPart, _, _ := strings.Cut(content, ".")
	parts := splitNonEmpty(authorPart, ";")
	if len(parts) == 0 {
		parts = splitNonEmpty(authorPart, ",")
	}
	for i, part := range parts {
		parts[i] = normalizeAuthor(part)
	}
	return parts
}

// normalizeAuthor rewrites a "Given Surname" token into "Surname,
// Given" form. The last word is the surname unless it looks like an
// initial, in which case the first word is. Tokens that already carry a
// comma or are a single word pass through unchanged.
func normalizeAuthor(token string) string {
	if strings.Contains(token, ",") {
		return token
	}
	words := strings.Fields(token)
	if len(words) < 2 {
		return token
	}
	last := words[len(words)-1]
	if len(last) <= 3 && strings.HasSuffix(last, ".") && initialPattern.MatchString(last) {
		return words[0] + ", " + strings.Join(words[1:], " ")
	}
	return last + ", " + strings.Join(words[:len(words)-1], " ")
}

func extractTitle(content string) string {
	segments := periodSegments(content)
	if len(segments) > 1 {
		return segments[1]
	}
	return ""
}

func extractYear(content string) string {
	return yearPattern.FindString(content)
}

// extractJournal picks the first segment beyond the title that is not a
// bare year and does not start with "available from". It requires at
// least three period-delimited segments, which knowingly skips valid
// two-segment entries; downstream completeness checks depend on that
// exact miss rate, so keep the threshold.
func extractJournal(content string) string {
	segments := periodSegments(content)
	if len(segments) < 3 {
		return ""
	}
	for _, segment := range segments[2:] {
		if yearPattern.FindString(segment) == segment {
			continue
		}
		if strings.HasPrefix(strings.ToLower(segment), "available from") {
			continue
		}
		return segment
	}
	return ""
}

func extractVolumeIssue(content string) (volume, issue string) {
	if m := volIssuePattern.FindStringSubmatch(content); m != nil {
		return m[1], m[2]
	}
	if m := volKeywordPattern.FindStringSubmatch(content); m != nil {
		volume = m[1]
	}
	if m := issKeywordPattern.FindStringSubmatch(content); m != nil {
		issue = m[1]
	}
	return volume, issue
}

func extractPages(content string) string {
	if m := pagesPrefixed.FindStringSubmatch(content); m != nil {
		return compactRange(m[1])
	}
	if m := pagesBare.FindStringSubmatch(content); m != nil {
		return m[1] + "-" + m[2]
	}
	return ""
}

func extractDOI(content string) string {
	return strings.TrimRight(doiPattern.FindString(content), ".,;")
}

func extractURL(content string) string {
	return strings.TrimRight(urlPattern.FindString(content), ".,;")
}

func extractPublisher(content string) string {
	if m := publisherPattern.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

// extractConference captures from the conference keyword to the end of
// the line.
func extractConference(content string) string {
	loc := conferencePattern.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	name := strings.TrimSpace(content[loc[0]:])
	return strings.TrimRight(name, ".")
}

func extractPreprintServer(content string) string {
	lower := strings.ToLower(content)
	for _, server := range preprintServers {
		if strings.Contains(lower, server.marker) {
			return server.name
		}
	}
	return ""
}

func containsDatasetMarker(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "dataset") || strings.Contains(lower, "data set")
}

// periodSegments splits on periods and drops empty segments.
func periodSegments(content string) []string {
	return splitNonEmpty(content, ".")
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// compactRange normalizes whitespace and dash variants inside a page
// range to "N-M".
func compactRange(s string) string {
	s = strings.NewReplacer("–", "-", "—", "-", " ", "", "\t", "").Replace(s)
	return s
}
