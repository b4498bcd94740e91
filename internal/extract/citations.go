// Package extract finds in-text citation markers and splits manuscripts
// into body and reference sections.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

var (
	// Bracketed numeric groups like [3] or [1, 2-5]. Hyphen and en-dash
	// both delimit ranges.
	numericPattern = regexp.MustCompile(`\[(\d[\d,\s\-–]*)\]`)

	// Author-year parentheticals like (Doe, 2020) or (Doe et al., 2020).
	authorYearPattern = regexp.MustCompile(`\(([A-Z][A-Za-z\-]+),?(?:\s+et al\.)?,?\s*((?:19|20)\d{2})\)`)

	rangePattern = regexp.MustCompile(`^(\d+)\s*[-–]\s*(\d+)$`)
)

// Citations extracts all citation markers from body text, ordered by
// position ascending with discovery order as the tiebreak. Text with no
// well-formed markers yields an empty result, never an error.
func Citations(text string) []reference.Citation {
	var citations []reference.Citation

	for _, loc := range numericPattern.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		group := text[loc[2]:loc[3]]
		for _, label := range expandNumericGroup(group) {
			citations = append(citations, reference.Citation{
				RawText:       raw,
				Position:      loc[0],
				NormalizedKey: label,
			})
		}
	}

	for _, loc := range authorYearPattern.FindAllStringSubmatchIndex(text, -1) {
		surname := text[loc[2]:loc[3]]
		year := text[loc[4]:loc[5]]
		citations = append(citations, reference.Citation{
			RawText:       text[loc[0]:loc[1]],
			Position:      loc[0],
			NormalizedKey: strings.ToLower(surname) + year,
		})
	}

	sort.SliceStable(citations, func(i, j int) bool {
		return citations[i].Position < citations[j].Position
	})
	return citations
}

// expandNumericGroup splits a bracket group into individual labels,
// expanding ranges: "1, 2-4" -> 1, 2, 3, 4.
func expandNumericGroup(group string) []string {
	var labels []string
	for _, token := range strings.Split(group, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if m := rangePattern.FindStringSubmatch(token); m != nil {
			lo, err1 := strconv.Atoi(m[1])
			hi, err2 := strconv.Atoi(m[2])
			if err1 == nil && err2 == nil && lo <= hi {
				for n := lo; n <= hi; n++ {
					labels = append(labels, strconv.Itoa(n))
				}
				continue
			}
		}
		if n, err := strconv.Atoi(token); err == nil {
			labels = append(labels, strconv.Itoa(n))
		}
	}
	return labels
}

// Keys returns the normalized keys of a citation list, in order.
func Keys(citations []reference.Citation) []string {
	keys := make([]string, len(citations))
	for i, c := range citations {
		keys[i] = c.NormalizedKey
	}
	return keys
}
