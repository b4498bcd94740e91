// Package match reconciles in-text citations against reference entries.
package match

import (
	"sort"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// Result holds the outcome of matching citations to references.
type Result struct {
	// Matched maps each cited key to the entry that satisfies it.
	Matched map[string]*reference.Entry
	// Issues carries missing-reference and uncited-reference findings.
	Issues []reference.ValidationIssue
}

// Match builds a key map over the references (last write wins on key
// collisions; duplicates are flagged separately by validation) and
// resolves every citation against it.
//
// missing-reference issues carry the citation's raw text as context;
// uncited-reference issues carry the bare reference key. The asymmetry
// is deliberate: no single raw line answers "which reference" when an
// entry is never cited.
func Match(citations []reference.Citation, references []*reference.Entry) Result {
	byKey := make(map[string]*reference.Entry, len(references))
	for _, ref := range references {
		byKey[ref.FormattedKey()] = ref
	}

	result := Result{Matched: make(map[string]*reference.Entry)}

	for _, citation := range citations {
		if ref, ok := byKey[citation.NormalizedKey]; ok {
			result.Matched[citation.NormalizedKey] = ref
			continue
		}
		result.Issues = append(result.Issues, reference.Error(
			"missing-reference",
			"No reference entry for citation "+citation.RawText,
			citation.RawText,
		))
	}

	cited := make(map[string]bool, len(citations))
	for _, citation := range citations {
		cited[citation.NormalizedKey] = true
	}

	var orphans []string
	seen := make(map[string]bool)
	for _, ref := range references {
		key := ref.FormattedKey()
		if !cited[key] && !seen[key] {
			seen[key] = true
			orphans = append(orphans, key)
		}
	}
	sort.Strings(orphans)
	for _, key := range orphans {
		result.Issues = append(result.Issues, reference.Warning(
			"uncited-reference",
			"Reference not cited in text",
			key,
		))
	}

	return result
}
