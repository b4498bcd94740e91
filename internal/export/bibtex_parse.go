package export

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/validate"
)

// BibTeXIndex indexes existing BibTeX entries so exports can skip
// references already present in a bibliography file.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps normalized DOI values to citation keys
	DOIs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// HasEntry returns true if the entry already exists. DOI is the primary
// match; the citation key is the fallback if no DOI.
func (idx *BibTeXIndex) HasEntry(key, doi string) bool {
	if doi != "" {
		if _, exists := idx.DOIs[validate.NormalizeDOI(doi)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

var (
	// Entry start: @type{key,
	bibEntryStart = regexp.MustCompile(`@\w+\{([^,]+),`)
	// DOI field: doi = {value} or doi = "value"
	bibDOIField = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// ParseBibTeXFile builds an index from an existing .bib file. A file
// that doesn't exist yields an empty index, not an error.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if matches := bibEntryStart.FindStringSubmatch(line); len(matches) > 1 {
			currentKey = strings.TrimSpace(matches[1])
			idx.Keys[currentKey] = true
		}

		if matches := bibDOIField.FindStringSubmatch(line); len(matches) > 1 {
			doi := validate.NormalizeDOI(matches[1])
			if doi != "" && currentKey != "" {
				idx.DOIs[doi] = currentKey
			}
		}
	}
	return idx, scanner.Err()
}

// AppendToBibFile appends BibTeX content to a file, creating it if
// needed.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Start on a fresh line regardless of what the file ends with.
	_, err = file.WriteString("\n" + content)
	return err
}
