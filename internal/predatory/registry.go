// Package predatory screens references against flat-file registries of
// predatory journals and publishers.
package predatory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manuscript-tools/refcheck/internal/normalize"
)

// Record is one registry row. Records are immutable after loading.
type Record struct {
	Name           string            `json:"name"`
	EntryType      string            `json:"entry_type"` // journal, publisher, or unknown
	URL            string            `json:"url,omitempty"`
	URLDomain      string            `json:"url_domain,omitempty"`
	URLRoot        string            `json:"url_root,omitempty"`
	RiskLevel      string            `json:"risk_level,omitempty"`
	NorwegianLevel string            `json:"norwegian_level,omitempty"`
	WarningSummary string            `json:"warning_summary,omitempty"`
	ManualLinks    map[string]string `json:"manual_links,omitempty"`
	EntryID        string            `json:"entry_id,omitempty"`
}

// Registry holds the loaded records plus name and domain indexes.
// It is read-only after loading and safe to share.
type Registry struct {
	Records []*Record

	nameIndex   map[string][]*Record
	domainIndex map[string][]*Record
}

// LoadCSV loads one or more registry CSV files. Files that do not exist
// are skipped. Records are deduplicated by entry_id, falling back to a
// composite of type, normalized name, and domain.
func LoadCSV(paths ...string) (*Registry, error) {
	reg := &Registry{
		nameIndex:   make(map[string][]*Record),
		domainIndex: make(map[string][]*Record),
	}
	seen := make(map[string]bool)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("opening registry %s: %w", path, err)
		}
		err = reg.load(f, seen)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading registry %s: %w", path, err)
		}
	}
	return reg, nil
}

// Load reads registry rows from a single CSV stream with a header row.
func Load(r io.Reader) (*Registry, error) {
	reg := &Registry{
		nameIndex:   make(map[string][]*Record),
		domainIndex: make(map[string][]*Record),
	}
	if err := reg.load(r, make(map[string]bool)); err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *Registry) load(src io.Reader, seen map[string]bool) error {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		record := recordFromRow(row)
		key := record.EntryID
		if key == "" {
			key = fallbackKey(record)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		r.Records = append(r.Records, record)
		r.index(record, row)
	}
}

func recordFromRow(row map[string]string) *Record {
	manual := make(map[string]string)
	for key, value := range row {
		if strings.HasPrefix(key, "manual_check_") && value != "" {
			manual[key] = value
		}
	}
	entryType := strings.ToLower(strings.TrimSpace(row["type"]))
	if entryType == "" {
		entryType = "unknown"
	}
	risk := strings.TrimSpace(row["risk_level"])
	if risk == "" {
		risk = strings.TrimSpace(row["risk"])
	}
	return &Record{
		Name:           strings.TrimSpace(row["name"]),
		EntryType:      entryType,
		URL:            strings.TrimSpace(row["url"]),
		URLDomain:      strings.TrimSpace(row["url_domain"]),
		URLRoot:        strings.TrimSpace(row["url_root"]),
		RiskLevel:      risk,
		NorwegianLevel: strings.TrimSpace(row["norwegian_level"]),
		WarningSummary: strings.TrimSpace(row["warning_summary"]),
		ManualLinks:    manual,
		EntryID:        strings.TrimSpace(row["entry_id"]),
	}
}

func fallbackKey(record *Record) string {
	domain := record.URLDomain
	if domain == "" {
		domain = record.URLRoot
	}
	return record.EntryType + ":" + normalize.Text(record.Name) + ":" + domain
}

// index adds a record under every lookup column it carries: normalized
// names and abbreviations into the name index, extracted domains into
// the domain index.
// Columns often carry the same value pre- and post-normalization, so
// each record lands at most once per key.
func (r *Registry) index(record *Record, row map[string]string) {
	names := make(map[string]bool)
	for _, column := range []string{"name_norm", "name", "abbr_norm", "abbr"} {
		if key := normalize.Text(row[column]); key != "" && !names[key] {
			names[key] = true
			r.nameIndex[key] = append(r.nameIndex[key], record)
		}
	}
	domains := make(map[string]bool)
	for _, column := range []string{"url_domain", "url_root", "url"} {
		if domain := normalize.Domain(row[column]); domain != "" && !domains[domain] {
			domains[domain] = true
			r.domainIndex[domain] = append(r.domainIndex[domain], record)
		}
	}
}

// defaultFileNames lists registry files in preference order; the first
// one found wins.
var defaultFileNames = []string{
	"predatory_registry.csv",
	"predatory_db_v7_with_norwegian_levels.csv",
	"predatory_db_v6_manual_check_links.csv",
	"predatory_db_v5_norwegian_levels.csv",
}

// LoadDefault looks for a registry file under baseDir and its data/
// subdirectory. Loading is fail-soft: a missing registry returns nil,
// which callers must treat as "registry unavailable", distinct from a
// loaded registry that simply matches nothing.
func LoadDefault(baseDir string) *Registry {
	roots := []string{baseDir, filepath.Join(baseDir, "data")}
	for _, name := range defaultFileNames {
		for _, root := range roots {
			path := filepath.Join(root, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			reg, err := LoadCSV(path)
			if err != nil {
				continue
			}
			return reg
		}
	}
	return nil
}
