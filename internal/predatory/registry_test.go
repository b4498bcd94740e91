package predatory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const registryCSV = `entry_id,type,name,name_norm,abbr,url,url_domain,risk_level,norwegian_level,warning_summary,manual_check_homepage,manual_check_doaj
e1,journal,Journal of Advanced Science & Medicine,journal of advanced science and medicine,JASM,https://www.jasm-online.org/home,jasm-online.org,high,2,Listed on multiple watchlists,https://jasm-online.org,https://doaj.org/search
e2,publisher,OMICS Publishing Group,omics publishing group,,https://www.omicsonline.org,omicsonline.org,high,,,,
`

func writeRegistry(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ParsesRecords(t *testing.T) {
	reg, err := Load(strings.NewReader(registryCSV))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(reg.Records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(reg.Records))
	}

	r := reg.Records[0]
	if r.EntryType != "journal" {
		t.Errorf("EntryType = %q, want journal", r.EntryType)
	}
	if r.RiskLevel != "high" || r.NorwegianLevel != "2" {
		t.Errorf("risk/norwegian = %q/%q", r.RiskLevel, r.NorwegianLevel)
	}
	if r.ManualLinks["manual_check_homepage"] != "https://jasm-online.org" {
		t.Errorf("ManualLinks = %v", r.ManualLinks)
	}
	// Empty manual-check cells are not stored.
	if _, ok := reg.Records[1].ManualLinks["manual_check_homepage"]; ok {
		t.Error("empty manual_check cell should not be stored")
	}
}

func TestLoadCSV_MissingFileSkipped(t *testing.T) {
	path := writeRegistry(t, "reg.csv", registryCSV)
	reg, err := LoadCSV(path, filepath.Join(t.TempDir(), "nope.csv"))
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	if len(reg.Records) != 2 {
		t.Errorf("loaded %d records, want 2", len(reg.Records))
	}
}

func TestLoadCSV_DeduplicatesByEntryID(t *testing.T) {
	a := writeRegistry(t, "a.csv", registryCSV)
	b := writeRegistry(t, "b.csv", registryCSV)
	reg, err := LoadCSV(a, b)
	if err != nil {
		t.Fatalf("LoadCSV() error: %v", err)
	}
	if len(reg.Records) != 2 {
		t.Errorf("loaded %d records across duplicate files, want 2", len(reg.Records))
	}
}

func TestLoad_DefaultsForMissingColumns(t *testing.T) {
	reg, err := Load(strings.NewReader("name,url\nShady Journal,shady.example\n"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reg.Records[0].EntryType != "unknown" {
		t.Errorf("EntryType = %q, want unknown", reg.Records[0].EntryType)
	}
}

func TestLoad_EmptyStream(t *testing.T) {
	reg, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(reg.Records) != 0 {
		t.Errorf("loaded %d records from empty stream", len(reg.Records))
	}
}

func TestLoadDefault_MissingReturnsNil(t *testing.T) {
	if reg := LoadDefault(t.TempDir()); reg != nil {
		t.Errorf("LoadDefault() = %v, want nil", reg)
	}
}

func TestLoadDefault_FindsDataSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "data", "predatory_registry.csv")
	if err := os.WriteFile(path, []byte(registryCSV), 0644); err != nil {
		t.Fatal(err)
	}
	reg := LoadDefault(dir)
	if reg == nil {
		t.Fatal("LoadDefault() = nil, want loaded registry")
	}
	if len(reg.Records) != 2 {
		t.Errorf("loaded %d records, want 2", len(reg.Records))
	}
}
