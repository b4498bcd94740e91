package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExportResponse is the response for the export command.
type ExportResponse struct {
	Format     string `json:"format"`
	References int    `json:"references"`
	Skipped    int    `json:"skipped,omitempty"`
	Output     string `json:"output,omitempty"` // Destination path, when not stdout
}

// RegistryInfoResponse summarizes a loaded predatory registry.
type RegistryInfoResponse struct {
	Records int            `json:"records"`
	ByType  map[string]int `json:"by_type"`
	Sources []string       `json:"sources,omitempty"`
}

// LookupResponse is the response for registry lookup.
type LookupResponse struct {
	Query   string        `json:"query"`
	Status  string        `json:"status"`
	Matches []LookupMatch `json:"matches"`
}

// LookupMatch is one registry hit for a lookup query.
type LookupMatch struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Basis          string `json:"basis"`
	MatchedValue   string `json:"matched_value"`
	RiskLevel      string `json:"risk_level,omitempty"`
	NorwegianLevel string `json:"norwegian_level,omitempty"`
}

// FormatResponse is the response for the fmt command.
type FormatResponse struct {
	Style      string   `json:"style"`
	References []string `json:"references"`
}

// printIssuesHuman prints validation issues grouped under a header.
func printIssuesHuman(issues []reference.ValidationIssue) {
	for _, issue := range issues {
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		if issue.Context != "" {
			fmt.Printf("      in: %s\n", truncateString(issue.Context, 70))
		}
	}
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
