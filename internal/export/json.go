package export

import (
	"encoding/json"

	"github.com/manuscript-tools/refcheck/internal/reference"
)

// ToJSON converts entries to indented JSON.
func ToJSON(entries []*reference.Entry) (string, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
