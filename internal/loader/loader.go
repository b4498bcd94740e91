// Package loader reads manuscript files into plain text. The rest of
// the pipeline only ever sees the returned string.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat marks file types the loader cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// SupportedExtensions lists the file extensions Load accepts.
var SupportedExtensions = []string{".txt", ".md", ".markdown", ".html", ".htm", ".pdf", ".docx"}

// Load reads a manuscript file and returns its plain-text content. The
// format is chosen by extension. Unreadable input is fatal to the
// request: the error is returned and nothing is partially processed.
func Load(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	case ".md", ".markdown":
		return loadMarkdown(path)
	case ".html", ".htm":
		return loadHTML(path)
	case ".pdf":
		return loadPDF(path)
	case ".docx":
		return loadDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Supported reports whether the loader handles the file's extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
