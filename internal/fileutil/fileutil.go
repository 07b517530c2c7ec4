// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir returns true if the path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o750)
}

// IsFilePath returns true if the string looks like a file path rather than
// a bare name. A string containing path separators (/, \) is treated as a
// path.
//
// Examples:
//   - "report" -> false (name)
//   - "./custom.docx" -> true (relative path)
//   - "../shared/report.docx" -> true (parent path)
//   - "/absolute/report.docx" -> true (absolute)
//   - "C:\templates\report.docx" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// FindTemplate looks for a default Word template when none is configured:
// the first .docx file, by name, inside dir. Returns "" when the directory
// is missing or holds none.
func FindTemplate(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".docx") {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.Strings(candidates)
	return filepath.Join(dir, candidates[0])
}
