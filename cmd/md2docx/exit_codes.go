package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

// Exit codes for the md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom
// codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error, or a partially failed batch
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitTemplate = 4 // Template missing or corrupt
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Template errors (exit 4)
	if errors.Is(err, md2docx.ErrTemplateNotFound) ||
		errors.Is(err, md2docx.ErrTemplateCorrupt) {
		return ExitTemplate
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2docx.ErrNoMarkdownFiles) ||
		errors.Is(err, md2docx.ErrWriteDocument) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, md2docx.ErrEmptyMarkdown) ||
		errors.Is(err, md2docx.ErrEmptyOutput) ||
		errors.Is(err, md2docx.ErrNoTemplate) ||
		errors.Is(err, errNoInput) {
		return ExitUsage
	}

	return ExitGeneral
}
