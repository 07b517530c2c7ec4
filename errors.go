package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/styles"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown   = errors.New("markdown content cannot be empty")
	ErrEmptyOutput     = errors.New("output path cannot be empty")
	ErrNoTemplate      = errors.New("no template configured")
	ErrWriteDocument   = errors.New("writing document failed")
	ErrNoMarkdownFiles = errors.New("no markdown files found")

	// Template errors surface from the style catalog so callers can match
	// them with errors.Is without importing internal packages.
	ErrTemplateNotFound = styles.ErrTemplateNotFound
	ErrTemplateCorrupt  = styles.ErrTemplateCorrupt
)
