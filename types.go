package md2docx

import (
	"log/slog"

	"github.com/alnah/go-md2docx/internal/styles"
)

// StyleResolution selects how Markdown structure maps onto template style
// names.
type StyleResolution string

const (
	// ResolutionShifted maps H1 to the template's "Heading 0" style and
	// Hn to "Heading n-1". The default; matches templates that reserve a
	// distinguished top-level title style.
	ResolutionShifted = StyleResolution(styles.ResolutionShifted)

	// ResolutionDirect maps Hn to "Heading n" and lists to the built-in
	// "List Bullet"/"List Number" style families.
	ResolutionDirect = StyleResolution(styles.ResolutionDirect)
)

// Input contains conversion parameters for a single document.
type Input struct {
	Markdown   string // Markdown content (required)
	OutputPath string // where to write the .docx (required)
}

// ConvertResult reports a completed single-document conversion.
type ConvertResult struct {
	OutputPath string
	Blocks     int // block spans rendered into the document
}

// FileResult records the outcome for one file of a batch.
type FileResult struct {
	InputPath  string
	OutputPath string
	Err        error // nil on success
}

// BatchStatus aggregates a batch outcome.
type BatchStatus int

const (
	AllSucceeded BatchStatus = iota
	Partial
	AllFailed
)

func (s BatchStatus) String() string {
	switch s {
	case AllSucceeded:
		return "all succeeded"
	case Partial:
		return "partial"
	case AllFailed:
		return "all failed"
	default:
		return "unknown"
	}
}

// BatchResult collects per-file outcomes of a directory conversion.
// Failures in one file never abort siblings; each file's outcome is
// recorded independently.
type BatchResult struct {
	Files []FileResult
}

// Status reports whether the batch succeeded fully, partially, or not at
// all. An empty batch counts as all succeeded.
func (b *BatchResult) Status() BatchStatus {
	failed := 0
	for _, f := range b.Files {
		if f.Err != nil {
			failed++
		}
	}
	switch {
	case failed == 0:
		return AllSucceeded
	case failed == len(b.Files):
		return AllFailed
	default:
		return Partial
	}
}

// Failed returns the results that carry an error.
func (b *BatchResult) Failed() []FileResult {
	var out []FileResult
	for _, f := range b.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// ProgressFunc receives progress updates during conversion: a percentage
// and a human-readable status line. Invoked at least at the start and the
// completion of each file.
type ProgressFunc func(percent int, status string)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	template   string
	resolution styles.Resolution
	highlight  string
	progress   ProgressFunc
}

// WithTemplate sets the Word template whose styles drive rendering.
// Required before calling Convert.
func WithTemplate(path string) Option {
	return func(c *Converter) {
		c.cfg.template = path
	}
}

// WithLogger sets the logger for style-fallback warnings and batch
// progress. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithStyleResolution selects the heading/list style mapping strategy.
func WithStyleResolution(r StyleResolution) Option {
	return func(c *Converter) {
		c.cfg.resolution = styles.Resolution(r)
	}
}

// WithHighlightStyle enables syntax colorization of fenced code blocks
// using the named chroma style (e.g. "github", "monokai"). Code renders
// monochrome when unset.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlight = name
	}
}

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Converter) {
		c.cfg.progress = fn
	}
}
