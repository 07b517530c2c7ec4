package md2docx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/styles"
)

// Converter orchestrates the markdown-to-docx conversion pipeline.
// Create with New(); a Converter is safe for sequential reuse across files.
// The template is re-opened per conversion, so each output document starts
// from a pristine copy of the template package.
type Converter struct {
	cfg converterConfig
	log *slog.Logger
}

// New creates a Converter. WithTemplate is required before Convert is
// called; the other options customize behavior.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{resolution: styles.ResolutionShifted},
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if !c.cfg.resolution.Valid() {
		return nil, fmt.Errorf("unknown style resolution %q", c.cfg.resolution)
	}

	return c, nil
}

// Convert renders one Markdown document into a styled copy of the template
// and writes it to input.OutputPath. Recovers from internal panics so
// malformed input degrades to an error instead of crashing the caller.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}
	if input.OutputPath == "" {
		return nil, ErrEmptyOutput
	}
	if c.cfg.template == "" {
		return nil, ErrNoTemplate
	}

	c.progress(0, "converting to "+input.OutputPath)

	catalog, err := styles.Load(c.cfg.template, c.log)
	if err != nil {
		return nil, err
	}

	htmlDoc, err := pipeline.ParseMarkdownHTML(ctx, input.Markdown)
	if err != nil {
		return nil, err
	}

	lines := pipeline.SplitLines(input.Markdown)
	spans := pipeline.SegmentBlocks(lines)

	asm := newAssembler(catalog, htmlDoc, c.cfg.resolution, c.cfg.highlight, c.log)
	asm.clearTemplateBody()
	asm.assemble(spans)

	if err := catalog.Document().SaveToFile(input.OutputPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWriteDocument, input.OutputPath, err)
	}

	c.progress(100, "wrote "+input.OutputPath)

	return &ConvertResult{OutputPath: input.OutputPath, Blocks: asm.blocks}, nil
}

// ConvertFile reads a Markdown file and converts it. When outputPath is
// empty or names a directory, the output file is derived as
// <input-basename>.docx; parent directories are created as needed.
func (c *Converter) ConvertFile(ctx context.Context, inputPath, outputPath string) (*ConvertResult, error) {
	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", inputPath, err)
	}

	outputPath = deriveOutputPath(inputPath, outputPath)
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := fileutil.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	return c.Convert(ctx, Input{Markdown: string(content), OutputPath: outputPath})
}

// ConvertDir converts every .md file in inputDir (non-recursive) into
// outputDir. A failing file is recorded in the result and never aborts its
// siblings; cancellation is honored between files.
func (c *Converter) ConvertDir(ctx context.Context, inputDir, outputDir string) (*BatchResult, error) {
	files, err := DiscoverMarkdownFiles(inputDir)
	if err != nil {
		return nil, err
	}

	batch := &BatchResult{}
	for _, in := range files {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		out := filepath.Join(outputDir, docxName(in))
		res, err := c.ConvertFile(ctx, in, out)
		fr := FileResult{InputPath: in, Err: err}
		if res != nil {
			fr.OutputPath = res.OutputPath
		}
		if err != nil {
			c.log.Error("conversion failed", "input", in, "error", err)
		} else {
			c.log.Info("converted", "input", in, "output", fr.OutputPath)
		}
		batch.Files = append(batch.Files, fr)
	}

	return batch, nil
}

// DiscoverMarkdownFiles lists the .md files directly inside dir, sorted by
// name. Subdirectories are not descended into.
func DiscoverMarkdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMarkdownFiles, dir)
	}

	sort.Strings(files)
	return files, nil
}

func (c *Converter) progress(percent int, status string) {
	if c.cfg.progress != nil {
		c.cfg.progress(percent, status)
	}
}

// deriveOutputPath resolves the effective output file for an input file.
func deriveOutputPath(inputPath, outputPath string) string {
	switch {
	case outputPath == "":
		return filepath.Join(filepath.Dir(inputPath), docxName(inputPath))
	case fileutil.IsDir(outputPath):
		return filepath.Join(outputPath, docxName(inputPath))
	default:
		return outputPath
	}
}

// docxName maps a source file name to its .docx sibling name.
func docxName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".docx"
}
