package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// defaultTemplateDir is searched when neither flag nor config names a
// template.
const defaultTemplateDir = "templates"

// Sentinel errors for CLI operations.
var (
	errNoInput       = errors.New("no input specified (use -i)")
	errBatchFailures = errors.New("some files failed to convert")
)

// settings is the merged flag + config view the run uses.
type settings struct {
	input      string
	output     string
	template   string
	workers    int
	resolution string
	highlight  string
	quiet      bool
	verbose    bool
}

// mergeSettings layers flags over the loaded config. Flags win wherever
// both supply a value.
func mergeSettings(flags *cliFlags, cfg *config.Config) settings {
	s := settings{
		input:      flags.input,
		output:     flags.output,
		template:   flags.template,
		workers:    flags.workers,
		resolution: flags.resolution,
		highlight:  flags.highlight,
		quiet:      flags.quiet,
		verbose:    flags.verbose,
	}
	if s.input == "" {
		s.input = cfg.Input.DefaultDir
	}
	if s.output == "" {
		s.output = cfg.Output.DefaultDir
	}
	if s.template == "" {
		s.template = cfg.Template.Path
	}
	if s.workers == 0 {
		s.workers = cfg.Workers
	}
	if s.resolution == "" {
		s.resolution = cfg.Styles.Resolution
	}
	if s.highlight == "" {
		s.highlight = cfg.Styles.Highlight
	}
	return s
}

// run executes one CLI invocation end to end.
func run(flags *cliFlags, stdout, stderr io.Writer) error {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	s := mergeSettings(flags, cfg)
	if s.input == "" {
		return errNoInput
	}
	if s.template == "" {
		s.template = fileutil.FindTemplate(defaultTemplateDir)
	}

	log := newLogger(stderr, s.quiet, s.verbose)

	opts := []md2docx.Option{
		md2docx.WithTemplate(s.template),
		md2docx.WithLogger(log),
		md2docx.WithHighlightStyle(s.highlight),
	}
	if s.resolution != "" {
		opts = append(opts, md2docx.WithStyleResolution(md2docx.StyleResolution(s.resolution)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if fileutil.IsDir(s.input) {
		return runBatch(ctx, s, opts, stdout)
	}
	return runSingle(ctx, s, opts, stdout)
}

// newLogger builds the CLI logger: errors only under --quiet, debug under
// --verbose, info otherwise.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runSingle converts one file.
func runSingle(ctx context.Context, s settings, opts []md2docx.Option, stdout io.Writer) error {
	conv, err := md2docx.New(opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := conv.ConvertFile(ctx, s.input, s.output)
	if err != nil {
		return err
	}

	if !s.quiet {
		fmt.Fprintf(stdout, "Created %s (%s)\n", res.OutputPath, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

// runBatch converts every markdown file in the input directory on a worker
// pool. Per-file failures are reported and aggregated; they never abort the
// remaining files.
func runBatch(ctx context.Context, s settings, opts []md2docx.Option, stdout io.Writer) error {
	files, err := md2docx.DiscoverMarkdownFiles(s.input)
	if err != nil {
		return err
	}

	outputDir := s.output
	if outputDir == "" {
		outputDir = s.input
	}
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	poolSize := md2docx.ResolvePoolSize(s.workers)
	if poolSize > len(files) {
		poolSize = len(files)
	}
	pool := md2docx.NewConverterPool(poolSize, opts...)

	results := make([]md2docx.FileResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < poolSize; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = md2docx.FileResult{InputPath: files[idx], Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = md2docx.FileResult{InputPath: files[idx], Err: ctx.Err()}
					continue
				}
				out := filepath.Join(outputDir, docxName(files[idx]))
				res, err := conv.ConvertFile(ctx, files[idx], out)
				fr := md2docx.FileResult{InputPath: files[idx], Err: err}
				if res != nil {
					fr.OutputPath = res.OutputPath
				}
				results[idx] = fr
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	batch := &md2docx.BatchResult{Files: results}
	printBatch(stdout, batch, s.quiet)

	if batch.Status() != md2docx.AllSucceeded {
		return fmt.Errorf("%w: %d of %d", errBatchFailures, len(batch.Failed()), len(batch.Files))
	}
	return nil
}

// printBatch writes per-file outcomes and the aggregate line.
func printBatch(w io.Writer, batch *md2docx.BatchResult, quiet bool) {
	for _, f := range batch.Files {
		if f.Err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", f.InputPath, f.Err)
			continue
		}
		if !quiet {
			fmt.Fprintf(w, "ok   %s -> %s\n", f.InputPath, f.OutputPath)
		}
	}
	if !quiet {
		fmt.Fprintf(w, "%d files, %s\n", len(batch.Files), batch.Status())
	}
}

// docxName maps a source path to its output file name.
func docxName(inputPath string) string {
	base := filepath.Base(inputPath)
	return base[:len(base)-len(filepath.Ext(base))] + ".docx"
}
