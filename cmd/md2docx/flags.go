package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	input      string
	output     string
	template   string
	config     string
	workers    int
	resolution string
	highlight  string
	quiet      bool
	verbose    bool
}

// parseFlags parses the command line. It rejects positional arguments;
// input comes through -i.
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("md2docx", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.input, "input", "i", "", "input markdown file or directory (required)")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.template, "template", "t", "", "Word template supplying styles")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directory input (0 = auto)")
	fs.StringVar(&f.resolution, "style-resolution", "", "heading/list style mapping: shifted, direct")
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for code blocks (empty = monochrome)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-file detail")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q (use -i for input)", fs.Arg(0))
	}
	return f, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `md2docx converts Markdown to Word documents using a template's styles.

Usage:
  md2docx -i <input.md|dir> [-o <output.docx|dir>] [-t <template.docx>]

Flags:
%s
A config file (-c) supplies defaults; flags override it. Without -t, the
first .docx under ./templates/ is used.
`, fs.FlagUsages())
}
