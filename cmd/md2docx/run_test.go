package main

import (
	"bytes"
	"errors"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
)

func TestMergeSettings_FlagsWin(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Input:    config.InputConfig{DefaultDir: "cfg-in"},
		Output:   config.OutputConfig{DefaultDir: "cfg-out"},
		Template: config.TemplateConfig{Path: "cfg.docx"},
		Styles:   config.StylesConfig{Resolution: "direct", Highlight: "monokai"},
		Workers:  2,
	}
	flags := &cliFlags{
		input:      "flag-in",
		template:   "flag.docx",
		workers:    5,
		resolution: "shifted",
	}

	s := mergeSettings(flags, cfg)

	if s.input != "flag-in" {
		t.Errorf("input = %q, flag should win", s.input)
	}
	if s.output != "cfg-out" {
		t.Errorf("output = %q, config should fill the gap", s.output)
	}
	if s.template != "flag.docx" {
		t.Errorf("template = %q, flag should win", s.template)
	}
	if s.workers != 5 {
		t.Errorf("workers = %d, flag should win", s.workers)
	}
	if s.resolution != "shifted" {
		t.Errorf("resolution = %q, flag should win", s.resolution)
	}
	if s.highlight != "monokai" {
		t.Errorf("highlight = %q, config should fill the gap", s.highlight)
	}
}

func TestRun_NoInput(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	err := run(&cliFlags{}, &out, &errOut)
	if !errors.Is(err, errNoInput) {
		t.Errorf("err = %v, want errNoInput", err)
	}
}

func TestDocxName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"notes.md", "notes.docx"},
		{"/a/b/report.md", "report.docx"},
		{"README.MD", "README.docx"},
	}
	for _, tt := range tests {
		if got := docxName(tt.input); got != tt.want {
			t.Errorf("docxName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPrintBatch(t *testing.T) {
	t.Parallel()

	batch := &md2docx.BatchResult{Files: []md2docx.FileResult{
		{InputPath: "a.md", OutputPath: "a.docx"},
		{InputPath: "b.md", Err: errors.New("boom")},
	}}

	var buf bytes.Buffer
	printBatch(&buf, batch, false)
	got := buf.String()

	for _, want := range []string{"ok   a.md -> a.docx", "FAIL b.md: boom", "2 files, partial"} {
		if !bytes.Contains([]byte(got), []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	buf.Reset()
	printBatch(&buf, batch, true)
	if bytes.Contains(buf.Bytes(), []byte("ok   ")) {
		t.Error("quiet output should suppress successes")
	}
	if !bytes.Contains(buf.Bytes(), []byte("FAIL b.md")) {
		t.Error("quiet output must keep failures")
	}
}
