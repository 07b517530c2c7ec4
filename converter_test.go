package md2docx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c == nil {
		t.Fatal("New() returned nil converter")
	}
}

func TestNew_InvalidResolution(t *testing.T) {
	t.Parallel()

	_, err := New(WithStyleResolution("sideways"))
	if err == nil {
		t.Fatal("expected error for unknown style resolution")
	}
}

func TestNew_ValidResolutions(t *testing.T) {
	t.Parallel()

	for _, r := range []StyleResolution{ResolutionShifted, ResolutionDirect} {
		if _, err := New(WithStyleResolution(r)); err != nil {
			t.Errorf("New(WithStyleResolution(%q)) error: %v", r, err)
		}
	}
}

func TestConvert_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		input   Input
		wantErr error
	}{
		{
			name:    "empty markdown",
			opts:    []Option{WithTemplate("report.docx")},
			input:   Input{Markdown: "   \n\t", OutputPath: "out.docx"},
			wantErr: ErrEmptyMarkdown,
		},
		{
			name:    "empty output path",
			opts:    []Option{WithTemplate("report.docx")},
			input:   Input{Markdown: "# Title"},
			wantErr: ErrEmptyOutput,
		},
		{
			name:    "no template configured",
			input:   Input{Markdown: "# Title", OutputPath: "out.docx"},
			wantErr: ErrNoTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(tt.opts...)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			_, err = c.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvert_MissingTemplateFile(t *testing.T) {
	t.Parallel()

	c, err := New(WithTemplate(filepath.Join(t.TempDir(), "nope.docx")))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_, err = c.Convert(context.Background(), Input{Markdown: "# T", OutputPath: "out.docx"})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Convert() error = %v, want ErrTemplateNotFound", err)
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	t.Parallel()

	c, err := New(WithTemplate("report.docx"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	_, err = c.ConvertFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"), "")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ConvertFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestDeriveOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name       string
		inputPath  string
		outputPath string
		want       string
	}{
		{
			name:      "empty output derives sibling",
			inputPath: filepath.Join("docs", "notes.md"),
			want:      filepath.Join("docs", "notes.docx"),
		},
		{
			name:       "directory output joins basename",
			inputPath:  "notes.md",
			outputPath: dir,
			want:       filepath.Join(dir, "notes.docx"),
		},
		{
			name:       "explicit file path kept as-is",
			inputPath:  "notes.md",
			outputPath: filepath.Join(dir, "final.docx"),
			want:       filepath.Join(dir, "final.docx"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := deriveOutputPath(tt.inputPath, tt.outputPath); got != tt.want {
				t.Errorf("deriveOutputPath(%q, %q) = %q, want %q",
					tt.inputPath, tt.outputPath, got, tt.want)
			}
		})
	}
}

func TestDocxName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"notes.md", "notes.docx"},
		{"/tmp/a/report.md", "report.docx"},
		{"no-extension", "no-extension.docx"},
		{"dotted.name.md", "dotted.name.docx"},
	}
	for _, tt := range tests {
		if got := docxName(tt.input); got != tt.want {
			t.Errorf("docxName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDiscoverMarkdownFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", "c.MD", "skip.txt", "also-skip.docx"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.md"), 0o750); err != nil {
		t.Fatal(err)
	}

	files, err := DiscoverMarkdownFiles(dir)
	if err != nil {
		t.Fatalf("DiscoverMarkdownFiles() error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.MD"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(files), files, len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestDiscoverMarkdownFiles_Empty(t *testing.T) {
	t.Parallel()

	_, err := DiscoverMarkdownFiles(t.TempDir())
	if !errors.Is(err, ErrNoMarkdownFiles) {
		t.Errorf("error = %v, want ErrNoMarkdownFiles", err)
	}
}

func TestDiscoverMarkdownFiles_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := DiscoverMarkdownFiles(filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
