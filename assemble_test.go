package md2docx

import (
	"testing"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

func TestSplitFence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lines    []string
		wantLang string
		wantBody []string
	}{
		{
			name:     "backtick fence with language",
			lines:    []string{"```go", "func main() {}", "```"},
			wantLang: "go",
			wantBody: []string{"func main() {}"},
		},
		{
			name:     "tilde fence",
			lines:    []string{"~~~python", "print('x')", "~~~"},
			wantLang: "python",
			wantBody: []string{"print('x')"},
		},
		{
			name:     "no language",
			lines:    []string{"```", "plain text", "```"},
			wantLang: "",
			wantBody: []string{"plain text"},
		},
		{
			name:     "unclosed fence keeps trailing line",
			lines:    []string{"```sh", "echo hi", "echo bye"},
			wantLang: "sh",
			wantBody: []string{"echo hi", "echo bye"},
		},
		{
			name:     "empty input",
			lines:    nil,
			wantLang: "",
			wantBody: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lang, body := splitFence(tt.lines)
			if lang != tt.wantLang {
				t.Errorf("lang = %q, want %q", lang, tt.wantLang)
			}
			if len(body) != len(tt.wantBody) {
				t.Fatalf("body = %v, want %v", body, tt.wantBody)
			}
			for i := range body {
				if body[i] != tt.wantBody[i] {
					t.Errorf("body[%d] = %q, want %q", i, body[i], tt.wantBody[i])
				}
			}
		})
	}
}

func TestIsTotalRow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  []pipeline.TableCell
		want bool
	}{
		{
			name: "total keyword",
			row:  []pipeline.TableCell{{Text: "Total"}, {Text: "42"}},
			want: true,
		},
		{
			name: "sum keyword mixed case",
			row:  []pipeline.TableCell{{Text: "Running SUM"}, {Text: "7"}},
			want: true,
		},
		{
			name: "header cell in body",
			row:  []pipeline.TableCell{{Text: "Footer", Header: true}, {Text: "1"}},
			want: true,
		},
		{
			name: "plain data row",
			row:  []pipeline.TableCell{{Text: "Widgets"}, {Text: "3"}},
			want: false,
		},
		{
			name: "empty row",
			row:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isTotalRow(tt.row); got != tt.want {
				t.Errorf("isTotalRow(%v) = %v, want %v", tt.row, got, tt.want)
			}
		})
	}
}

func TestManualNumberingStrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"1. Introduction", "Introduction"},
		{"2.3 Nested Section", "Nested Section"},
		{"10.2.1. Deep", "Deep"},
		{"Overview", "Overview"},
		{"2024 in Review", "in Review"},
	}
	for _, tt := range tests {
		if got := manualNumbering.ReplaceAllString(tt.input, ""); got != tt.want {
			t.Errorf("strip(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
