package pipeline

import (
	"regexp"
	"strings"
)

// BlockKind classifies a run of source lines.
type BlockKind int

// Block kinds, in rough order of detection precedence.
const (
	BlockBlank BlockKind = iota
	BlockHeading
	BlockCode
	BlockTable
	BlockList
	BlockRule
	BlockParagraph
)

// String returns a short name for the kind, used in diagnostics and tests.
func (k BlockKind) String() string {
	switch k {
	case BlockBlank:
		return "blank"
	case BlockHeading:
		return "heading"
	case BlockCode:
		return "code"
	case BlockTable:
		return "table"
	case BlockList:
		return "list"
	case BlockRule:
		return "rule"
	case BlockParagraph:
		return "paragraph"
	}
	return "unknown"
}

// BlockSpan is a maximal classified run of source lines. Start and End are
// inclusive 0-based line indexes into the normalized line sequence; Lines
// holds the raw text of exactly those lines.
type BlockSpan struct {
	Kind  BlockKind
	Start int
	End   int
	Lines []string
}

// Precompiled regex patterns for line classification.
var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	headingLine = regexp.MustCompile(`^#{1,6}\s+\S`)

	// A horizontal rule is three or more of the SAME marker character,
	// alone on the line.
	ruleLine = regexp.MustCompile(`^(?:-{3,}|_{3,}|\*{3,})$`)

	unorderedItem = regexp.MustCompile(`^(\s*)[-*+](.+)$`)
	orderedItem   = regexp.MustCompile(`^(\s*)\d+\.(.+)$`)
)

// SplitLines normalizes line endings (CRLF/CR to LF) and splits the content
// into its immutable line sequence.
func SplitLines(content string) []string {
	return strings.Split(crlfOrCR.ReplaceAllString(content, "\n"), "\n")
}

// isFenceLine reports whether the trimmed line opens or closes a fenced
// code block. Both backtick and tilde fences are recognized.
func isFenceLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// IsListItemLine reports whether the line is an ordered or unordered list
// item at any indentation.
func IsListItemLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	// A rule like "***" must not be mistaken for a "*"-marked item.
	if ruleLine.MatchString(trimmed) {
		return false
	}
	return unorderedItem.MatchString(line) || orderedItem.MatchString(line)
}

// isFooterNoteLine reports whether the line is an asterisk-wrapped footer
// note such as "*For more information, contact support.*". Checked before
// list classification so the leading '*' is not taken for a bullet marker.
func isFooterNoteLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "*For ")
}

// isArtifactLine reports whether the line is a leftover list or emphasis
// marker with no content. "--" would otherwise pass for a one-item list.
func isArtifactLine(trimmed string) bool {
	switch trimmed {
	case "-", "*", "--":
		return true
	}
	return false
}

// leadingSpace returns the number of leading whitespace characters.
func leadingSpace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// SegmentBlocks partitions the line sequence into classified block spans in a
// single forward scan. Every line belongs to exactly one span; no two spans
// overlap. Contiguous unclassified non-blank lines form one paragraph span,
// matching how the HTML pass merges soft-wrapped lines into a single node.
func SegmentBlocks(lines []string) []BlockSpan {
	var spans []BlockSpan

	emit := func(kind BlockKind, start, end int) {
		spans = append(spans, BlockSpan{
			Kind:  kind,
			Start: start,
			End:   end,
			Lines: lines[start : end+1],
		})
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			emit(BlockBlank, i, i)
			i++

		case isFenceLine(trimmed):
			end := scanFencedCode(lines, i)
			emit(BlockCode, i, end)
			i = end + 1

		case headingLine.MatchString(trimmed):
			emit(BlockHeading, i, i)
			i++

		case ruleLine.MatchString(trimmed):
			emit(BlockRule, i, i)
			i++

		case isFooterNoteLine(trimmed) || isArtifactLine(trimmed):
			emit(BlockParagraph, i, i)
			i++

		case IsListItemLine(line):
			end := scanListBlock(lines, i)
			emit(BlockList, i, end)
			i = end + 1

		case isTableStart(lines, i):
			end := scanTable(lines, i)
			emit(BlockTable, i, end)
			i = end + 1

		default:
			end := scanParagraph(lines, i)
			emit(BlockParagraph, i, end)
			i = end + 1
		}
	}

	return spans
}

// scanParagraph returns the inclusive end index of a paragraph starting at
// the prose line `start`: the run of following lines that no other block
// kind claims. Soft-wrapped prose must stay one span because the HTML pass
// renders it as one node.
func scanParagraph(lines []string, start int) int {
	end := start
	for j := start + 1; j < len(lines); j++ {
		line := lines[j]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" ||
			isFenceLine(trimmed) ||
			headingLine.MatchString(trimmed) ||
			ruleLine.MatchString(trimmed) ||
			isFooterNoteLine(trimmed) ||
			isArtifactLine(trimmed) ||
			IsListItemLine(line) ||
			isTableStart(lines, j) {
			break
		}
		end = j
	}
	return end
}

// scanFencedCode returns the inclusive end index of a fenced code block
// starting at the fence line `start`. An unclosed fence is auto-closed at
// end of input rather than treated as an error.
func scanFencedCode(lines []string, start int) int {
	for j := start + 1; j < len(lines); j++ {
		if isFenceLine(strings.TrimSpace(lines[j])) {
			return j
		}
	}
	return len(lines) - 1
}

// scanListBlock returns the inclusive end index of a list block starting at
// the list item line `start`. Once a list block begins it absorbs further
// list items, blank lines, fence-delimited code (which must stay inside the
// enclosing list span, not split it), and any indented continuation line.
// The block ends at the first non-indented, non-list, non-blank, non-fence
// line.
func scanListBlock(lines []string, start int) int {
	end := start
	inFence := false

	for j := start + 1; j < len(lines); j++ {
		line := lines[j]
		trimmed := strings.TrimSpace(line)

		if isFenceLine(trimmed) {
			inFence = !inFence
			end = j
			continue
		}
		if inFence {
			end = j
			continue
		}
		if trimmed == "" {
			// Blank lines may be interior list spacing; only keep them in
			// the span if list content follows. Tracked by not advancing
			// end until a real continuation shows up.
			continue
		}
		if isFooterNoteLine(trimmed) {
			break
		}
		if IsListItemLine(line) || leadingSpace(line) > 0 {
			end = j
			continue
		}
		break
	}

	return end
}

// isTableStart reports whether line i opens a pipe table: the line and its
// successor both start with '|'.
func isTableStart(lines []string, i int) bool {
	if !strings.HasPrefix(strings.TrimSpace(lines[i]), "|") {
		return false
	}
	return i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "|")
}

// scanTable returns the inclusive end index of a pipe table starting at
// line `start`, absorbing contiguous pipe-prefixed lines. Interior blank
// lines are tolerated but trailing blanks are left outside the span.
func scanTable(lines []string, start int) int {
	end := start
	for j := start + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if strings.HasPrefix(trimmed, "|") {
			end = j
			continue
		}
		if trimmed == "" {
			// Tolerate a gap only if the table resumes after it.
			continue
		}
		break
	}
	return end
}
