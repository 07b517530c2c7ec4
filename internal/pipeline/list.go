package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxListDepth caps the nesting level derived from indentation. Deeper
// indentation clamps to this level rather than failing.
const MaxListDepth = 4

// DefaultBulletGlyphs are the built-in per-level bullet characters used
// when the template defines no bullet list styles: filled circle, hollow
// circle, filled square, hollow square. Levels cycle through them mod 4.
var DefaultBulletGlyphs = []string{"•", "◦", "▪", "▫"}

// ListItem is one parsed list item line.
type ListItem struct {
	Indent  int    // leading whitespace width
	Content string // item text with the marker stripped
	Ordered bool
	Line    int // 0-based source line index
}

// ListEntry is one element of a parsed list block in source order: either a
// list item or a code block that appeared fenced inside the list. Code
// blocks are rendered interleaved at their original position, never hoisted
// out of the block.
type ListEntry struct {
	Item *ListItem
	Code *CodeBlock
}

// CodeBlock is a fenced code region: the info string from the opening fence
// and the literal lines between the fences.
type CodeBlock struct {
	Language string
	Lines    []string
}

// Item content cleanup: strip a trailing escaped asterisk, then any bare
// trailing asterisks left over from malformed emphasis.
var (
	trailingEscapedStar = regexp.MustCompile(`\\\*\s*$`)
	trailingStars       = regexp.MustCompile(`\*+\s*$`)
)

// ParseListBlock parses the raw lines of one list-block span (beginning at
// source line offset) into its ordered entries. Blank lines are skipped;
// fence lines toggle code collection; anything else inside a code region is
// captured literally. An indented continuation line that is not itself a
// list item is folded into the preceding item's content.
func ParseListBlock(lines []string, offset int) []ListEntry {
	var entries []ListEntry
	var code *CodeBlock
	inCode := false

	appendItem := func(it ListItem) {
		item := it
		entries = append(entries, ListEntry{Item: &item})
	}

	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)

		if isFenceLine(trimmed) {
			if !inCode {
				inCode = true
				code = &CodeBlock{Language: strings.TrimSpace(strings.TrimLeft(trimmed, "`~"))}
			} else {
				inCode = false
				entries = append(entries, ListEntry{Code: code})
				code = nil
			}
			continue
		}
		if inCode {
			code.Lines = append(code.Lines, line)
			continue
		}
		if trimmed == "" {
			continue
		}

		if m := unorderedItem.FindStringSubmatch(line); m != nil && !ruleLine.MatchString(trimmed) {
			appendItem(ListItem{
				Indent:  len(m[1]),
				Content: cleanItemContent(m[2]),
				Ordered: false,
				Line:    offset + i,
			})
			continue
		}
		if m := orderedItem.FindStringSubmatch(line); m != nil {
			appendItem(ListItem{
				Indent:  len(m[1]),
				Content: cleanItemContent(m[2]),
				Ordered: true,
				Line:    offset + i,
			})
			continue
		}

		// Indented continuation of the previous item.
		for j := len(entries) - 1; j >= 0; j-- {
			if entries[j].Item != nil {
				entries[j].Item.Content += " " + trimmed
				break
			}
		}
	}

	// Unclosed fence inside the block: emit what was collected.
	if inCode && code != nil {
		entries = append(entries, ListEntry{Code: code})
	}

	return entries
}

// cleanItemContent trims the parsed item text and removes trailing
// asterisk debris so malformed emphasis never leaks marker characters into
// the rendered item.
func cleanItemContent(content string) string {
	content = strings.TrimSpace(content)
	content = trailingEscapedStar.ReplaceAllString(content, "")
	content = trailingStars.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// MinIndent returns the smallest item indentation in the block, the base
// against which nesting levels are computed. Returns 0 for a block with no
// items.
func MinIndent(entries []ListEntry) int {
	min := -1
	for _, e := range entries {
		if e.Item == nil {
			continue
		}
		if min < 0 || e.Item.Indent < min {
			min = e.Item.Indent
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// NestingLevel derives a zero-based nesting level from an item's
// indentation relative to the block minimum: two spaces per level,
// floor-divided, clamped to MaxListDepth.
func NestingLevel(indent, minIndent int) int {
	level := (indent - minIndent) / 2
	if level < 0 {
		return 0
	}
	if level > MaxListDepth {
		return MaxListDepth
	}
	return level
}

// NumberingState tracks running ordered-list counters per nesting level for
// the duration of one list block. It is created fresh per block: numbering
// restarts at every top-level list block, never carries across the
// document.
type NumberingState struct {
	counters map[int]int
}

// NewNumberingState returns an empty numbering state.
func NewNumberingState() *NumberingState {
	return &NumberingState{counters: make(map[int]int)}
}

// Next advances and returns the counter for an ordered item at the given
// level, starting at 1.
func (s *NumberingState) Next(level int) int {
	s.counters[level]++
	return s.counters[level]
}

// Interrupt discards the counter for a level. Called when an unordered item
// appears at that level: a later ordered item restarts at 1 rather than
// continuing the broken sequence.
func (s *NumberingState) Interrupt(level int) {
	delete(s.counters, level)
}

// OrderedPrefix renders an ordered item's number in the per-level scheme:
// arabic numerals at level 0, lowercase letters at level 1, and arabic
// numerals again at every deeper level. Letters wrap past "z" back to
// numerals rather than producing garbage.
func OrderedPrefix(level, n int) string {
	if level == 1 && n >= 1 && n <= 26 {
		return string(rune('a'+n-1)) + "."
	}
	return strconv.Itoa(n) + "."
}

// BulletGlyph returns the bullet for a level, cycling through the glyph set
// mod its length.
func BulletGlyph(glyphs []string, level int) string {
	if len(glyphs) == 0 {
		glyphs = DefaultBulletGlyphs
	}
	return glyphs[level%len(glyphs)]
}
