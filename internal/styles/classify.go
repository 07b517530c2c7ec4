package styles

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// Word's built-in list style families: "List Bullet", "List Bullet 2" ..
// "List Bullet 5", and the same for "List Number". The unsuffixed name is
// level 0.
var (
	bulletName = regexp.MustCompile(`(?i)^list bullet(?: (\d))?$`)
	numberName = regexp.MustCompile(`(?i)^list number(?: (\d))?$`)
	headName   = regexp.MustCompile(`(?i)^heading (\d)$`)
)

// classifyListStyles scans the template's style names for the bullet and
// numbered list families and returns candidate names ordered by nesting
// level. Either slice may come back empty; the list renderer then falls
// back to glyph-prefixed normal paragraphs.
func classifyListStyles(names []string) (bullets, numbers []string) {
	byLevel := func(pat *regexp.Regexp) []string {
		levels := make(map[int]string)
		max := -1
		for _, name := range names {
			m := pat.FindStringSubmatch(name)
			if m == nil {
				continue
			}
			level := 0
			if m[1] != "" {
				n, _ := strconv.Atoi(m[1])
				level = n - 1 // "List Bullet 2" is the second level
			}
			if level < 0 {
				continue
			}
			if _, taken := levels[level]; !taken {
				levels[level] = name
			}
			if level > max {
				max = level
			}
		}

		var out []string
		for l := 0; l <= max; l++ {
			name, ok := levels[l]
			if !ok {
				break // gap in the family, stop at contiguous prefix
			}
			out = append(out, name)
		}
		return out
	}

	return byLevel(bulletName), byLevel(numberName)
}

// headingInventory maps heading level markers to the style names the
// template actually defines, covering "Heading 0" through "Heading 8" in
// any letter case. The first name seen per level wins.
func headingInventory(names []string) map[int]string {
	inv := make(map[int]string)
	for _, name := range names {
		m := headName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		level, _ := strconv.Atoi(m[1])
		if level > 8 {
			continue
		}
		if _, taken := inv[level]; !taken {
			inv[level] = name
		}
	}
	return inv
}

// TableInfo is the data-table styling extracted from the template.
type TableInfo struct {
	Found       bool
	StyleName   string // table style, empty means generic grid
	HeaderBold  bool   // whether the template table's first row is a header
	HeaderStyle string // paragraph style of header cells
	BodyStyle   string // paragraph style of body cells
	TotalStyle  string // paragraph style of a trailing total row, if any
}

// pickTemplateTable chooses which of the template's tables carries the
// canonical data-table styling. The first table is commonly a logo banner,
// so with two or more the second wins.
func pickTemplateTable(n int) int {
	switch {
	case n >= 2:
		return 1
	case n == 1:
		return 0
	default:
		return -1
	}
}

// headerByBoldness decides whether row 0 is a header by comparing how many
// of its runs are bold against row 1. A single-row table counts as
// header-led only when its runs are bold at all.
func headerByBoldness(row0, row1 []bool) bool {
	count := func(bs []bool) int {
		n := 0
		for _, b := range bs {
			if b {
				n++
			}
		}
		return n
	}
	if len(row1) == 0 {
		return count(row0) > 0
	}
	return count(row0) > count(row1)
}

// classifyTableStyles inspects the template's own tables and records the
// styling the table renderer should reproduce.
func classifyTableStyles(doc *document.Document) TableInfo {
	tables := doc.Tables()
	idx := pickTemplateTable(len(tables))
	if idx < 0 {
		return TableInfo{}
	}
	t := tables[idx]

	info := TableInfo{Found: true}
	if pr := t.X().TblPr; pr != nil && pr.TblStyle != nil {
		info.StyleName = pr.TblStyle.ValAttr
	}

	rows := t.Rows()
	if len(rows) == 0 {
		return info
	}

	info.HeaderBold = headerByBoldness(rowBoldness(rows[0]), rowBoldnessAt(rows, 1))
	info.HeaderStyle = rowParagraphStyle(rows[0])
	if len(rows) > 1 {
		info.BodyStyle = rowParagraphStyle(rows[1])
	}
	if len(rows) > 2 {
		last := rowParagraphStyle(rows[len(rows)-1])
		if last != "" && last != info.BodyStyle {
			info.TotalStyle = last
		}
	}
	return info
}

func rowBoldnessAt(rows []document.Row, i int) []bool {
	if i >= len(rows) {
		return nil
	}
	return rowBoldness(rows[i])
}

// rowBoldness flattens a row into one bold flag per run.
func rowBoldness(row document.Row) []bool {
	var bold []bool
	for _, cell := range row.Cells() {
		for _, p := range cell.Paragraphs() {
			for _, r := range p.Runs() {
				bold = append(bold, r.Properties().IsBold())
			}
		}
	}
	return bold
}

// rowParagraphStyle returns the first non-empty paragraph style in a row.
func rowParagraphStyle(row document.Row) string {
	for _, cell := range row.Cells() {
		for _, p := range cell.Paragraphs() {
			if s := strings.TrimSpace(p.Style()); s != "" {
				return s
			}
		}
	}
	return ""
}
