package md2docx

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/styles"
)

// Code block appearance.
const (
	codeFontName  = "Courier New"
	codeFontSize  = 10 // points
	codeShadeFill = "F0F0F0"
)

// manualNumbering matches hand-typed heading numbers like "3", "1.2" or
// "2.4.1.", which the template's heading styles number on their own.
var manualNumbering = regexp.MustCompile(`^\d+(?:\.\d+)*\.?\s*`)

// writeSegments emits formatted inline segments as styled runs of one
// paragraph.
func (a *assembler) writeSegments(para document.Paragraph, segs []pipeline.Segment) {
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		run := para.AddRun()
		switch s.Kind {
		case pipeline.SegBold:
			run.Properties().SetBold(true)
		case pipeline.SegItalic:
			run.Properties().SetItalic(true)
		case pipeline.SegBoldItalic:
			run.Properties().SetBold(true)
			run.Properties().SetItalic(true)
		case pipeline.SegCode:
			run.Properties().SetFontFamily(codeFontName)
			run.Properties().SetSize(codeFontSize * measurement.Point)
		}
		run.AddText(s.Text)
	}
}

// renderHeading emits one heading line with the strategy-mapped template
// style, manual numbering stripped, and inline emphasis applied.
func (a *assembler) renderHeading(line string) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	text := strings.TrimSpace(trimmed[level:])

	if stripped := strings.TrimSpace(manualNumbering.ReplaceAllString(text, "")); stripped != "" {
		text = stripped
	}

	d := a.cat.Resolve(a.cat.HeadingStyle(level, a.res))
	para := a.doc.AddParagraph()
	para.SetStyle(d.StyleID)
	a.writeSegments(para, pipeline.FormatInline(text))
}

// renderCode emits a fenced code block as one shaded paragraph of
// monospaced runs, one per source line, blank lines preserved as breaks.
// With a highlight style configured and a recognized language, runs carry
// chroma token colors.
func (a *assembler) renderCode(lang string, lines []string) {
	para := a.doc.AddParagraph()

	shd := wml.NewCT_Shd()
	shd.ValAttr = wml.ST_ShdClear
	shd.FillAttr = &wml.ST_HexColor{ST_HexColorRGB: unioffice.String(codeShadeFill)}
	para.Properties().X().Shd = shd

	if tokens, sty, ok := a.tokenizeCode(lang, strings.Join(lines, "\n")); ok {
		a.writeColoredCode(para, tokens, sty)
		return
	}

	for i, line := range lines {
		run := a.codeRun(para)
		if i > 0 {
			run.AddBreak()
		}
		run.AddText(line)
	}
}

// codeRun adds a monospaced run to a code paragraph.
func (a *assembler) codeRun(para document.Paragraph) document.Run {
	run := para.AddRun()
	run.Properties().SetFontFamily(codeFontName)
	run.Properties().SetSize(codeFontSize * measurement.Point)
	return run
}

// tokenizeCode lexes the block with chroma when colorization is enabled
// and the fence names a known language.
func (a *assembler) tokenizeCode(lang, src string) ([]chroma.Token, *chroma.Style, bool) {
	if a.highlight == "" || lang == "" {
		return nil, nil, false
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, nil, false
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		return nil, nil, false
	}
	return it.Tokens(), chromastyles.Get(a.highlight), true
}

// writeColoredCode emits chroma tokens as colored runs, translating token
// newlines into run breaks.
func (a *assembler) writeColoredCode(para document.Paragraph, tokens []chroma.Token, sty *chroma.Style) {
	for _, tok := range tokens {
		parts := strings.Split(tok.Value, "\n")
		for pi, part := range parts {
			if pi > 0 {
				a.codeRun(para).AddBreak()
			}
			if part == "" {
				continue
			}
			run := a.codeRun(para)
			if entry := sty.Get(tok.Type); entry.Colour.IsSet() {
				c := entry.Colour
				run.Properties().SetColor(color.RGB(c.Red(), c.Green(), c.Blue()))
			}
			run.AddText(part)
		}
	}
}

// renderTable builds a document table from the next parsed HTML table
// node, accepted only when its cells overlap the span's raw lines so a
// malformed pipe run cannot steal a later table's node. Row 0 is the
// header; a trailing row that carries <th> cells or "sum"/"total" text
// takes the template's total style when one exists. When the HTML holds
// no matching table the raw lines degrade to plain paragraphs so nothing
// is lost.
func (a *assembler) renderTable(span pipeline.BlockSpan) {
	node := a.html.NextTableMatching(span.Lines)
	if node == nil {
		for _, line := range span.Lines {
			if strings.TrimSpace(line) != "" {
				para := a.doc.AddParagraph()
				a.writeSegments(para, pipeline.FormatInline(strings.TrimSpace(line)))
			}
		}
		return
	}

	rows := pipeline.TableData(node)
	if len(rows) == 0 {
		return
	}

	tbl := a.doc.AddTable()
	tbl.Properties().SetWidthPercent(100)
	tbl.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Auto, 0.5*measurement.Point)

	info := a.cat.Table()
	totalRow := len(rows) - 1
	hasTotal := totalRow > 0 && info.TotalStyle != "" && isTotalRow(rows[totalRow])

	for ri, row := range rows {
		r := tbl.AddRow()
		for _, cell := range row {
			c := r.AddCell()
			para := c.AddParagraph()

			styleName := info.BodyStyle
			bold := false
			switch {
			case ri == 0:
				styleName = info.HeaderStyle
				bold = true
			case ri == totalRow && hasTotal:
				styleName = info.TotalStyle
			}
			if styleName != "" {
				para.SetStyle(styleName)
			}

			run := para.AddRun()
			if bold {
				run.Properties().SetBold(true)
			}
			run.AddText(cell.Text)
		}
	}
}

// isTotalRow reports whether a table row looks like a totals line.
func isTotalRow(row []pipeline.TableCell) bool {
	for _, c := range row {
		if c.Header {
			return true
		}
		lower := strings.ToLower(c.Text)
		if strings.Contains(lower, "total") || strings.Contains(lower, "sum") {
			return true
		}
	}
	return false
}

// renderRule emits a horizontal rule as an empty paragraph with a thin
// bottom border.
func (a *assembler) renderRule() {
	para := a.doc.AddParagraph()
	b := wml.NewCT_Border()
	b.ValAttr = wml.ST_BorderSingle
	b.SzAttr = unioffice.Uint64(6) // eighths of a point
	b.SpaceAttr = unioffice.Uint64(1)

	pbdr := wml.NewCT_PBdr()
	pbdr.Bottom = b
	para.Properties().X().PBdr = pbdr
}

// renderList emits one list block: glyph or numbered items at their
// nesting levels, fenced code interleaved at its source position. Ordered
// counters live in a per-block numbering state; an unordered item at a
// level restarts that level's sequence.
func (a *assembler) renderList(span pipeline.BlockSpan) {
	entries := pipeline.ParseListBlock(span.Lines, span.Start)
	min := pipeline.MinIndent(entries)
	nums := pipeline.NewNumberingState()

	for _, e := range entries {
		if e.Code != nil {
			a.renderCode(e.Code.Language, e.Code.Lines)
			continue
		}

		item := e.Item
		level := pipeline.NestingLevel(item.Indent, min)

		var prefix, styleName string
		var styled bool
		if item.Ordered {
			prefix = pipeline.OrderedPrefix(level, nums.Next(level))
			styleName, styled = a.cat.NumberStyle(level)
		} else {
			nums.Interrupt(level)
			prefix = pipeline.BulletGlyph(nil, level)
			styleName, styled = a.cat.BulletStyle(level)
		}

		para := a.doc.AddParagraph()
		if styled && a.res == styles.ResolutionDirect {
			// The template's list style numbers and indents on its own.
			para.SetStyle(a.cat.Resolve(styleName).StyleID)
		} else {
			indentListItem(para, level)
			run := para.AddRun()
			run.AddText(prefix + " ")
		}
		a.writeSegments(para, pipeline.FormatInline(item.Content))
	}
}

// indentListItem applies a quarter inch of left indent per nesting level,
// plus one for the marker itself.
func indentListItem(para document.Paragraph, level int) {
	ind := wml.NewCT_Ind()
	ind.LeftAttr = &wml.ST_SignedTwipsMeasure{
		Int64: unioffice.Int64(int64(360 * (level + 1))),
	}
	para.Properties().X().Ind = ind
}
