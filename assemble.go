package md2docx

import (
	"log/slog"
	"strings"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/styles"
)

// assembler drives one document assembly: it walks the classified block
// spans in source order and dispatches each exactly once to the matching
// renderer. Because the segmenter partitions every line up front and HTML
// nodes are consumed at most once, no content can be emitted twice.
type assembler struct {
	cat       *styles.Catalog
	doc       *document.Document
	html      *pipeline.HTMLDocument
	res       styles.Resolution
	highlight string
	log       *slog.Logger
	blocks    int
}

func newAssembler(cat *styles.Catalog, html *pipeline.HTMLDocument, res styles.Resolution, highlight string, log *slog.Logger) *assembler {
	return &assembler{
		cat:       cat,
		doc:       cat.Document(),
		html:      html,
		res:       res,
		highlight: highlight,
		log:       log,
	}
}

// clearTemplateBody removes the template's top-level body paragraphs so the
// converted content replaces the sample text. Headers, footers, and the
// template's tables stay in place.
func (a *assembler) clearTemplateBody() {
	pMap := make(map[*wml.CT_P]document.Paragraph)
	for _, p := range a.doc.Paragraphs() {
		pMap[p.X()] = p
	}

	body := a.doc.X().Body
	if body == nil {
		return
	}

	var remove []document.Paragraph
	for _, bl := range body.EG_BlockLevelElts {
		for _, c := range bl.EG_ContentBlockContent {
			for _, cp := range c.P {
				if par, ok := pMap[cp]; ok {
					remove = append(remove, par)
				}
			}
		}
	}
	for _, p := range remove {
		a.doc.RemoveParagraph(p)
	}
}

// assemble renders the block spans into the document in source order.
func (a *assembler) assemble(spans []pipeline.BlockSpan) {
	for _, span := range spans {
		switch span.Kind {
		case pipeline.BlockBlank:
			continue
		case pipeline.BlockHeading:
			a.renderHeading(span.Lines[0])
		case pipeline.BlockCode:
			lang, content := splitFence(span.Lines)
			a.renderCode(lang, content)
		case pipeline.BlockTable:
			a.renderTable(span)
		case pipeline.BlockList:
			a.renderList(span)
		case pipeline.BlockRule:
			a.renderRule()
		case pipeline.BlockParagraph:
			a.renderParagraph(span)
		}
		a.blocks++
	}
}

// renderParagraph handles one prose span: formatting artifacts are skipped,
// footer notes render italic, and everything else resolves against the
// parsed HTML or falls back to raw inline formatting. Soft-wrapped lines
// arrive as one span and are joined before matching, so the whole paragraph
// resolves against a single node and renders exactly once. A span is never
// silently dropped outside the artifact set.
func (a *assembler) renderParagraph(span pipeline.BlockSpan) {
	if len(span.Lines) == 1 {
		trimmed := strings.TrimSpace(span.Lines[0])
		switch trimmed {
		case "", "-", "*", "--":
			// leftover list/emphasis markers, not body text
			return
		}
		if strings.HasPrefix(trimmed, "*For ") {
			a.renderFooterNote(trimmed)
			return
		}
	}

	text := strings.Join(strings.Fields(strings.Join(span.Lines, " ")), " ")
	if text == "" {
		return
	}

	var segs []pipeline.Segment
	if node := a.html.MatchParagraph(text); node != nil {
		segs = pipeline.SegmentsFromNode(node)
	} else {
		segs = pipeline.FormatInline(text)
	}

	para := a.doc.AddParagraph()
	a.writeSegments(para, segs)
}

// renderFooterNote renders an asterisk-wrapped "*For ...*" line as an
// italic note paragraph.
func (a *assembler) renderFooterNote(trimmed string) {
	text := strings.Trim(trimmed, "*")
	para := a.doc.AddParagraph()
	run := para.AddRun()
	run.Properties().SetItalic(true)
	run.AddText(strings.TrimSpace(text))
}

// splitFence separates a fenced code span into its info-string language and
// content lines. The closing fence may be missing when the block ran to end
// of input.
func splitFence(lines []string) (lang string, content []string) {
	if len(lines) == 0 {
		return "", nil
	}

	first := strings.TrimSpace(lines[0])
	lang = strings.TrimSpace(strings.TrimLeft(first, "`~"))

	content = lines[1:]
	if n := len(content); n > 0 {
		last := strings.TrimSpace(content[n-1])
		if strings.HasPrefix(last, "```") || strings.HasPrefix(last, "~~~") {
			content = content[:n-1]
		}
	}
	return lang, content
}
