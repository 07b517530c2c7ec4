package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// ErrHTMLConversion indicates the Markdown-to-HTML stage failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// gm is the shared goldmark instance. GFM supplies the pipe-table and
// strikethrough handling; goldmark.Markdown is safe for concurrent use.
var gm = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM, // tables, strikethrough, autolinks
	),
	goldmark.WithRendererOptions(
		gmhtml.WithXHTML(),
	),
)

// HTMLDocument indexes the parsed-HTML rendering of the source Markdown.
// The assembler consumes paragraph nodes by text matching and table nodes
// in order; each node is handed out at most once, so the same content can
// never be emitted by two render paths.
type HTMLDocument struct {
	paragraphs []*html.Node
	tables     []*html.Node
	paraUsed   []bool
	nextTable  int
}

// ParseMarkdownHTML converts Markdown to HTML via goldmark and parses the
// result into the node index. Supports context cancellation via the
// goroutine + select pattern since goldmark doesn't natively take a
// context.
func ParseMarkdownHTML(ctx context.Context, content string) (*HTMLDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *HTMLDocument
		err error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := gm.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		root, err := html.Parse(&buf)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{doc: indexNodes(root)}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

// indexNodes collects <p> and <table> elements in document order.
// Paragraphs inside table cells belong to the table, and anything under a
// list belongs to the list (rendered from the raw lines); both subtrees
// are skipped so their text cannot be matched by a later prose line.
func indexNodes(root *html.Node) *HTMLDocument {
	doc := &HTMLDocument{}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "table":
				doc.tables = append(doc.tables, n)
				return
			case "ul", "ol":
				return
			case "p":
				doc.paragraphs = append(doc.paragraphs, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	doc.paraUsed = make([]bool, len(doc.paragraphs))
	return doc
}

// MatchParagraph finds the first unconsumed paragraph node whose text
// contains the line, or whose text the line contains, and consumes it.
// Whitespace runs collapse on both sides before comparing, since soft
// line breaks surface as newlines in the node text but as spaces in the
// joined source span. Returns nil when no node matches; the caller falls
// back to raw-text inline formatting so the line is never dropped.
func (d *HTMLDocument) MatchParagraph(line string) *html.Node {
	line = collapseSpace(line)
	if line == "" {
		return nil
	}
	for i, p := range d.paragraphs {
		if d.paraUsed[i] {
			continue
		}
		text := collapseSpace(NodeText(p))
		if text == "" {
			continue
		}
		if strings.Contains(text, line) || strings.Contains(line, text) {
			d.paraUsed[i] = true
			return p
		}
	}
	return nil
}

// collapseSpace trims the string and squeezes every whitespace run to a
// single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NextTable consumes and returns the next table node in document order, or
// nil when the HTML holds fewer tables than the raw scan found.
func (d *HTMLDocument) NextTable() *html.Node {
	if d.nextTable >= len(d.tables) {
		return nil
	}
	n := d.tables[d.nextTable]
	d.nextTable++
	return n
}

// NextTableMatching consumes and returns the next table node only when its
// cell text overlaps the raw span lines. A pipe run without a delimiter row
// produces no HTML table; consuming blindly there would shift every later
// table one slot out of place. Returns nil without consuming on a mismatch.
func (d *HTMLDocument) NextTableMatching(lines []string) *html.Node {
	if d.nextTable >= len(d.tables) {
		return nil
	}
	n := d.tables[d.nextTable]
	if !tableOverlaps(n, lines) {
		return nil
	}
	d.nextTable++
	return n
}

// tableOverlaps reports whether any non-empty cell of the table's first row
// appears in the raw lines.
func tableOverlaps(table *html.Node, lines []string) bool {
	rows := TableData(table)
	if len(rows) == 0 {
		return false
	}
	joined := strings.Join(lines, "\n")
	for _, cell := range rows[0] {
		if cell.Text != "" && strings.Contains(joined, cell.Text) {
			return true
		}
	}
	return false
}

// NodeText returns the concatenated text content of a node subtree.
func NodeText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

// SegmentsFromNode flattens a parsed inline HTML subtree (a <p>, <li>, or
// heading) into the same formatted-segment sequence FormatInline produces
// from raw text. Nested emphasis collapses to the flat enumeration: <em>
// inside <strong> becomes bold+italic.
func SegmentsFromNode(n *html.Node) []Segment {
	var segs []Segment

	var walk func(n *html.Node, kind SegmentKind)
	walk = func(n *html.Node, kind SegmentKind) {
		if n.Type == html.TextNode {
			if n.Data != "" {
				segs = append(segs, Segment{Kind: kind, Text: n.Data})
			}
			return
		}
		child := kind
		if n.Type == html.ElementNode {
			switch n.Data {
			case "strong", "b":
				if kind == SegItalic || kind == SegBoldItalic {
					child = SegBoldItalic
				} else {
					child = SegBold
				}
			case "em", "i":
				if kind == SegBold || kind == SegBoldItalic {
					child = SegBoldItalic
				} else {
					child = SegItalic
				}
			case "code":
				child = SegCode
			case "br":
				segs = append(segs, Segment{Kind: kind, Text: " "})
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, child)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, SegPlain)
	}
	return segs
}

// TableCell is one extracted cell of a parsed HTML table.
type TableCell struct {
	Text   string
	Header bool // true for <th> cells
}

// TableData extracts a parsed HTML table node into its rows, clamping every
// row to the minimum column count across rows so irregular tables never
// index out of range. Rows with zero cells are dropped before clamping.
func TableData(table *html.Node) [][]TableCell {
	var rows [][]TableCell

	var collectRows func(n *html.Node)
	collectRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []TableCell
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type != html.ElementNode {
					continue
				}
				switch c.Data {
				case "th":
					row = append(row, TableCell{Text: strings.TrimSpace(NodeText(c)), Header: true})
				case "td":
					row = append(row, TableCell{Text: strings.TrimSpace(NodeText(c))})
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectRows(c)
		}
	}
	collectRows(table)

	if len(rows) == 0 {
		return nil
	}

	minCols := len(rows[0])
	for _, r := range rows[1:] {
		if len(r) < minCols {
			minCols = len(r)
		}
	}
	for i := range rows {
		rows[i] = rows[i][:minCols]
	}
	return rows
}
