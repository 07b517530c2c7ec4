package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
)

func TestParseMarkdownHTML(t *testing.T) {
	t.Parallel()

	src := "First paragraph.\n\nSecond **bold** paragraph.\n\n" +
		"| Item | Qty | Price |\n|---|---|---|\n| Apples | 3 | 1.50 |\n| Total | | 1.50 |\n"

	doc, err := ParseMarkdownHTML(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}
	if len(doc.paragraphs) != 2 {
		t.Errorf("indexed %d paragraphs, want 2", len(doc.paragraphs))
	}
	if len(doc.tables) != 1 {
		t.Errorf("indexed %d tables, want 1", len(doc.tables))
	}
}

func TestParseMarkdownHTML_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ParseMarkdownHTML(ctx, "# Heading"); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseMarkdownHTML_Timeout(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := ParseMarkdownHTML(ctx, "plain text"); err != nil {
		t.Errorf("unexpected error with live context: %v", err)
	}
}

func TestMatchParagraph_ConsumesEachNodeOnce(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkdownHTML(context.Background(), "Alpha beta gamma.\n\nAlpha beta gamma.\n")
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}

	first := doc.MatchParagraph("Alpha beta gamma.")
	if first == nil {
		t.Fatal("first match = nil")
	}
	second := doc.MatchParagraph("Alpha beta gamma.")
	if second == nil {
		t.Fatal("second match = nil")
	}
	if first == second {
		t.Error("both lines matched the same node; each node must be consumed once")
	}
	if third := doc.MatchParagraph("Alpha beta gamma."); third != nil {
		t.Error("third match should be nil, all candidate nodes are consumed")
	}
}

func TestMatchParagraph_SubstringEitherDirection(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkdownHTML(context.Background(), "Some **styled** text here.\n")
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}

	// The raw line still carries the markers; the node text does not. The
	// shorter node text is contained in the raw line.
	if doc.MatchParagraph("Some styled text here.") == nil {
		t.Error("exact rendered text should match")
	}

	doc2, _ := ParseMarkdownHTML(context.Background(), "A long paragraph body.\n")
	if doc2.MatchParagraph("paragraph body") == nil {
		t.Error("line contained in node text should match")
	}
	if doc2.MatchParagraph("") != nil {
		t.Error("blank line must never match")
	}
}

func TestMatchParagraph_WrappedLinesResolveToOneNode(t *testing.T) {
	t.Parallel()

	src := "First sentence of the paragraph.\nsecond sentence of the paragraph.\n"
	doc, err := ParseMarkdownHTML(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}
	if len(doc.paragraphs) != 1 {
		t.Fatalf("indexed %d paragraphs, want 1", len(doc.paragraphs))
	}

	// The node text carries the soft break as a newline; the joined source
	// span carries it as a space. Both must resolve to the same node.
	joined := "First sentence of the paragraph. second sentence of the paragraph."
	if doc.MatchParagraph(joined) == nil {
		t.Fatal("space-joined span did not match its node")
	}
	if doc.MatchParagraph("second sentence of the paragraph.") != nil {
		t.Error("consumed node matched again; the second line would render twice")
	}
}

func TestIndexNodes_SkipsListSubtrees(t *testing.T) {
	t.Parallel()

	// A loose list renders its items as <p> inside <li>. Those belong to
	// the list and must not sit in the paragraph index where later prose
	// could substring-match them.
	src := "- item one\n\n- item two\n\nClosing prose after the list.\n"
	doc, err := ParseMarkdownHTML(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}
	if len(doc.paragraphs) != 1 {
		t.Fatalf("indexed %d paragraphs, want 1 (list item paragraphs leaked)", len(doc.paragraphs))
	}

	node := doc.MatchParagraph("Closing prose after the list.")
	if node == nil {
		t.Fatal("closing prose did not match")
	}
	if got := strings.TrimSpace(NodeText(node)); got != "Closing prose after the list." {
		t.Errorf("matched node text = %q, want the prose paragraph", got)
	}
}

func TestNextTableMatching_RejectsForeignSpan(t *testing.T) {
	t.Parallel()

	src := "| Name | Qty |\n|---|---|\n| Apples | 3 |\n"
	doc, err := ParseMarkdownHTML(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}

	// A pipe run without a delimiter row never produced this table; it
	// must not consume the node.
	bogus := []string{"| one | two |", "| three | four |"}
	if doc.NextTableMatching(bogus) != nil {
		t.Fatal("foreign span consumed the table node")
	}

	real := []string{"| Name | Qty |", "|---|---|", "| Apples | 3 |"}
	table := doc.NextTableMatching(real)
	if table == nil {
		t.Fatal("owning span failed to claim its table")
	}
	if rows := TableData(table); len(rows) == 0 || rows[0][0].Text != "Name" {
		t.Errorf("claimed table header = %v, want Name", rows)
	}
}

func TestNextTable_ConsumesInOrder(t *testing.T) {
	t.Parallel()

	src := "| A |\n|---|\n| 1 |\n\ntext\n\n| B |\n|---|\n| 2 |\n"
	doc, err := ParseMarkdownHTML(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}

	first := doc.NextTable()
	if first == nil {
		t.Fatal("first table = nil")
	}
	rows := TableData(first)
	if len(rows) == 0 || rows[0][0].Text != "A" {
		t.Errorf("first table header = %v, want A", rows)
	}

	second := doc.NextTable()
	if second == nil {
		t.Fatal("second table = nil")
	}
	if rows := TableData(second); len(rows) == 0 || rows[0][0].Text != "B" {
		t.Errorf("second table header = %v, want B", rows)
	}

	if doc.NextTable() != nil {
		t.Error("third table should be nil")
	}
}

func TestSegmentsFromNode(t *testing.T) {
	t.Parallel()

	doc, err := ParseMarkdownHTML(context.Background(), "plain **bold** *ital* ***both*** `code`\n")
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}
	p := doc.MatchParagraph("plain")
	if p == nil {
		t.Fatal("paragraph not found")
	}

	segs := SegmentsFromNode(p)

	find := func(kind SegmentKind, text string) bool {
		for _, s := range segs {
			if s.Kind == kind && s.Text == text {
				return true
			}
		}
		return false
	}

	if !find(SegBold, "bold") {
		t.Errorf("missing bold segment in %v", segs)
	}
	if !find(SegItalic, "ital") {
		t.Errorf("missing italic segment in %v", segs)
	}
	if !find(SegBoldItalic, "both") {
		t.Errorf("missing bold+italic segment in %v", segs)
	}
	if !find(SegCode, "code") {
		t.Errorf("missing code segment in %v", segs)
	}
	if !find(SegPlain, "plain ") {
		t.Errorf("missing plain segment in %v", segs)
	}
}

func TestTableData(t *testing.T) {
	t.Parallel()

	src := "| Item | Qty | Price |\n|---|---|---|\n| Apples | 3 | 1.50 |\n| Total |  | 1.50 |\n"
	doc, err := ParseMarkdownHTML(context.Background(), src)
	if err != nil {
		t.Fatalf("ParseMarkdownHTML: %v", err)
	}

	rows := TableData(doc.NextTable())
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, r := range rows {
		if len(r) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(r))
		}
	}
	if !rows[0][0].Header || rows[0][0].Text != "Item" {
		t.Errorf("row 0 cell 0 = %+v, want header Item", rows[0][0])
	}
	if rows[1][0].Header {
		t.Error("body cell flagged as header")
	}
	if rows[2][0].Text != "Total" || rows[2][1].Text != "" {
		t.Errorf("total row = %v", rows[2])
	}
}

func TestTableData_ClampsIrregularRows(t *testing.T) {
	t.Parallel()

	// Goldmark never emits ragged pipe tables, so feed the indexer a
	// hand-parsed irregular one.
	raw := "<table><tr><th>A</th><th>B</th><th>C</th></tr>" +
		"<tr><td>1</td><td>2</td></tr></table>"
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}

	table := indexNodes(root).NextTable()
	if table == nil {
		t.Fatal("table not indexed")
	}
	rows := TableData(table)
	for i, r := range rows {
		if len(r) != 2 {
			t.Errorf("row %d has %d cells, want clamped 2", i, len(r))
		}
	}
}
