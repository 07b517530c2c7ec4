package pipeline

import (
	"regexp"
	"strings"
)

// SegmentKind classifies one formatted run of inline text.
type SegmentKind int

// Inline segment kinds.
const (
	SegPlain SegmentKind = iota
	SegBold
	SegItalic
	SegBoldItalic
	SegCode
)

// Segment is one formatted run of inline text. A paragraph's content is a
// flat ordered sequence of segments; nesting never goes deeper than
// bold+italic.
type Segment struct {
	Kind SegmentKind
	Text string
}

// escapedAsterisk protects backslash-escaped asterisks during emphasis
// normalization. A Private Use Area character passes through every regex
// untouched and cannot appear in real input.
const escapedAsterisk = ""

// Precompiled patterns for emphasis extraction.
var (
	tripleOrMoreStars = regexp.MustCompile(`\*{3,}`)
	brokenBoldSeam    = regexp.MustCompile(`\*{2}\s+\*|\*\s+\*{2}`)
	codeSpan          = regexp.MustCompile("`([^`]*)`")
	boldSpan          = regexp.MustCompile(`\*\*(.*?)\*\*|__(.*?)__`)
	italicSpan        = regexp.MustCompile(`\*(.*?)\*|_(.*?)_`)
)

// normalizeEmphasis repairs pathological emphasis runs before extraction:
// escaped asterisks are protected, 3+ consecutive asterisks collapse to a
// bold marker, and split markers like "** *" are rejoined. The collapse is
// re-applied until the text stops changing, so transforms that create new
// runs converge instead of slipping through.
func normalizeEmphasis(text string) string {
	text = strings.ReplaceAll(text, `\*`, escapedAsterisk)

	for i := 0; i < 8; i++ {
		next := tripleOrMoreStars.ReplaceAllString(text, "**")
		next = brokenBoldSeam.ReplaceAllString(next, "**")
		if next == text {
			break
		}
		text = next
	}

	return strings.ReplaceAll(text, escapedAsterisk, "*")
}

// FormatInline converts raw Markdown text into its flat formatted-segment
// sequence. Inline code is extracted first so backtick contents are never
// re-read as emphasis; bold next; italic is resolved independently inside
// bold spans (producing bold+italic) and inside plain spans. Unmatched
// delimiters degrade to literal characters; malformed input never fails.
func FormatInline(text string) []Segment {
	text = normalizeEmphasis(text)

	var out []Segment
	for _, seg := range splitByPattern(text, codeSpan, SegPlain, SegCode) {
		if seg.Kind == SegCode {
			out = append(out, seg)
			continue
		}
		for _, bseg := range splitByPattern(seg.Text, boldSpan, SegPlain, SegBold) {
			inner := SegItalic
			if bseg.Kind == SegBold {
				inner = SegBoldItalic
			}
			out = append(out, splitByPattern(bseg.Text, italicSpan, bseg.Kind, inner)...)
		}
	}
	return out
}

// splitByPattern slices text on pat matches, tagging unmatched stretches
// with outer and match contents with inner. Empty matches are dropped so
// "**" leftovers do not produce empty runs.
func splitByPattern(text string, pat *regexp.Regexp, outer, inner SegmentKind) []Segment {
	var segs []Segment
	last := 0

	for _, m := range pat.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			segs = append(segs, Segment{Kind: outer, Text: text[last:m[0]]})
		}
		// First non-nil capture group holds the span content.
		for g := 1; g*2 < len(m); g++ {
			if m[g*2] >= 0 {
				if content := text[m[g*2]:m[g*2+1]]; content != "" {
					segs = append(segs, Segment{Kind: inner, Text: content})
				}
				break
			}
		}
		last = m[1]
	}

	if last < len(text) {
		segs = append(segs, Segment{Kind: outer, Text: text[last:]})
	}
	return segs
}
