package styles

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/ofc/sharedTypes"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// Sentinel errors distinguishing the two ways a template can be unusable.
var (
	// ErrTemplateNotFound indicates the template file does not exist or
	// cannot be stat'd.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateCorrupt indicates the template exists but cannot be
	// parsed as a Word document package.
	ErrTemplateCorrupt = errors.New("template corrupt")
)

// Category classifies what role a style plays in rendering.
type Category int

const (
	CategoryOther Category = iota
	CategoryHeading
	CategoryBullet
	CategoryNumbering
	CategoryTableHeader
	CategoryTableBody
	CategoryTableTotal
)

// FontInfo carries the font attributes a style declares. Each attribute has
// a presence flag so renderers can tell "not bold" from "bold unspecified,
// inherit from the base style".
type FontInfo struct {
	Name      string
	Size      float64 // points
	Bold      bool
	Italic    bool
	Underline bool

	HasName      bool
	HasSize      bool
	HasBold      bool
	HasItalic    bool
	HasUnderline bool
}

// Descriptor describes one template style: its display name, its internal
// style ID, its rendering role, the nesting level for list styles, and its
// declared font attributes.
type Descriptor struct {
	Name     string
	StyleID  string
	Category Category
	Level    int
	Font     FontInfo
}

// Catalog is the style lookup built from one opened template. It owns the
// opened document so the converter can assemble output into the same
// package, preserving the template's headers, footers, and theme parts.
type Catalog struct {
	doc      *document.Document
	byName   map[string]Descriptor
	headings map[int]string // heading level marker -> style name
	bullets  []string       // bullet style names by nesting level
	numbers  []string       // numbered style names by nesting level
	table    TableInfo
	log      *slog.Logger
}

// Load opens the template at path and builds its style catalog. A missing
// file reports ErrTemplateNotFound; a file unioffice cannot parse reports
// ErrTemplateCorrupt.
func Load(path string, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = slog.Default()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}

	doc, err := document.OpenTemplate(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateCorrupt, path, err)
	}

	c := &Catalog{
		doc:      doc,
		byName:   make(map[string]Descriptor),
		headings: make(map[int]string),
		log:      log,
	}
	c.build()
	return c, nil
}

// Document returns the opened template; the assembler writes output
// paragraphs into it.
func (c *Catalog) Document() *document.Document {
	return c.doc
}

// build enumerates the template styles and classifies them.
func (c *Catalog) build() {
	var names []string
	for _, s := range c.doc.Styles.Styles() {
		d := Descriptor{
			Name:    s.Name(),
			StyleID: s.StyleID(),
			Font:    fontInfo(s.X()),
		}
		if d.Name == "" {
			continue
		}
		names = append(names, d.Name)
		c.byName[d.Name] = d
	}

	for level, name := range headingInventory(names) {
		c.headings[level] = name
		d := c.byName[name]
		d.Category = CategoryHeading
		d.Level = level
		c.byName[name] = d
	}

	c.bullets, c.numbers = classifyListStyles(names)
	for level, name := range c.bullets {
		d := c.byName[name]
		d.Category = CategoryBullet
		d.Level = level
		c.byName[name] = d
	}
	for level, name := range c.numbers {
		d := c.byName[name]
		d.Category = CategoryNumbering
		d.Level = level
		c.byName[name] = d
	}

	c.table = classifyTableStyles(c.doc)
}

// Resolve returns the descriptor for a style name, or a Normal-equivalent
// fallback with a warning when the template does not define it. It never
// fails; style absence degrades, it does not abort.
func (c *Catalog) Resolve(name string) Descriptor {
	if d, ok := c.byName[name]; ok {
		return d
	}
	c.log.Warn("style not in template, falling back to Normal", "style", name)
	if d, ok := c.byName["Normal"]; ok {
		return d
	}
	return Descriptor{Name: "Normal", StyleID: "Normal"}
}

// Has reports whether the template defines the named style.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Table returns the classified data-table styling.
func (c *Catalog) Table() TableInfo {
	return c.table
}

// BulletStyle returns the template's bullet list style for a nesting level,
// or ok=false when the template has none at that level and the renderer
// should fall back to glyph-prefixed normal paragraphs.
func (c *Catalog) BulletStyle(level int) (string, bool) {
	if level < len(c.bullets) {
		return c.bullets[level], true
	}
	return "", false
}

// NumberStyle is BulletStyle for numbered list styles.
func (c *Catalog) NumberStyle(level int) (string, bool) {
	if level < len(c.numbers) {
		return c.numbers[level], true
	}
	return "", false
}

// HeadingStyle maps a Markdown heading level (1-6) through the resolution
// strategy to a template style name. The name may be absent from the
// template; Resolve handles the fallback.
func (c *Catalog) HeadingStyle(level int, res Resolution) string {
	marker := headingMarker(level, res)
	if name, ok := c.headings[marker]; ok {
		return name
	}
	return fmt.Sprintf("Heading %d", marker)
}

// fontInfo extracts the declared run properties of a raw style element.
// Sizes are stored in half-points in the document package.
func fontInfo(st *wml.CT_Style) FontInfo {
	var f FontInfo
	if st == nil || st.RPr == nil {
		return f
	}
	rpr := st.RPr

	if rpr.RFonts != nil && rpr.RFonts.AsciiAttr != nil {
		f.Name = *rpr.RFonts.AsciiAttr
		f.HasName = true
	}
	if rpr.Sz != nil {
		if v := rpr.Sz.ValAttr.ST_UnsignedDecimalNumber; v != nil {
			f.Size = float64(*v) / 2
			f.HasSize = true
		}
	}
	if rpr.B != nil {
		f.Bold = onOff(rpr.B)
		f.HasBold = true
	}
	if rpr.I != nil {
		f.Italic = onOff(rpr.I)
		f.HasItalic = true
	}
	if rpr.U != nil {
		f.Underline = rpr.U.ValAttr != wml.ST_UnderlineNone
		f.HasUnderline = true
	}
	return f
}

// onOff evaluates a wml on/off toggle. A present element with no val attr
// means on.
func onOff(e *wml.CT_OnOff) bool {
	if e == nil {
		return false
	}
	if e.ValAttr == nil {
		return true
	}
	if e.ValAttr.Bool != nil {
		return *e.ValAttr.Bool
	}
	return e.ValAttr.ST_OnOff1 != sharedTypes.ST_OnOff1Off
}
