// Package model holds the in-memory representation of a deck between
// segmentation and emission: slide records with their ordered content
// blocks and run-level formatting.
package model

// ListKind classifies how a content paragraph should be rendered.
type ListKind int

const (
	// ListNone is a plain paragraph.
	ListNone ListKind = iota
	// ListBullet renders with a bullet glyph.
	ListBullet
	// ListOrdinal renders with a sequential number.
	ListOrdinal
)

// DefaultFontSizePt applies to runs with no explicit size when the
// destination zone does not override it.
const DefaultFontSizePt = 14

// Run is one formatted span of text.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	// SizePt is the explicit font size in points; 0 means unset.
	SizePt int
}

// Paragraph is a classified content paragraph.
type Paragraph struct {
	Text  string
	Kind  ListKind
	Level int
	Runs  []Run
}

// Table is a captured source table as plain cell text.
type Table struct {
	Rows [][]string
}

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// ContentBlock is a tagged variant: exactly one of Paragraph or Table
// is non-nil.
type ContentBlock struct {
	Paragraph *Paragraph
	Table     *Table
}

// SlideRecord is one output slide's content before emission.
type SlideRecord struct {
	Title    string
	Subtitle string
	Blocks   []ContentBlock
}

// Paragraphs returns the record's paragraph blocks in order.
func (r *SlideRecord) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range r.Blocks {
		if b.Paragraph != nil {
			out = append(out, b.Paragraph)
		}
	}
	return out
}

// Tables returns the record's table blocks in order.
func (r *SlideRecord) Tables() []*Table {
	var out []*Table
	for _, b := range r.Blocks {
		if b.Table != nil {
			out = append(out, b.Table)
		}
	}
	return out
}
