// Package docx reads the parts of a DOCX file that slide conversion
// needs: body paragraphs and tables in document order, numbering
// definitions, and style names.
package docx

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Document represents the main document structure (word/document.xml)
type Document struct {
	XMLName xml.Name `xml:"document"`
	Body    Body     `xml:"body"`
}

// BlockKind discriminates body-level block types.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockTable
)

// Block is one body-level element. Exactly one of Paragraph or Table
// is set, matching Kind.
type Block struct {
	Kind      BlockKind
	Paragraph *Paragraph
	Table     *Table
}

// Body holds the document content as an ordered block sequence.
// Paragraphs and tables stay interleaved as they appear in the file.
type Body struct {
	Blocks []Block
}

// UnmarshalXML decodes body children in order. Elements other than
// w:p and w:tbl (sectPr, bookmarks, ...) are skipped.
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p Paragraph
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, Block{Kind: BlockParagraph, Paragraph: &p})
			case "tbl":
				var tbl Table
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Blocks = append(b.Blocks, Block{Kind: BlockTable, Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// Paragraph represents a document paragraph (w:p)
type Paragraph struct {
	XMLName    xml.Name             `xml:"p"`
	Properties *ParagraphProperties `xml:"pPr"`
	Runs       []Run                `xml:"r"`
	Hyperlinks []Hyperlink          `xml:"hyperlink"`
}

// Text returns the concatenated text of all runs, including runs
// nested in hyperlinks, without trimming.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text())
	}
	for _, h := range p.Hyperlinks {
		for _, r := range h.Runs {
			sb.WriteString(r.Text())
		}
	}
	return sb.String()
}

// AllRuns returns direct runs followed by hyperlink-nested runs.
func (p *Paragraph) AllRuns() []Run {
	if len(p.Hyperlinks) == 0 {
		return p.Runs
	}
	runs := make([]Run, 0, len(p.Runs))
	runs = append(runs, p.Runs...)
	for _, h := range p.Hyperlinks {
		runs = append(runs, h.Runs...)
	}
	return runs
}

// ParagraphProperties contains paragraph-level properties (w:pPr)
type ParagraphProperties struct {
	Style       *StyleRef    `xml:"pStyle"`
	NumPr       *NumberingPr `xml:"numPr"`
	Indentation *Indentation `xml:"ind"`
}

// StyleRef references a style by ID (w:pStyle or w:rStyle)
type StyleRef struct {
	Val string `xml:"val,attr"`
}

// NumberingPr contains list numbering properties (w:numPr)
type NumberingPr struct {
	ILevel *ILevel `xml:"ilvl"`
	NumID  *NumID  `xml:"numId"`
}

// ILevel specifies the list nesting level
type ILevel struct {
	Val int `xml:"val,attr"`
}

// NumID references the numbering definition
type NumID struct {
	Val int `xml:"val,attr"`
}

// Indentation specifies paragraph indentation in twips (w:ind)
type Indentation struct {
	Left    string `xml:"left,attr"`
	Hanging string `xml:"hanging,attr"`
}

// LeftTwips returns the left indent in twentieths of a point, or 0
// when absent or unparseable.
func (i *Indentation) LeftTwips() int {
	if i == nil || i.Left == "" {
		return 0
	}
	n, err := strconv.Atoi(i.Left)
	if err != nil {
		return 0
	}
	return n
}

// Run represents a run of text with formatting (w:r)
type Run struct {
	XMLName    xml.Name       `xml:"r"`
	Properties *RunProperties `xml:"rPr"`
	Texts      []Text         `xml:"t"`
	Tabs       []Tab          `xml:"tab"`
}

// Text returns the run's text content.
func (r *Run) Text() string {
	var sb strings.Builder
	for _, t := range r.Texts {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

// IsBold reports whether the run carries bold formatting.
func (r *Run) IsBold() bool {
	return r.Properties != nil && r.Properties.Bold.IsTrue()
}

// IsItalic reports whether the run carries italic formatting.
func (r *Run) IsItalic() bool {
	return r.Properties != nil && r.Properties.Italic.IsTrue()
}

// IsUnderline reports whether the run carries any underline other
// than an explicit "none".
func (r *Run) IsUnderline() bool {
	if r.Properties == nil || r.Properties.Underline == nil {
		return false
	}
	return r.Properties.Underline.Val != "none" && r.Properties.Underline.Val != ""
}

// SizePt returns the run's explicit font size in points, or 0 when
// no size is set. OOXML stores sizes in half-points.
func (r *Run) SizePt() int {
	if r.Properties == nil || r.Properties.FontSize == nil {
		return 0
	}
	return r.Properties.FontSize.Val / 2
}

// RunProperties contains character-level formatting (w:rPr)
type RunProperties struct {
	Bold      *BoolProp  `xml:"b"`
	Italic    *BoolProp  `xml:"i"`
	Underline *Underline `xml:"u"`
	FontSize  *FontSize  `xml:"sz"`
}

// BoolProp represents a boolean property with optional val attribute
type BoolProp struct {
	Val *bool `xml:"val,attr"`
}

// IsTrue returns whether the property is enabled. Presence of the
// element without a val attribute means true.
func (b *BoolProp) IsTrue() bool {
	if b == nil {
		return false
	}
	if b.Val == nil {
		return true
	}
	return *b.Val
}

// Underline specifies underline formatting
type Underline struct {
	Val string `xml:"val,attr"` // single, double, none, ...
}

// FontSize specifies font size in half-points
type FontSize struct {
	Val int `xml:"val,attr"`
}

// Text contains the actual text content (w:t)
type Text struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"`
	Value   string   `xml:",chardata"`
}

// Tab represents a tab character (w:tab)
type Tab struct {
	XMLName xml.Name `xml:"tab"`
}

// Hyperlink represents a hyperlink in a paragraph; only the nested
// runs matter for conversion.
type Hyperlink struct {
	XMLName xml.Name `xml:"hyperlink"`
	ID      string   `xml:"id,attr"`
	Runs    []Run    `xml:"r"`
}

// Table represents a document table (w:tbl)
type Table struct {
	XMLName xml.Name   `xml:"tbl"`
	Rows    []TableRow `xml:"tr"`
}

// ColumnCount returns the widest row's cell count.
func (t *Table) ColumnCount() int {
	cols := 0
	for _, row := range t.Rows {
		if len(row.Cells) > cols {
			cols = len(row.Cells)
		}
	}
	return cols
}

// TableRow represents a table row (w:tr)
type TableRow struct {
	XMLName xml.Name    `xml:"tr"`
	Cells   []TableCell `xml:"tc"`
}

// TableCell represents a table cell (w:tc)
type TableCell struct {
	XMLName    xml.Name    `xml:"tc"`
	Paragraphs []Paragraph `xml:"p"`
}

// Text returns the cell content with inner paragraphs joined by
// newlines.
func (c *TableCell) Text() string {
	parts := make([]string, 0, len(c.Paragraphs))
	for _, p := range c.Paragraphs {
		parts = append(parts, strings.TrimSpace(p.Text()))
	}
	return strings.Join(parts, "\n")
}
