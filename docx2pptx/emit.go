package docx2pptx

import (
	"fmt"

	gp "github.com/VantageDataChat/GoPPT"
	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/deckforge/word2deck/docx2pptx/model"
)

// Per-zone font sizes in points. Runs carrying an explicit size keep
// it; everything else gets the zone default.
const (
	titleFontSize    = 22
	subtitleFontSize = 18
	contentFontSize  = 12
	tableFontSize    = 10
)

// Vertical budget for stacked content, in inches.
const (
	paraHeight     = 0.3 // estimated height of one content paragraph
	tableRowHeight = 0.3
	tableGap       = 0.2
)

// counterSet tracks ordinal numbering per nesting level within one
// slide. Bumping a level resets all deeper levels.
type counterSet map[int]int

func (c counterSet) next(level int) int {
	c[level]++
	for l := range c {
		if l > level {
			delete(c, l)
		}
	}
	return c[level]
}

// Emitter writes slide records into a presentation using the
// fixed-zone strategy: three text boxes at precomputed coordinates,
// tables stacked beneath the content text. The only state it keeps
// while emitting a slide is that slide's ordinal counters.
type Emitter struct {
	pres *gp.Presentation
	opts *Options
}

// NewEmitter creates an emitter targeting the given presentation.
func NewEmitter(pres *gp.Presentation, opts *Options) *Emitter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Emitter{pres: pres, opts: opts}
}

// EmitSlide creates one new slide for the record. Index 0 is the
// cover slide; recoverable conditions (missing layout, table
// overflow) are logged and skipped, never returned as errors.
func (e *Emitter) EmitSlide(rec *model.SlideRecord, index int) *gp.Slide {
	slide := e.addSlide(index)
	zones := e.opts.Zones

	e.emitTextBox(slide, "Title", zones.Title, func(rt *gp.RichTextShape) {
		tr := rt.CreateTextRun(rec.Title)
		tr.GetFont().SetName(e.opts.FontName).SetSize(titleFontSize).SetBold(true)
	})

	e.emitTextBox(slide, "Subtitle", zones.Subtitle, func(rt *gp.RichTextShape) {
		tr := rt.CreateTextRun(rec.Subtitle)
		tr.GetFont().SetName(e.opts.FontName).SetSize(subtitleFontSize)
	})

	paras := rec.Paragraphs()
	if len(paras) > 0 {
		e.emitTextBox(slide, "Content", zones.Content, func(rt *gp.RichTextShape) {
			e.emitContent(rt, paras)
		})
	}

	e.emitTables(slide, rec, index, len(paras))
	return slide
}

// addSlide creates a slide from the layout named for the index,
// falling back to the template's first layout and finally to a bare
// slide, with a diagnostic rather than a failure.
func (e *Emitter) addSlide(index int) *gp.Slide {
	name := lo.Ternary(index == 0, e.opts.CoverLayout, e.opts.StandardLayout)

	slide, err := e.pres.AddSlideWithLayout(name)
	if err == nil {
		return slide
	}

	if layouts := e.pres.GetSlideLayouts(); len(layouts) > 0 {
		logger.Warnf("layout %q not found, using %q", name, layouts[0].Name)
		if s, ferr := e.pres.AddSlideWithLayout(layouts[0].Name); ferr == nil {
			return s
		}
	}

	logger.Warnf("template has no usable layouts, creating a bare slide")
	return e.pres.CreateSlide()
}

// emitTextBox creates a word-wrapped text box covering the zone and
// hands it to fill.
func (e *Emitter) emitTextBox(slide *gp.Slide, name string, z Zone, fill func(rt *gp.RichTextShape)) {
	rt := slide.CreateRichTextShape()
	rt.SetName(name)
	rt.SetOffsetX(gp.Inch(z.X)).SetOffsetY(gp.Inch(z.Y))
	rt.SetWidth(gp.Inch(z.W)).SetHeight(gp.Inch(z.H))
	rt.SetWordWrap(true)
	fill(rt)
}

// emitContent replays the classified paragraphs into the content
// shape. Bullet and ordinal paragraphs synthesize their prefix on the
// first run; plain paragraphs emit one destination paragraph per run
// so run-level sizes survive.
func (e *Emitter) emitContent(rt *gp.RichTextShape, paras []*model.Paragraph) {
	counters := make(counterSet)
	first := true

	nextParagraph := func() *gp.Paragraph {
		if first {
			first = false
			return rt.GetActiveParagraph()
		}
		return rt.CreateParagraph()
	}

	for _, p := range paras {
		runs := p.Runs
		if len(runs) == 0 {
			runs = []model.Run{{Text: p.Text}}
		}

		switch p.Kind {
		case model.ListBullet, model.ListOrdinal:
			prefix := "• "
			if p.Kind == model.ListOrdinal {
				prefix = fmt.Sprintf("%d. ", counters.next(p.Level))
			}
			para := e.styleParagraph(nextParagraph(), p.Level)
			for i, run := range runs {
				text := run.Text
				if i == 0 {
					text = prefix + text
				}
				tr := para.CreateTextRun(text)
				e.applyFont(tr.GetFont(), run, contentFontSize)
			}
		default:
			for _, run := range runs {
				para := e.styleParagraph(nextParagraph(), 0)
				tr := para.CreateTextRun(run.Text)
				e.applyFont(tr.GetFont(), run, contentFontSize)
			}
		}
	}
}

// styleParagraph applies the shared content paragraph settings.
func (e *Emitter) styleParagraph(para *gp.Paragraph, level int) *gp.Paragraph {
	para.GetAlignment().SetHorizontal(gp.HorizontalCenter)
	para.GetAlignment().Level = level
	para.SetSpaceAfter(3)
	return para
}

// applyFont copies run formatting onto a destination font, forcing
// the configured typeface and defaulting the size per zone.
func (e *Emitter) applyFont(f *gp.Font, run model.Run, defaultSize int) {
	size := run.SizePt
	if size == 0 {
		size = defaultSize
	}
	if size == 0 {
		size = model.DefaultFontSizePt
	}
	f.SetName(e.opts.FontName).SetSize(size)
	f.SetBold(run.Bold).SetItalic(run.Italic)
	if run.Underline {
		f.SetUnderline(gp.UnderlineSingle)
	} else {
		f.SetUnderline(gp.UnderlineNone)
	}
}

// emitTables stacks the record's tables beneath the content text with
// a fixed gap, skipping (with a diagnostic) any table that would
// overflow the content zone.
func (e *Emitter) emitTables(slide *gp.Slide, rec *model.SlideRecord, index, paraCount int) {
	tables := rec.Tables()
	if len(tables) == 0 {
		return
	}

	z := e.opts.Zones.Content
	currentY := z.Y
	if paraCount > 0 {
		textH := paraHeight * float64(paraCount)
		if textH > z.H {
			textH = z.H
		}
		currentY += textH + tableGap
	}

	for ti, t := range tables {
		rows := len(t.Rows)
		cols := t.ColumnCount()
		if rows == 0 || cols == 0 {
			continue
		}

		height := tableRowHeight * float64(rows)
		if currentY+height > z.Bottom() {
			logger.Warnf("slide %d: table %d skipped, would overflow content zone", index+1, ti+1)
			break
		}

		shape := slide.CreateTableShape(rows, cols)
		shape.SetName(fmt.Sprintf("Table %d", ti+1))
		shape.SetPosition(gp.Inch(z.X), gp.Inch(currentY))
		shape.SetSize(gp.Inch(z.W), gp.Inch(height))

		for i, row := range t.Rows {
			for j, text := range row {
				cell := shape.GetCell(i, j)
				if cell == nil {
					continue
				}
				cell.SetText(text)
				e.styleCell(cell, i == 0)
			}
		}

		currentY += height + tableGap
	}
}

// styleCell applies the table typography; the header row is bold.
func (e *Emitter) styleCell(cell *gp.TableCell, header bool) {
	for _, para := range cell.GetParagraphs() {
		for _, el := range para.GetElements() {
			if tr, ok := el.(*gp.TextRun); ok {
				f := tr.GetFont()
				f.SetName(e.opts.FontName).SetSize(tableFontSize)
				f.SetBold(header)
			}
		}
	}
}
