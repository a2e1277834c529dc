package docx2pptx

import (
	"fmt"
	"strings"
	"testing"

	gp "github.com/VantageDataChat/GoPPT"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/word2deck/docx2pptx/model"
)

func emitRecords(t *testing.T, records ...*model.SlideRecord) []*gp.Slide {
	t.Helper()
	pres := gp.New()
	e := NewEmitter(pres, DefaultOptions())

	slides := make([]*gp.Slide, 0, len(records))
	for i, rec := range records {
		slides = append(slides, e.EmitSlide(rec, i))
	}
	return slides
}

func shapeByName(t *testing.T, slide *gp.Slide, name string) gp.Shape {
	t.Helper()
	for _, sh := range slide.GetShapes() {
		if sh.GetName() == name {
			return sh
		}
	}
	return nil
}

func richTextByName(t *testing.T, slide *gp.Slide, name string) *gp.RichTextShape {
	t.Helper()
	sh := shapeByName(t, slide, name)
	require.NotNil(t, sh, "shape %q not found", name)
	rt, ok := sh.(*gp.RichTextShape)
	require.True(t, ok, "shape %q is not a text shape", name)
	return rt
}

// paragraphTexts flattens each destination paragraph to its
// concatenated run text.
func paragraphTexts(rt *gp.RichTextShape) []string {
	var out []string
	for _, para := range rt.GetParagraphs() {
		var sb strings.Builder
		for _, el := range para.GetElements() {
			if tr, ok := el.(*gp.TextRun); ok {
				sb.WriteString(tr.GetText())
			}
		}
		out = append(out, sb.String())
	}
	return out
}

func firstRun(t *testing.T, para *gp.Paragraph) *gp.TextRun {
	t.Helper()
	for _, el := range para.GetElements() {
		if tr, ok := el.(*gp.TextRun); ok {
			return tr
		}
	}
	t.Fatal("paragraph has no text run")
	return nil
}

func TestEmitZonePlacement(t *testing.T) {
	slides := emitRecords(t, &model.SlideRecord{Title: "T", Subtitle: "S"})
	slide := slides[0]

	zones := DefaultZones()
	title := richTextByName(t, slide, "Title")
	assert.Equal(t, gp.Inch(zones.Title.X), title.GetOffsetX())
	assert.Equal(t, gp.Inch(zones.Title.Y), title.GetOffsetY())
	assert.Equal(t, gp.Inch(zones.Title.W), title.GetWidth())
	assert.Equal(t, gp.Inch(zones.Title.H), title.GetHeight())
	assert.True(t, title.GetWordWrap())

	subtitle := richTextByName(t, slide, "Subtitle")
	assert.Equal(t, gp.Inch(zones.Subtitle.Y), subtitle.GetOffsetY())

	// No content paragraphs, no content box.
	assert.Nil(t, shapeByName(t, slide, "Content"))
}

func TestEmitTitleAndSubtitleFormatting(t *testing.T) {
	slides := emitRecords(t, &model.SlideRecord{Title: "Big Title", Subtitle: "Key message"})
	slide := slides[0]

	title := firstRun(t, richTextByName(t, slide, "Title").GetActiveParagraph())
	assert.Equal(t, "Big Title", title.GetText())
	assert.Equal(t, "Arial", title.GetFont().Name)
	assert.Equal(t, 22, title.GetFont().Size)
	assert.True(t, title.GetFont().Bold)

	subtitle := firstRun(t, richTextByName(t, slide, "Subtitle").GetActiveParagraph())
	assert.Equal(t, "Key message", subtitle.GetText())
	assert.Equal(t, 18, subtitle.GetFont().Size)
	assert.False(t, subtitle.GetFont().Bold)
}

func TestEmitBulletPrefixOnFirstRunOnly(t *testing.T) {
	rec := &model.SlideRecord{Blocks: []model.ContentBlock{{
		Paragraph: &model.Paragraph{
			Kind: model.ListBullet,
			Runs: []model.Run{
				{Text: "first"},
				{Text: " second", Bold: true},
			},
		},
	}}}

	slides := emitRecords(t, rec)
	content := richTextByName(t, slides[0], "Content")

	texts := paragraphTexts(content)
	require.Len(t, texts, 1, "one source list item is one destination paragraph")
	assert.Equal(t, "• first second", texts[0])

	para := content.GetParagraphs()[0]
	var runs []*gp.TextRun
	for _, el := range para.GetElements() {
		if tr, ok := el.(*gp.TextRun); ok {
			runs = append(runs, tr)
		}
	}
	require.Len(t, runs, 2)
	assert.False(t, runs[0].GetFont().Bold)
	assert.True(t, runs[1].GetFont().Bold)
	assert.Equal(t, 12, runs[0].GetFont().Size)
}

func TestEmitPlainParagraphPerRun(t *testing.T) {
	rec := &model.SlideRecord{Blocks: []model.ContentBlock{{
		Paragraph: &model.Paragraph{
			Kind: model.ListNone,
			Runs: []model.Run{
				{Text: "heading", SizePt: 16},
				{Text: "body"},
			},
		},
	}}}

	slides := emitRecords(t, rec)
	content := richTextByName(t, slides[0], "Content")

	texts := paragraphTexts(content)
	assert.Equal(t, []string{"heading", "body"}, texts)

	paras := content.GetParagraphs()
	assert.Equal(t, 16, firstRun(t, paras[0]).GetFont().Size)
	assert.Equal(t, 12, firstRun(t, paras[1]).GetFont().Size, "zone default applies when the run has no size")
}

func ordinalPara(level int, text string) model.ContentBlock {
	return model.ContentBlock{Paragraph: &model.Paragraph{
		Kind:  model.ListOrdinal,
		Level: level,
		Runs:  []model.Run{{Text: text}},
	}}
}

func TestEmitOrdinalCounters(t *testing.T) {
	rec := &model.SlideRecord{Blocks: []model.ContentBlock{
		ordinalPara(0, "alpha"),
		ordinalPara(0, "beta"),
		ordinalPara(1, "beta-one"),
		ordinalPara(1, "beta-two"),
		ordinalPara(0, "gamma"),
		ordinalPara(1, "gamma-one"),
	}}

	slides := emitRecords(t, rec)
	texts := paragraphTexts(richTextByName(t, slides[0], "Content"))

	assert.Equal(t, []string{
		"1. alpha",
		"2. beta",
		"1. beta-one",
		"2. beta-two",
		"3. gamma",
		"1. gamma-one", // deeper counter restarted by the level-0 bump
	}, texts)
}

func TestEmitOrdinalCountersResetPerSlide(t *testing.T) {
	recA := &model.SlideRecord{Blocks: []model.ContentBlock{
		ordinalPara(0, "a1"), ordinalPara(0, "a2"),
	}}
	recB := &model.SlideRecord{Blocks: []model.ContentBlock{
		ordinalPara(0, "b1"),
	}}

	slides := emitRecords(t, recA, recB)
	assert.Equal(t,
		[]string{"1. a1", "2. a2"},
		paragraphTexts(richTextByName(t, slides[0], "Content")))
	assert.Equal(t,
		[]string{"1. b1"},
		paragraphTexts(richTextByName(t, slides[1], "Content")))
}

func TestEmitIndentLevelCarriesToAlignment(t *testing.T) {
	rec := &model.SlideRecord{Blocks: []model.ContentBlock{
		{Paragraph: &model.Paragraph{
			Kind:  model.ListBullet,
			Level: 2,
			Runs:  []model.Run{{Text: "deep"}},
		}},
	}}

	slides := emitRecords(t, rec)
	para := richTextByName(t, slides[0], "Content").GetParagraphs()[0]
	assert.Equal(t, 2, para.GetAlignment().Level)
	assert.Equal(t, 3, para.GetSpaceAfter())
}

func TestEmitTableBelowContent(t *testing.T) {
	rec := &model.SlideRecord{Blocks: []model.ContentBlock{
		{Paragraph: &model.Paragraph{Kind: model.ListNone, Runs: []model.Run{{Text: "intro"}}}},
		{Table: &model.Table{Rows: [][]string{
			{"Name", "Value"},
			{"a", "1"},
			{"b", "2"},
		}}},
	}}

	slides := emitRecords(t, rec)
	sh := shapeByName(t, slides[0], "Table 1")
	require.NotNil(t, sh)
	tbl, ok := sh.(*gp.TableShape)
	require.True(t, ok)

	assert.Equal(t, 3, tbl.GetNumRows())
	assert.Equal(t, 2, tbl.GetNumCols())

	z := DefaultZones().Content
	wantY := z.Y + paraHeight*1 + tableGap
	assert.Equal(t, gp.Inch(wantY), tbl.GetOffsetY())
	assert.Equal(t, gp.Inch(z.X), tbl.GetOffsetX())

	header := firstRun(t, tbl.GetCell(0, 0).GetParagraphs()[0])
	assert.Equal(t, "Name", header.GetText())
	assert.True(t, header.GetFont().Bold)
	assert.Equal(t, 10, header.GetFont().Size)

	body := firstRun(t, tbl.GetCell(1, 1).GetParagraphs()[0])
	assert.Equal(t, "1", body.GetText())
	assert.False(t, body.GetFont().Bold)
}

func TestEmitTableOverflowSkipped(t *testing.T) {
	z := DefaultZones().Content
	tooManyRows := int(z.H/tableRowHeight) + 2

	var rows [][]string
	for i := 0; i < tooManyRows; i++ {
		rows = append(rows, []string{fmt.Sprintf("row %d", i)})
	}

	rec := &model.SlideRecord{Blocks: []model.ContentBlock{
		{Table: &model.Table{Rows: [][]string{{"fits"}}}},
		{Table: &model.Table{Rows: rows}},
		{Table: &model.Table{Rows: [][]string{{"after overflow"}}}},
	}}

	slides := emitRecords(t, rec)

	assert.NotNil(t, shapeByName(t, slides[0], "Table 1"))
	assert.Nil(t, shapeByName(t, slides[0], "Table 2"), "oversized table is skipped")
	assert.Nil(t, shapeByName(t, slides[0], "Table 3"), "emission stops at the first overflow")
}

func TestEmitRaggedTableRows(t *testing.T) {
	rec := &model.SlideRecord{Blocks: []model.ContentBlock{
		{Table: &model.Table{Rows: [][]string{
			{"a", "b", "c"},
			{"d"},
		}}},
	}}

	slides := emitRecords(t, rec)
	tbl := shapeByName(t, slides[0], "Table 1").(*gp.TableShape)

	assert.Equal(t, 3, tbl.GetNumCols(), "widest row sets the column count")
	assert.Equal(t, "d", firstRun(t, tbl.GetCell(1, 0).GetParagraphs()[0]).GetText())
}

func TestEmitFallsBackWithoutLayouts(t *testing.T) {
	// A blank presentation has no layouts at all; emission still
	// produces slides.
	pres := gp.New()
	e := NewEmitter(pres, DefaultOptions())

	before := pres.GetSlideCount()
	slide := e.EmitSlide(&model.SlideRecord{Title: "x"}, 0)
	require.NotNil(t, slide)
	assert.Equal(t, before+1, pres.GetSlideCount())
}
