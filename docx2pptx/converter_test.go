package docx2pptx

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	gp "github.com/VantageDataChat/GoPPT"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/word2deck/docx2pptx/model"
)

// buildDocx assembles a minimal DOCX with the given document body and
// optional numbering part.
func buildDocx(t *testing.T, body, numbering string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	write := func(name, content string) {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)
	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>`+body+`</w:body>
</w:document>`)
	if numbering != "" {
		write("word/numbering.xml", `<?xml version="1.0" encoding="UTF-8"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`+numbering+`</w:numbering>`)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func para(text string) string {
	return `<w:p><w:r><w:t>` + text + `</w:t></w:r></w:p>`
}

const testDeckBody = `
  <w:p><w:r><w:t>SLIDE 1</w:t></w:r></w:p>
  <w:p><w:r><w:t>Titre : Overview</w:t></w:r></w:p>
  <w:p><w:r><w:t>Sous-titre / Message clé : The big picture</w:t></w:r></w:p>
  <w:p>
    <w:pPr><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr>
    <w:r><w:t>A bullet point</w:t></w:r>
  </w:p>
  <w:p><w:r><w:t>SLIDE 2</w:t></w:r></w:p>
  <w:p><w:r><w:t>Titre : Numbers</w:t></w:r></w:p>
  <w:tbl>
    <w:tr>
      <w:tc><w:p><w:r><w:t>Metric</w:t></w:r></w:p></w:tc>
      <w:tc><w:p><w:r><w:t>Value</w:t></w:r></w:p></w:tc>
    </w:tr>
    <w:tr>
      <w:tc><w:p><w:r><w:t>Uptime</w:t></w:r></w:p></w:tc>
      <w:tc><w:p><w:r><w:t>99.9</w:t></w:r></w:p></w:tc>
    </w:tr>
  </w:tbl>`

const testDeckNumbering = `
  <w:abstractNum w:abstractNumId="0">
    <w:lvl w:ilvl="0"><w:numFmt w:val="bullet"/></w:lvl>
  </w:abstractNum>
  <w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>`

func TestParseEndToEnd(t *testing.T) {
	data := buildDocx(t, testDeckBody, testDeckNumbering)

	records, err := New().Parse(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Overview", records[0].Title)
	assert.Equal(t, "The big picture", records[0].Subtitle)
	require.Len(t, records[0].Paragraphs(), 1)
	assert.Equal(t, model.ListBullet, records[0].Paragraphs()[0].Kind)

	assert.Equal(t, "Numbers", records[1].Title)
	require.Len(t, records[1].Tables(), 1)
	assert.Equal(t, "Metric", records[1].Tables()[0].Rows[0][0])
}

func TestParseRejectsCorruptInput(t *testing.T) {
	_, err := New().Parse([]byte("garbage"))
	assert.Error(t, err)
}

func TestConvertFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "deck.docx")
	output := filepath.Join(dir, "deck.pptx")
	require.NoError(t, os.WriteFile(input, buildDocx(t, testDeckBody, testDeckNumbering), 0644))

	var parsedSlides int
	var created []int
	c := New(
		WithDocumentParsedCallback(func(n int) { parsedSlides = n }),
		WithSlideCreatedCallback(func(index, total int) { created = append(created, index) }),
	)
	require.NoError(t, c.ConvertFile(input, output))

	assert.Equal(t, 2, parsedSlides)
	assert.Equal(t, []int{0, 1}, created)

	pres, err := gp.Open(output)
	require.NoError(t, err)
	assert.Equal(t, 2, pres.GetSlideCount())
}

func TestConvertFileNoMarkersWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plain.docx")
	output := filepath.Join(dir, "plain.pptx")

	body := para("just an ordinary document") + para("with no structure at all")
	require.NoError(t, os.WriteFile(input, buildDocx(t, body, ""), 0644))

	require.NoError(t, New().ConvertFile(input, output))

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "no deck should be written without markers")
}

func TestConvertFileMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := New().ConvertFile(filepath.Join(dir, "absent.docx"), filepath.Join(dir, "out.pptx"))
	assert.Error(t, err)
}

func TestConvertWithoutTemplateDropsDefaultSlide(t *testing.T) {
	body := para("SLIDE 1") + para("Titre : First") +
		para("SLIDE 2") + para("Titre : Second")

	c := New()
	records, err := c.Parse(buildDocx(t, body, ""))
	require.NoError(t, err)
	require.Len(t, records, 2)

	pres, err := c.Convert(records)
	require.NoError(t, err)
	require.Equal(t, 2, pres.GetSlideCount(), "the blank presentation's default slide must not survive")

	// The cover record lands on slide 0, not displaced by a leftover
	// blank slide.
	slide, err := pres.GetSlide(0)
	require.NoError(t, err)
	title := firstRun(t, richTextByName(t, slide, "Title").GetActiveParagraph())
	assert.Equal(t, "First", title.GetText())
}

func TestConvertUsesCustomZones(t *testing.T) {
	zones := DefaultZones()
	zones.Title.Y = 1.5

	data := buildDocx(t, para("SLIDE 1")+para("Titre : Moved"), "")
	c := New(WithZones(zones))

	records, err := c.Parse(data)
	require.NoError(t, err)

	pres, err := c.Convert(records)
	require.NoError(t, err)
	require.Equal(t, 1, pres.GetSlideCount())

	slide, err := pres.GetSlide(0)
	require.NoError(t, err)
	title := richTextByName(t, slide, "Title")
	assert.Equal(t, gp.Inch(1.5), title.GetOffsetY())
}
