package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parser reads the parts of a DOCX archive used by conversion.
type Parser struct {
	files map[string]*zip.File

	// Cached parsed content
	document  *Document
	styles    *Styles
	numbering *Numbering
}

// NewParser creates a parser from byte data
func NewParser(data []byte) (*Parser, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &Parser{files: make(map[string]*zip.File)}
	for _, f := range zipReader.File {
		p.files[f.Name] = f
	}
	return p, nil
}

// NewParserFromFile creates a parser from a file path
func NewParserFromFile(path string) (*Parser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return NewParser(data)
}

// Parse validates the DOCX structure
func (p *Parser) Parse() error {
	if _, ok := p.files["word/document.xml"]; !ok {
		return fmt.Errorf("not a valid DOCX file: missing word/document.xml")
	}
	return nil
}

// GetDocument returns the parsed document content
func (p *Parser) GetDocument() (*Document, error) {
	if p.document != nil {
		return p.document, nil
	}

	doc := &Document{}
	if err := p.readXML("word/document.xml", doc); err != nil {
		return nil, err
	}

	p.document = doc
	return doc, nil
}

// Blocks returns the document's body-level blocks in document order.
func (p *Parser) Blocks() ([]Block, error) {
	doc, err := p.GetDocument()
	if err != nil {
		return nil, err
	}
	return doc.Body.Blocks, nil
}

// GetStyles returns the parsed styles. The styles part is optional.
func (p *Parser) GetStyles() (*Styles, error) {
	if p.styles != nil {
		return p.styles, nil
	}

	styles := &Styles{}
	if err := p.readXML("word/styles.xml", styles); err != nil {
		return &Styles{}, nil
	}

	p.styles = styles
	return styles, nil
}

// GetNumbering returns the parsed numbering definitions. The
// numbering part is optional.
func (p *Parser) GetNumbering() (*Numbering, error) {
	if p.numbering != nil {
		return p.numbering, nil
	}

	numbering := &Numbering{}
	if err := p.readXML("word/numbering.xml", numbering); err != nil {
		return &Numbering{}, nil
	}

	p.numbering = numbering
	return numbering, nil
}

// readXML reads and parses an XML file from the ZIP archive
func (p *Parser) readXML(filename string, v interface{}) error {
	f, ok := p.files[filename]
	if !ok {
		return fmt.Errorf("file not found: %s", filename)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", filename, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	if err := unmarshalWordXML(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}
	return nil
}

// unmarshalWordXML strips the Word namespace prefixes from element
// and attribute names, then decodes into v. Word XML nests everything
// under the "w" namespace; stripping it lets the element structs use
// plain local names.
func unmarshalWordXML(data []byte, v interface{}) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity

	var buf bytes.Buffer
	encoder := xml.NewEncoder(&buf)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		// CharData must be copied: the decoder reuses its internal
		// buffer between Token() calls.
		switch t := tok.(type) {
		case xml.StartElement:
			t.Name.Local = stripNamespacePrefix(t.Name.Local)
			t.Name.Space = ""
			for i := range t.Attr {
				t.Attr[i].Name.Local = stripNamespacePrefix(t.Attr[i].Name.Local)
				t.Attr[i].Name.Space = ""
			}
			tok = t
		case xml.EndElement:
			t.Name.Local = stripNamespacePrefix(t.Name.Local)
			t.Name.Space = ""
			tok = t
		case xml.CharData:
			tok = xml.CharData(append([]byte(nil), t...))
		case xml.Comment:
			tok = xml.Comment(append([]byte(nil), t...))
		case xml.ProcInst:
			t.Inst = append([]byte(nil), t.Inst...)
			tok = t
		case xml.Directive:
			tok = xml.Directive(append([]byte(nil), t...))
		}

		if err := encoder.EncodeToken(tok); err != nil {
			return err
		}
	}
	if err := encoder.Flush(); err != nil {
		return err
	}

	return xml.Unmarshal(buf.Bytes(), v)
}

// stripNamespacePrefix removes a namespace prefix from an element name
func stripNamespacePrefix(name string) string {
	if idx := strings.Index(name, ":"); idx != -1 {
		return name[idx+1:]
	}
	return name
}
