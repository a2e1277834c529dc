package docx

import (
	"encoding/xml"
	"strings"
)

// Numbering represents the numbering definitions file
// (word/numbering.xml).
type Numbering struct {
	XMLName      xml.Name      `xml:"numbering"`
	AbstractNums []AbstractNum `xml:"abstractNum"`
	Nums         []Num         `xml:"num"`
}

// AbstractNum defines an abstract numbering definition
type AbstractNum struct {
	XMLName       xml.Name      `xml:"abstractNum"`
	AbstractNumID int           `xml:"abstractNumId,attr"`
	Levels        []NumberLevel `xml:"lvl"`
}

// NumberLevel defines a numbering level
type NumberLevel struct {
	XMLName xml.Name `xml:"lvl"`
	ILevel  int      `xml:"ilvl,attr"`
	NumFmt  *NumFmt  `xml:"numFmt"`
}

// NumFmt specifies the number format
type NumFmt struct {
	Val string `xml:"val,attr"` // decimal, bullet, lowerLetter, upperLetter, lowerRoman, upperRoman, none
}

// Num maps a numId to an abstractNumId
type Num struct {
	XMLName       xml.Name          `xml:"num"`
	NumID         int               `xml:"numId,attr"`
	AbstractNumID *AbstractNumIDRef `xml:"abstractNumId"`
}

// AbstractNumIDRef references an abstract numbering definition
type AbstractNumIDRef struct {
	Val int `xml:"val,attr"`
}

// GetAbstractNum returns the abstract numbering definition for a numId
func (n *Numbering) GetAbstractNum(numID int) *AbstractNum {
	var abstractNumID int
	found := false
	for _, num := range n.Nums {
		if num.NumID == numID && num.AbstractNumID != nil {
			abstractNumID = num.AbstractNumID.Val
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	for i := range n.AbstractNums {
		if n.AbstractNums[i].AbstractNumID == abstractNumID {
			return &n.AbstractNums[i]
		}
	}
	return nil
}

// GetLevel returns the level definition for a numId and level
func (n *Numbering) GetLevel(numID, level int) *NumberLevel {
	abstractNum := n.GetAbstractNum(numID)
	if abstractNum == nil {
		return nil
	}

	for i := range abstractNum.Levels {
		if abstractNum.Levels[i].ILevel == level {
			return &abstractNum.Levels[i]
		}
	}
	return nil
}

// Format returns the numFmt value for a numId and level, or "" when
// the definition is absent.
func (n *Numbering) Format(numID, level int) string {
	lvl := n.GetLevel(numID, level)
	if lvl == nil || lvl.NumFmt == nil {
		return ""
	}
	return lvl.NumFmt.Val
}

// IsBullet checks if a numbering level is a bullet list
func (n *Numbering) IsBullet(numID, level int) bool {
	return n.Format(numID, level) == "bullet"
}

// IsOrdinal checks if a numbering level is a sequentially numbered
// list (decimal, letter or roman formats).
func (n *Numbering) IsOrdinal(numID, level int) bool {
	switch n.Format(numID, level) {
	case "decimal", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman":
		return true
	}
	return false
}

// Styles represents the styles definition file (word/styles.xml)
type Styles struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []StyleDef `xml:"style"`
}

// StyleDef defines a single style
type StyleDef struct {
	XMLName xml.Name   `xml:"style"`
	Type    string     `xml:"type,attr"`
	StyleID string     `xml:"styleId,attr"`
	Name    *StyleName `xml:"name"`
}

// StyleName contains the style's display name
type StyleName struct {
	Val string `xml:"val,attr"`
}

// GetStyle returns a style by its ID
func (s *Styles) GetStyle(id string) *StyleDef {
	for i := range s.Styles {
		if s.Styles[i].StyleID == id {
			return &s.Styles[i]
		}
	}
	return nil
}

// NameOf returns a style's lower-cased display name, falling back to
// the lower-cased style ID when the style or its name is missing.
func (s *Styles) NameOf(styleID string) string {
	style := s.GetStyle(styleID)
	if style != nil && style.Name != nil && style.Name.Val != "" {
		return strings.ToLower(style.Name.Val)
	}
	return strings.ToLower(styleID)
}
