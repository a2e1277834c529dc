package docx2pptx

import (
	"strings"

	"github.com/deckforge/word2deck/docx2pptx/docx"
	"github.com/deckforge/word2deck/docx2pptx/model"
)

// twipsPerLevel is one indent step: 0.25 inch at 1440 twips/inch.
const twipsPerLevel = 360

// Classifier determines list kind, nesting level and run formatting
// for a source paragraph. It holds no per-document mutable state, so
// classification is a pure function of the paragraph.
type Classifier struct {
	numbering *docx.Numbering
	styles    *docx.Styles
}

// NewClassifier creates a classifier over the document's numbering
// definitions and styles.
func NewClassifier(numbering *docx.Numbering, styles *docx.Styles) *Classifier {
	if numbering == nil {
		numbering = &docx.Numbering{}
	}
	if styles == nil {
		styles = &docx.Styles{}
	}
	return &Classifier{numbering: numbering, styles: styles}
}

// Classify builds the model paragraph: text, list kind, level and
// runs.
func (c *Classifier) Classify(p *docx.Paragraph) *model.Paragraph {
	kind, level := c.kindAndLevel(p)
	return &model.Paragraph{
		Text:  strings.TrimSpace(p.Text()),
		Kind:  kind,
		Level: level,
		Runs:  extractRuns(p),
	}
}

// kindAndLevel resolves the list kind and nesting level. Structured
// numbering metadata wins; style-name substrings are the fallback.
// The level comes from the explicit ilvl when present, otherwise from
// the left indent quantized in 0.25-inch steps.
func (c *Classifier) kindAndLevel(p *docx.Paragraph) (model.ListKind, int) {
	props := p.Properties

	level := 0
	if props != nil {
		level = props.Indentation.LeftTwips() / twipsPerLevel
		if level < 0 {
			level = 0
		}
	}

	if props == nil {
		return model.ListNone, level
	}

	if props.NumPr != nil && props.NumPr.NumID != nil {
		numID := props.NumPr.NumID.Val
		ilvl := 0
		if props.NumPr.ILevel != nil {
			ilvl = props.NumPr.ILevel.Val
			level = ilvl
		}

		switch {
		case c.numbering.IsBullet(numID, ilvl):
			return model.ListBullet, level
		case c.numbering.IsOrdinal(numID, ilvl):
			return model.ListOrdinal, level
		default:
			// numPr present but the numbering part has no usable
			// definition for it; Word defaults the low numIds to
			// bullets.
			return model.ListBullet, level
		}
	}

	if props.Style != nil {
		name := c.styles.NameOf(props.Style.Val)
		switch {
		case strings.Contains(name, "bullet"), strings.Contains(name, "list"):
			return model.ListBullet, level
		case strings.Contains(name, "number"):
			return model.ListOrdinal, level
		}
	}

	return model.ListNone, level
}

// extractRuns captures text and formatting flags for each non-empty
// run. Unset booleans default to false; unset sizes stay 0 so the
// emitter can apply its zone default.
func extractRuns(p *docx.Paragraph) []model.Run {
	var runs []model.Run
	for _, r := range p.AllRuns() {
		text := r.Text()
		if text == "" {
			continue
		}
		runs = append(runs, model.Run{
			Text:      text,
			Bold:      r.IsBold(),
			Italic:    r.IsItalic(),
			Underline: r.IsUnderline(),
			SizePt:    r.SizePt(),
		})
	}
	return runs
}
