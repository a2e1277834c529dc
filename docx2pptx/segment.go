package docx2pptx

import (
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/deckforge/word2deck/docx2pptx/docx"
	"github.com/deckforge/word2deck/docx2pptx/model"
)

// Segmenter partitions the document's block sequence into slide
// records using the label prefix grammar.
type Segmenter struct {
	labels     Labels
	classifier *Classifier
}

// NewSegmenter creates a segmenter with the given labels and
// classifier.
func NewSegmenter(labels Labels, classifier *Classifier) *Segmenter {
	return &Segmenter{labels: labels, classifier: classifier}
}

// Segment walks the blocks in document order. A paragraph starting
// with the slide marker (case-insensitive) opens a new record; label
// prefixes fill the open record's title/subtitle; any other non-empty
// paragraph and any table become content blocks of the open record.
// Content seen before the first marker is dropped with a diagnostic.
// The last open record is flushed at end of input.
func (s *Segmenter) Segment(blocks []docx.Block) []*model.SlideRecord {
	var records []*model.SlideRecord
	var current *model.SlideRecord

	for _, block := range blocks {
		switch block.Kind {
		case docx.BlockParagraph:
			current = s.segmentParagraph(block.Paragraph, current, &records)
		case docx.BlockTable:
			if current == nil {
				logger.Warnf("table before first %q marker dropped", s.labels.Slide)
				continue
			}
			current.Blocks = append(current.Blocks, model.ContentBlock{
				Table: extractTable(block.Table),
			})
		}
	}

	if current != nil {
		records = append(records, current)
	}
	return records
}

// segmentParagraph applies the prefix grammar to one paragraph and
// returns the (possibly new) current record.
func (s *Segmenter) segmentParagraph(p *docx.Paragraph, current *model.SlideRecord, records *[]*model.SlideRecord) *model.SlideRecord {
	text := strings.TrimSpace(p.Text())
	if text == "" {
		return current
	}

	marker := s.labels.Slide
	if len(text) >= len(marker) && strings.EqualFold(text[:len(marker)], marker) {
		if current != nil {
			*records = append(*records, current)
		}
		return &model.SlideRecord{}
	}

	if current == nil {
		logger.Warnf("paragraph before first %q marker dropped: %.40s", s.labels.Slide, text)
		return nil
	}

	switch {
	case strings.HasPrefix(text, s.labels.Title):
		current.Title = strings.TrimSpace(text[len(s.labels.Title):])
	case strings.HasPrefix(text, s.labels.Subtitle):
		current.Subtitle = strings.TrimSpace(text[len(s.labels.Subtitle):])
	default:
		current.Blocks = append(current.Blocks, model.ContentBlock{
			Paragraph: s.classifier.Classify(p),
		})
	}
	return current
}

// extractTable flattens a source table to cell text, joining the
// paragraphs inside a cell with newlines.
func extractTable(t *docx.Table) *model.Table {
	rows := lo.Map(t.Rows, func(row docx.TableRow, _ int) []string {
		return lo.Map(row.Cells, func(cell docx.TableCell, _ int) string {
			return cell.Text()
		})
	})
	return &model.Table{Rows: rows}
}
