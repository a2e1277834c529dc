// Package docx2pptx converts Word documents into slide decks. Source
// paragraphs are segmented into slide records by marker labels, each
// record becoming one slide with title, subtitle and content zones.
package docx2pptx

import (
	"fmt"
	"os"

	gp "github.com/VantageDataChat/GoPPT"
	"github.com/flanksource/commons/logger"

	"github.com/deckforge/word2deck/docx2pptx/docx"
	"github.com/deckforge/word2deck/docx2pptx/model"
)

// Options controls a conversion.
type Options struct {
	// TemplatePath is the .pptx whose layouts and masters seed the
	// output deck. Empty means a blank presentation.
	TemplatePath string

	// Labels are the markers that segment the source document.
	Labels Labels

	// FontName is forced on every emitted run.
	FontName string

	// CoverLayout names the layout for the first slide,
	// StandardLayout for every other slide.
	CoverLayout    string
	StandardLayout string

	Zones ZoneSet

	// OnDocumentParsed is called once segmentation is done, before
	// any slide is emitted.
	OnDocumentParsed func(slideCount int)

	// OnSlideCreated is called after each slide is emitted.
	OnSlideCreated func(index, total int)
}

// DefaultOptions returns the standard conversion settings.
func DefaultOptions() *Options {
	return &Options{
		Labels:         DefaultLabels(),
		FontName:       "Arial",
		CoverLayout:    "Cover",
		StandardLayout: "Blank",
		Zones:          DefaultZones(),
	}
}

// Option is a functional option for New.
type Option func(*Options)

// WithTemplate sets the template presentation path.
func WithTemplate(path string) Option {
	return func(o *Options) { o.TemplatePath = path }
}

// WithLabels overrides the segmentation markers.
func WithLabels(l Labels) Option {
	return func(o *Options) { o.Labels = l }
}

// WithFont overrides the output typeface.
func WithFont(name string) Option {
	return func(o *Options) { o.FontName = name }
}

// WithLayouts overrides the cover and standard layout names.
func WithLayouts(cover, standard string) Option {
	return func(o *Options) {
		o.CoverLayout = cover
		o.StandardLayout = standard
	}
}

// WithZones overrides the emission geometry.
func WithZones(z ZoneSet) Option {
	return func(o *Options) { o.Zones = z }
}

// WithDocumentParsedCallback sets the post-segmentation callback.
func WithDocumentParsedCallback(fn func(slideCount int)) Option {
	return func(o *Options) { o.OnDocumentParsed = fn }
}

// WithSlideCreatedCallback sets the per-slide progress callback.
func WithSlideCreatedCallback(fn func(index, total int)) Option {
	return func(o *Options) { o.OnSlideCreated = fn }
}

// Converter turns .docx bytes or files into .pptx decks.
type Converter struct {
	opts *Options
}

// New creates a converter with the given options applied over the
// defaults.
func New(opts ...Option) *Converter {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Converter{opts: o}
}

// Parse reads a .docx and returns its slide records in document
// order. No presentation is touched.
func (c *Converter) Parse(data []byte) ([]*model.SlideRecord, error) {
	parser, err := docx.NewParser(data)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	if err := parser.Parse(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	blocks, err := parser.Blocks()
	if err != nil {
		return nil, fmt.Errorf("reading document body: %w", err)
	}

	numbering, _ := parser.GetNumbering()
	styles, _ := parser.GetStyles()
	classifier := NewClassifier(numbering, styles)
	segmenter := NewSegmenter(c.opts.Labels, classifier)
	return segmenter.Segment(blocks), nil
}

// Convert emits the records into a fresh presentation seeded from the
// template, if any. Callers own saving the result.
func (c *Converter) Convert(records []*model.SlideRecord) (*gp.Presentation, error) {
	pres, hasDefaultSlide, err := c.openPresentation()
	if err != nil {
		return nil, err
	}

	emitter := NewEmitter(pres, c.opts)
	for i, rec := range records {
		emitter.EmitSlide(rec, i)
		if c.opts.OnSlideCreated != nil {
			c.opts.OnSlideCreated(i, len(records))
		}
	}

	// A blank presentation starts with one default slide, and the
	// library refuses to remove the last remaining slide, so it can
	// only go once the generated slides exist.
	if hasDefaultSlide && pres.GetSlideCount() > 1 {
		if err := pres.RemoveSlideByIndex(0); err != nil {
			return nil, fmt.Errorf("removing default slide: %w", err)
		}
	}
	return pres, nil
}

// ConvertFile converts one .docx file into a .pptx file. A document
// with no slide markers produces a warning and no output file.
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	records, err := c.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	if c.opts.OnDocumentParsed != nil {
		c.opts.OnDocumentParsed(len(records))
	}

	if len(records) == 0 {
		logger.Warnf("%s: no %q markers found, nothing to convert", inputPath, c.opts.Labels.Slide)
		return nil
	}

	pres, err := c.Convert(records)
	if err != nil {
		return err
	}

	if err := pres.Save(outputPath); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	logger.Infof("wrote %s (%d slides)", outputPath, len(records))
	return nil
}

// openPresentation seeds the output deck. Template slides are
// discarded, only layouts and masters carry over. The second return
// reports whether the presentation still carries the library's
// default slide, which the caller must trim after emission.
func (c *Converter) openPresentation() (*gp.Presentation, bool, error) {
	if c.opts.TemplatePath == "" {
		return gp.New(), true, nil
	}

	pres, err := gp.OpenTemplate(c.opts.TemplatePath)
	if err != nil {
		return nil, false, fmt.Errorf("opening template %s: %w", c.opts.TemplatePath, err)
	}
	for _, l := range pres.GetSlideLayouts() {
		logger.Debugf("template layout: %s", l.Name)
	}
	return pres, false, nil
}

// LayoutNames returns the layout names available in a template, for
// diagnostics.
func LayoutNames(templatePath string) ([]string, error) {
	pres, err := gp.OpenTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", templatePath, err)
	}
	layouts := pres.GetSlideLayouts()
	names := make([]string, 0, len(layouts))
	for _, l := range layouts {
		names = append(names, l.Name)
	}
	return names, nil
}
