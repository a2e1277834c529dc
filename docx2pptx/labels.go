package docx2pptx

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Labels maps logical field names to the literal text prefixes that
// mark them in the source document. The defaults match the French
// deck templates this tool was written for; a YAML file swaps them
// for another locale without touching segmentation.
type Labels struct {
	// Slide starts a new slide record (matched case-insensitively).
	Slide string `yaml:"slide"`
	// Title fills the record's title field (matched exactly).
	Title string `yaml:"title"`
	// Subtitle fills the record's subtitle field (matched exactly).
	Subtitle string `yaml:"subtitle"`
}

// DefaultLabels returns the built-in French labels.
func DefaultLabels() Labels {
	return Labels{
		Slide:    "SLIDE",
		Title:    "Titre :",
		Subtitle: "Sous-titre / Message clé :",
	}
}

// LoadLabels reads a YAML labels file. Keys left empty keep their
// default value.
func LoadLabels(path string) (Labels, error) {
	labels := DefaultLabels()

	data, err := os.ReadFile(path)
	if err != nil {
		return labels, fmt.Errorf("reading labels file: %w", err)
	}
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return labels, fmt.Errorf("parsing labels file: %w", err)
	}

	defaults := DefaultLabels()
	if labels.Slide == "" {
		labels.Slide = defaults.Slide
	}
	if labels.Title == "" {
		labels.Title = defaults.Title
	}
	if labels.Subtitle == "" {
		labels.Subtitle = defaults.Subtitle
	}
	return labels, nil
}
