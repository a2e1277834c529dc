package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/deckforge/word2deck/convert"
	"github.com/deckforge/word2deck/docx2pptx"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
)

const defaultTemplateName = "template.pptx"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		templatePath string
		labelsPath   string
		recursive    bool
		outputDir    string
		skipExisting bool
		verbose      bool
	)

	rootCmd := &cobra.Command{
		Use:   "word2deck <input.docx|directory> [output.pptx]",
		Short: "Convert structured Word documents into PowerPoint decks",
		Long: `Word2deck reads a .docx whose paragraphs are segmented by slide
markers and produces one slide per marker, with title, subtitle and
content zones laid out from a .pptx template's layouts.`,
		Example: `  word2deck report.docx
  word2deck report.docx deck.pptx --template corporate.pptx
  word2deck docs/ -r --output-dir decks/`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			labels, err := loadLabels(labelsPath)
			if err != nil {
				return err
			}

			template, err := resolveTemplate(templatePath)
			if err != nil {
				return err
			}

			opts := []docx2pptx.Option{
				docx2pptx.WithTemplate(template),
				docx2pptx.WithLabels(labels),
			}
			if verbose {
				opts = append(opts,
					docx2pptx.WithDocumentParsedCallback(func(slideCount int) {
						logger.Infof("parsed %s: %d slides", inputPath, slideCount)
					}),
					docx2pptx.WithSlideCreatedCallback(func(index, total int) {
						logger.Infof("  slide %d/%d", index+1, total)
					}),
				)
			}

			info, err := os.Stat(inputPath)
			if err != nil {
				return err
			}

			if !info.IsDir() {
				outputPath := outputFor(inputPath, args)
				return docx2pptx.New(opts...).ConvertFile(inputPath, outputPath)
			}

			if len(args) > 1 {
				return fmt.Errorf("an explicit output path cannot be used with a directory")
			}
			return runBatch(inputPath, outputDir, recursive, skipExisting, verbose, opts)
		},
	}

	rootCmd.Flags().StringVar(&templatePath, "template", "", "Template .pptx providing slide layouts (default: "+defaultTemplateName+" next to the executable)")
	rootCmd.Flags().StringVar(&labelsPath, "labels", "", "YAML file overriding the slide/title/subtitle markers")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Recursively process directories")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory for converted decks (flat structure)")
	rootCmd.Flags().BoolVar(&skipExisting, "skip-existing", true, "Skip files where the .pptx already exists")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show per-file and per-slide progress")

	rootCmd.AddCommand(newLayoutsCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// runBatch converts every .docx under dir through the batch walker.
func runBatch(dir, outputDir string, recursive, skipExisting, verbose bool, docxOpts []docx2pptx.Option) error {
	converterOpts := []convert.Option{
		convert.WithRecursion(recursive),
		convert.WithSkipExisting(skipExisting),
		convert.WithDocumentOptions(docxOpts...),
	}
	if outputDir != "" {
		converterOpts = append(converterOpts, convert.WithOutputDirectory(outputDir))
	}
	if verbose {
		converterOpts = append(converterOpts,
			convert.WithOnFileComplete(func(path, outputPath string, err error) {
				if err != nil {
					logger.Errorf("%s: %v", path, err)
				} else {
					logger.Infof("converted %s", path)
				}
			}),
			convert.WithOnFileSkipped(func(path, outputPath, reason string) {
				logger.Infof("skipped %s (%s)", path, reason)
			}),
		)
	}

	result, err := convert.New(converterOpts...).Convert(dir)
	if err != nil {
		return err
	}

	logger.Infof("complete: %d converted, %d skipped, %d failed",
		result.Converted, result.Skipped, result.Failed)
	if result.Failed > 0 {
		return fmt.Errorf("%d file(s) failed to convert", result.Failed)
	}
	return nil
}

func newLayoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts <template.pptx>",
		Short: "List the slide layout names a template provides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := docx2pptx.LayoutNames(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("word2deck %s (%s)\n", version, commit)
		},
	}
}

func loadLabels(path string) (docx2pptx.Labels, error) {
	if path == "" {
		return docx2pptx.DefaultLabels(), nil
	}
	return docx2pptx.LoadLabels(path)
}

// resolveTemplate returns the template path to use. An explicit flag
// must exist; the implicit default next to the executable is optional.
func resolveTemplate(flagValue string) (string, error) {
	if flagValue != "" {
		if _, err := os.Stat(flagValue); err != nil {
			return "", fmt.Errorf("template %s: %w", flagValue, err)
		}
		return flagValue, nil
	}

	exe, err := os.Executable()
	if err != nil {
		logger.Warnf("cannot locate executable (%v), using a blank presentation", err)
		return "", nil
	}
	candidate := filepath.Join(filepath.Dir(exe), defaultTemplateName)
	if _, err := os.Stat(candidate); err != nil {
		logger.Warnf("no %s next to executable, using a blank presentation", defaultTemplateName)
		return "", nil
	}
	return candidate, nil
}

// outputFor derives the single-file output path: the second argument
// when given, otherwise the input with its extension swapped.
func outputFor(inputPath string, args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + ".pptx"
}
