// Package convert batch-converts Word documents into slide decks. It
// wraps docx2pptx with recursive directory traversal, duplicate and
// symlink-loop detection, and output directory management.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deckforge/word2deck/docx2pptx"
)

// SourceExtension is the only input type the walker picks up.
const SourceExtension = ".docx"

// OutputExtension replaces the source extension on converted files.
const OutputExtension = ".pptx"

// Converter walks files and directories, converting each matching
// document. Visited-path tracking guards against symlink loops and
// duplicate conversions within one Convert call.
type Converter struct {
	options        *Options
	visitedDirs    map[string]bool
	processedFiles map[string]bool
}

// Options holds configuration for batch conversion.
type Options struct {
	// Recursion enables recursive directory traversal.
	Recursion bool

	// SkipExisting skips files whose .pptx already exists (default: true).
	SkipExisting bool

	// OutputDirectory collects all output files in one flat directory.
	// If empty, decks are written next to their source documents.
	OutputDirectory string

	// DocumentOptions are passed to each per-file converter.
	DocumentOptions []docx2pptx.Option

	// OnFileStart is called before converting a file.
	OnFileStart func(path string)

	// OnFileComplete is called after a conversion attempt.
	OnFileComplete func(path, outputPath string, err error)

	// OnFileSkipped is called when a file is skipped.
	OnFileSkipped func(path, outputPath, reason string)
}

// Result summarizes a batch run.
type Result struct {
	Converted int
	Skipped   int
	Failed    int
	Errors    []error
}

// Option is a functional option for configuring the converter.
type Option func(*Options)

// DefaultOptions returns the default batch options.
func DefaultOptions() *Options {
	return &Options{
		Recursion:    false,
		SkipExisting: true,
	}
}

// WithRecursion enables or disables recursive directory traversal.
func WithRecursion(recursive bool) Option {
	return func(o *Options) {
		o.Recursion = recursive
	}
}

// WithSkipExisting sets whether to skip files whose deck already exists.
func WithSkipExisting(skip bool) Option {
	return func(o *Options) {
		o.SkipExisting = skip
	}
}

// WithOutputDirectory sets the flat output directory for converted decks.
func WithOutputDirectory(dir string) Option {
	return func(o *Options) {
		o.OutputDirectory = dir
	}
}

// WithDocumentOptions sets options to pass to each per-file converter.
func WithDocumentOptions(opts ...docx2pptx.Option) Option {
	return func(o *Options) {
		o.DocumentOptions = opts
	}
}

// WithOnFileStart sets the callback for when a file conversion starts.
func WithOnFileStart(callback func(path string)) Option {
	return func(o *Options) {
		o.OnFileStart = callback
	}
}

// WithOnFileComplete sets the callback for when a conversion completes.
func WithOnFileComplete(callback func(path, outputPath string, err error)) Option {
	return func(o *Options) {
		o.OnFileComplete = callback
	}
}

// WithOnFileSkipped sets the callback for when a file is skipped.
func WithOnFileSkipped(callback func(path, outputPath, reason string)) Option {
	return func(o *Options) {
		o.OnFileSkipped = callback
	}
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Converter{
		options:        options,
		visitedDirs:    make(map[string]bool),
		processedFiles: make(map[string]bool),
	}
}

// Convert converts a file or directory. Directories require
// WithRecursion(true). Per-file failures are collected in the Result
// rather than aborting the walk.
func (c *Converter) Convert(path string) (*Result, error) {
	c.visitedDirs = make(map[string]bool)
	c.processedFiles = make(map[string]bool)

	result := &Result{}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}

	if c.options.OutputDirectory != "" {
		if err := os.MkdirAll(c.options.OutputDirectory, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	if info.IsDir() {
		if !c.options.Recursion {
			return nil, fmt.Errorf("%s is a directory; use WithRecursion(true) to process directories", path)
		}
		c.walkDir(path, result)
	} else {
		c.processFile(path, result)
	}

	return result, nil
}

// walkDir recursively walks a directory, following symlinks. Real
// paths are tracked so a link cycle terminates.
func (c *Converter) walkDir(dir string, result *Result) {
	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("cannot resolve %s: %w", dir, err))
		return
	}

	if c.visitedDirs[realDir] {
		return
	}
	c.visitedDirs[realDir] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("cannot read directory %s: %w", dir, err))
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			// Broken symlinks to non-source files are skipped silently.
			if strings.EqualFold(filepath.Ext(path), SourceExtension) {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Errorf("cannot access %s: %w", path, err))
			}
			continue
		}

		if info.IsDir() {
			c.walkDir(path, result)
		} else {
			c.processFile(path, result)
		}
	}
}

// processFile converts a single document if it is a .docx.
func (c *Converter) processFile(path string, result *Result) {
	if !strings.EqualFold(filepath.Ext(path), SourceExtension) {
		return
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("cannot resolve %s: %w", path, err))
		return
	}

	if c.processedFiles[realPath] {
		return
	}
	c.processedFiles[realPath] = true

	outputPath, skip, reason := c.getOutputPath(realPath)
	if skip {
		if c.options.OnFileSkipped != nil {
			c.options.OnFileSkipped(realPath, outputPath, reason)
		}
		result.Skipped++
		return
	}

	if c.options.OnFileStart != nil {
		c.options.OnFileStart(realPath)
	}

	converter := docx2pptx.New(c.options.DocumentOptions...)
	convErr := converter.ConvertFile(realPath, outputPath)

	if c.options.OnFileComplete != nil {
		c.options.OnFileComplete(realPath, outputPath, convErr)
	}

	if convErr != nil {
		result.Failed++
		result.Errors = append(result.Errors, fmt.Errorf("%s: %w", realPath, convErr))
	} else {
		result.Converted++
	}
}

// getOutputPath maps file.docx to file.pptx, either next to the
// source or under the output directory. Returns the output path,
// whether to skip, and the skip reason.
func (c *Converter) getOutputPath(inputPath string) (string, bool, string) {
	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + OutputExtension

	var outputPath string
	if c.options.OutputDirectory != "" {
		outputPath = filepath.Join(c.options.OutputDirectory, baseName)
	} else {
		outputPath = filepath.Join(filepath.Dir(inputPath), baseName)
	}

	if _, err := os.Stat(outputPath); err == nil {
		if c.options.SkipExisting {
			return outputPath, true, "output file exists"
		}
		outputPath = c.findUniquePath(outputPath)
	}

	return outputPath, false, ""
}

// findUniquePath appends a counter until the path does not exist.
func (c *Converter) findUniquePath(basePath string) string {
	ext := filepath.Ext(basePath)
	nameWithoutExt := strings.TrimSuffix(basePath, ext)

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", nameWithoutExt, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
