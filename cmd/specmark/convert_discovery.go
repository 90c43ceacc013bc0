package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/fileutil"
	"github.com/alnah/go-specmark/internal/hints"
)

// outputExtension is the extension of every generated document.
const outputExtension = "html"

// Sentinel errors for file discovery.
var (
	ErrUnsupportedInput   = errors.New("unsupported input file")
	ErrOutputConflict     = errors.New("several inputs write the same output")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Kind       int // fileutil.KindMarkdown or fileutil.KindHTML
}

// markdownExtensions are the sibling sources an HTML file may be generated from.
var markdownExtensions = []string{".md", ".markdown", ".MD", ".Markdown"}

// discoverFiles finds all Markdown and HTML files to convert.
// Markdown sources become {name}.html; HTML sources are rewritten in place
// unless output is set. When walking a directory, HTML files generated from
// a sibling Markdown source and the output directory itself are skipped, so
// a second run over the same tree converts the same sources.
func discoverFiles(inputPath, output string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		kind := fileutil.SourceKind(inputPath)
		if kind == fileutil.KindUnknown {
			return nil, fmt.Errorf("%w: %s%s", ErrUnsupportedInput, inputPath, hints.ForUnsupportedInput())
		}
		outPath, err := resolveOutputPath(inputPath, output, "", kind)
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath, Kind: kind}}, nil
	}

	if isOutputFile(output) {
		return nil, usageErrorf("output %q must be a directory when the input is a directory", output)
	}

	var files []FileToConvert
	owners := make(map[string]string)
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && output != "" && samePath(path, output) {
				return filepath.SkipDir
			}
			return nil
		}
		kind := fileutil.SourceKind(path)
		if kind == fileutil.KindUnknown {
			return nil
		}
		if kind == fileutil.KindHTML && hasMarkdownSource(path) {
			return nil
		}
		outPath, err := resolveOutputPath(path, output, inputPath, kind)
		if err != nil {
			return err
		}
		if prev, ok := owners[outPath]; ok {
			return fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, path, outPath)
		}
		owners[outPath] = path
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, Kind: kind})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the output path for a source file.
func resolveOutputPath(inputPath, output, baseInputDir string, kind int) (string, error) {
	if output == "" {
		if kind == fileutil.KindHTML {
			return inputPath, nil
		}
		return fileutil.ReplaceExtension(inputPath, outputExtension)
	}

	if baseInputDir == "" && isOutputFile(output) {
		return output, nil
	}

	rel := filepath.Base(inputPath)
	if baseInputDir != "" {
		if r, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			rel = r
		}
	}
	return fileutil.ReplaceExtension(filepath.Join(output, rel), outputExtension)
}

// hasMarkdownSource reports whether a Markdown file with the same base name
// sits next to the HTML file at path.
func hasMarkdownSource(path string) bool {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range markdownExtensions {
		if fileutil.FileExists(stem + ext) {
			return true
		}
	}
	return false
}

// samePath reports whether a and b name the same location once cleaned and
// made absolute.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// isOutputFile reports whether output names a file rather than a directory.
func isOutputFile(output string) bool {
	return fileutil.SourceKind(output) == fileutil.KindHTML
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > specmark.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, specmark.MaxPoolSize)
	}
	return nil
}

// sourceInput builds the converter input for content of the given kind.
func sourceInput(kind int, content string, permalinks specmark.Permalinks) specmark.Input {
	input := specmark.Input{Permalinks: &permalinks}
	if kind == fileutil.KindMarkdown {
		input.Markdown = content
	} else {
		input.HTML = content
	}
	return input
}
