// Package output handles file naming and writing for clipmark outputs.
// Filenames are derived from the first line of the converted Markdown
// (e.g. "Meeting Notes\n=====" → meeting-notes.md).
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultName is used when the Markdown yields no usable first line.
const DefaultName = "markdown"

// MaxNameRunes caps derived names well below common filesystem limits.
const MaxNameRunes = 100

var (
	leadingMarkers  = regexp.MustCompile(`^[#=\-*>\s]+`)
	trailingMarkers = regexp.MustCompile(`[#=\-*>\s]+$`)
	invalidChars    = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Filename derives a download name (without extension) from the first line
// of markdown.
func Filename(markdown string) string {
	first, _, _ := strings.Cut(markdown, "\n")
	first = leadingMarkers.ReplaceAllString(first, "")
	first = trailingMarkers.ReplaceAllString(first, "")
	first = invalidChars.ReplaceAllString(first, "")
	first = strings.TrimSpace(first)

	name := whitespaceRun.ReplaceAllString(strings.ToLower(first), "-")
	if runes := []rune(name); len(runes) > MaxNameRunes {
		name = strings.TrimRight(string(runes[:MaxNameRunes]), "-.")
	}
	if name == "" {
		return DefaultName
	}
	return name
}

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
	// Force overwrites an existing file instead of picking a free name.
	Force bool
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string, force bool) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, Force: force}, nil
}

// Write stores data as name+ext in the output directory and returns the path.
// Without Force, an existing file is left alone and name-1, name-2, ... are
// tried instead.
func (w *Writer) Write(name, ext string, data []byte) (string, error) {
	if name == "" {
		name = DefaultName
	}

	if w.Force {
		path := filepath.Join(w.OutputDir, name+ext)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("writing file %s: %w", path, err)
		}
		return path, nil
	}

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = name + "-" + strconv.Itoa(i)
		}
		path := filepath.Join(w.OutputDir, candidate+ext)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating file %s: %w", path, err)
		}

		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("writing file %s: %w", path, err)
		}
		return path, nil
	}
}
