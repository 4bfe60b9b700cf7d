// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan lists an input directory and turns the files it contains
// into conversion tasks.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// lockPrefix marks the owner files Office keeps next to open documents.
const lockPrefix = "~$"

const pdfExt = ".pdf"

var kindsByExt = map[string]types.DocumentKind{
	".doc":  types.KindWord,
	".docx": types.KindWord,
	".ppt":  types.KindPresentation,
	".pptx": types.KindPresentation,
	pdfExt:  types.KindPDF,
}

// Classify returns the document kind for a file name, matching the
// extension case-insensitively. Unknown extensions and Office lock files
// return KindUnsupported.
func Classify(name string) types.DocumentKind {
	if strings.HasPrefix(name, lockPrefix) {
		return types.KindUnsupported
	}
	return kindsByExt[strings.ToLower(filepath.Ext(name))]
}

// TargetPath returns the PDF path for source inside outputDir.
func TargetPath(source, outputDir string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+pdfExt)
}

// ValidateInput checks that dir exists, is a directory, and can be listed.
func ValidateInput(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: input directory %s: %w", types.ErrConfiguration, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: input path %s is not a directory", types.ErrConfiguration, dir)
	}
	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("%w: input directory %s is not readable: %w", types.ErrConfiguration, dir, err)
	}
	return f.Close()
}

// Scan lists inputDir (non-recursive) and returns one task per supported
// regular file, in directory listing order. Sub-directories and unsupported
// files produce no task. A missing or unreadable inputDir is a
// configuration error.
func Scan(inputDir, outputDir string) ([]types.ConversionTask, error) {
	if err := ValidateInput(inputDir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading input directory %s: %w", types.ErrConfiguration, inputDir, err)
	}

	var tasks []types.ConversionTask
	for _, entry := range entries {
		if !isRegular(inputDir, entry) {
			continue
		}
		kind := Classify(entry.Name())
		if kind == types.KindUnsupported {
			continue
		}
		source := filepath.Join(inputDir, entry.Name())
		tasks = append(tasks, types.ConversionTask{
			Source: source,
			Target: TargetPath(source, outputDir),
			Kind:   kind,
		})
	}
	return tasks, nil
}

// isRegular reports whether entry is a regular file, following symlinks.
// A dangling link is not.
func isRegular(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
