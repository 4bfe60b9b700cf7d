// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// CopyPDF copies src to dst byte for byte. The data goes to a temporary
// file in dst's directory first and is renamed into place, so dst is either
// absent or complete. The source modification time is preserved.
func CopyPDF(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", types.ErrIO, filepath.Base(src), err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", types.ErrIO, filepath.Base(src), err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dst), ".copy-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", types.ErrIO, err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, in)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: copying %s: %w", types.ErrIO, filepath.Base(src), copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %w", types.ErrIO, closeErr)
	}

	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: setting times on %s: %w", types.ErrIO, filepath.Base(dst), err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming temp file: %w", types.ErrIO, err)
	}
	return nil
}
