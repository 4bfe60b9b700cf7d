// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/office2pdf/pkg/types"
)

func TestCopyPDF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.pdf")
	dst := filepath.Join(dir, "out", "in.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

	payload := []byte("%PDF-1.5\nstream\x00\xfe\xffendstream")
	require.NoError(t, os.WriteFile(src, payload, 0o644))
	mtime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, CopyPDF(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime), "mtime %v, want %v", info.ModTime(), mtime)

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestCopyPDF_Errors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0o644))

	tests := []struct {
		name string
		src  string
		dst  string
	}{
		{"missing source", filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "x.pdf")},
		{"missing destination directory", src, filepath.Join(dir, "nope", "x.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CopyPDF(tt.src, tt.dst)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrIO), "got %v", err)
			assert.NoFileExists(t, tt.dst)
		})
	}
}

func TestShouldSkip(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "done.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("%PDF"), 0o644))

	assert.True(t, ShouldSkip(types.ConversionTask{Target: existing}))
	assert.False(t, ShouldSkip(types.ConversionTask{Target: filepath.Join(dir, "todo.pdf")}))
}
