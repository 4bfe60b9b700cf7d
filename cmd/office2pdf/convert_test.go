// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/office2pdf/internal/automation"
	"github.com/pdiddy/office2pdf/internal/report"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// newRunConfig creates an input directory holding a document, a PDF, and
// an unsupported file, and returns a config pointing at it.
func newRunConfig(t *testing.T) types.ConversionConfig {
	t.Helper()
	root := t.TempDir()
	in := filepath.Join(root, "in")
	require.NoError(t, os.MkdirAll(in, 0o755))
	for name, body := range map[string]string{
		"a.docx":    "word",
		"b.pdf":     "%PDF-1.7 original",
		"notes.txt": "ignored",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), []byte(body), 0o644))
	}
	return types.ConversionConfig{
		InputDir: in,
		LogFile:  filepath.Join(root, "logs", types.DefaultLogFile),
		Backend:  types.BackendAuto,
		Timeout:  time.Minute,
	}
}

func TestExecute_ConvertsAndCopies(t *testing.T) {
	withDetect(t, func(automation.Options) (automation.Launcher, error) {
		return stubLauncher{name: "stub", available: true}, nil
	})
	cfg := newRunConfig(t)
	cfg.ReportPath = filepath.Join(t.TempDir(), "report.yaml")
	var stdout, stderr bytes.Buffer

	err := execute(context.Background(), cfg, false, &stdout, &stderr)
	require.NoError(t, err)

	outDir := filepath.Join(cfg.InputDir, types.DefaultOutputSubdir)
	assert.FileExists(t, filepath.Join(outDir, "a.pdf"))
	copied, err := os.ReadFile(filepath.Join(outDir, "b.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 original", string(copied))
	assert.NoFileExists(t, filepath.Join(outDir, "notes.pdf"))

	assert.Contains(t, stdout.String(), "Log file:         "+cfg.LogFile)
	assert.Contains(t, stdout.String(), "converted: a.docx")
	assert.Contains(t, stdout.String(), "copied:    b.pdf")
	assert.Contains(t, stdout.String(), "Run summary: 1 converted, 1 copied, 0 skipped, 0 failed (total: 2)")
	assert.Contains(t, stdout.String(), "Processing complete.")
	assert.Empty(t, stderr.String(), "progress disabled")

	logData, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "INFO Successfully converted 'a.docx' to PDF")
	assert.Contains(t, string(logData), "run=")

	data, err := os.ReadFile(cfg.ReportPath)
	require.NoError(t, err)
	var rep report.RunReport
	require.NoError(t, yaml.Unmarshal(data, &rep))
	assert.Equal(t, 1, rep.Summary.Converted)
	assert.Equal(t, 1, rep.Summary.Copied)
	assert.Equal(t, outDir, rep.OutputDir)
	assert.Len(t, rep.Results, 2)
}

func TestExecute_SecondRunSkipsEverything(t *testing.T) {
	withDetect(t, func(automation.Options) (automation.Launcher, error) {
		return stubLauncher{name: "stub", available: true}, nil
	})
	cfg := newRunConfig(t)

	require.NoError(t, execute(context.Background(), cfg, false, &bytes.Buffer{}, &bytes.Buffer{}))
	var stdout bytes.Buffer
	require.NoError(t, execute(context.Background(), cfg, false, &stdout, &bytes.Buffer{}))

	assert.Contains(t, stdout.String(), "0 converted, 0 copied, 2 skipped, 0 failed")

	logData, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Skipping 'a.docx', PDF already exists")
	assert.Contains(t, string(logData), "Successfully converted 'a.docx' to PDF", "log is appended, not truncated")
}

func TestExecute_NoBackendStillCopiesPDFs(t *testing.T) {
	withDetect(t, func(automation.Options) (automation.Launcher, error) {
		return nil, fmt.Errorf("%w: no office automation backend available", types.ErrSession)
	})
	cfg := newRunConfig(t)
	var stdout, stderr bytes.Buffer

	err := execute(context.Background(), cfg, false, &stdout, &stderr)
	require.NoError(t, err, "per-file failures are not fatal")
	assert.Equal(t, ExitSuccess, exitCodeFor(err))

	outDir := filepath.Join(cfg.InputDir, types.DefaultOutputSubdir)
	assert.FileExists(t, filepath.Join(outDir, "b.pdf"))
	assert.NoFileExists(t, filepath.Join(outDir, "a.pdf"))
	assert.Contains(t, stdout.String(), "failed:    a.docx")
	assert.Contains(t, stderr.String(), "Warning:")
}

func TestExecute_MissingInput(t *testing.T) {
	withDetect(t, func(automation.Options) (automation.Launcher, error) {
		return stubLauncher{name: "stub", available: true}, nil
	})
	cfg := newRunConfig(t)
	cfg.InputDir = filepath.Join(cfg.InputDir, "missing")

	err := execute(context.Background(), cfg, false, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitUsage, exitCodeFor(err))
	assert.NoDirExists(t, filepath.Join(cfg.InputDir, types.DefaultOutputSubdir))
}

func TestExecute_UnknownBackend(t *testing.T) {
	withDetect(t, automation.Detect)
	cfg := newRunConfig(t)
	cfg.Backend = "pages"

	err := execute(context.Background(), cfg, false, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrConfiguration))
}

func TestExecute_UnwritableLog(t *testing.T) {
	cfg := newRunConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.LogFile = filepath.Join(blocker, "conversion_log.txt")

	err := execute(context.Background(), cfg, false, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitUsage, exitCodeFor(err))
}

func TestExecute_Interrupted(t *testing.T) {
	withDetect(t, func(automation.Options) (automation.Launcher, error) {
		return stubLauncher{name: "stub", available: true}, nil
	})
	cfg := newRunConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := execute(ctx, cfg, false, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, ExitInterrupted, exitCodeFor(err))
	assert.NoFileExists(t, filepath.Join(cfg.InputDir, types.DefaultOutputSubdir, "a.pdf"))
}
