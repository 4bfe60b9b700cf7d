// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"testing"

	"github.com/pdiddy/office2pdf/internal/automation"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// stubLauncher is an always-working backend that writes a tiny PDF.
type stubLauncher struct {
	name      string
	available bool
}

func (l stubLauncher) Name() string    { return l.name }
func (l stubLauncher) Available() bool { return l.available }

func (l stubLauncher) Start(context.Context, types.Family) (automation.Application, error) {
	return stubApp{}, nil
}

type stubApp struct{}

func (stubApp) Open(_ context.Context, path string) (automation.Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return stubDoc{}, nil
}

func (stubApp) Quit(context.Context) error { return nil }

type stubDoc struct{}

func (stubDoc) ExportPDF(_ context.Context, target string) error {
	return os.WriteFile(target, []byte("%PDF-1.4 stub\n"), 0o644)
}

func (stubDoc) Close() error { return nil }

// withDetect swaps the backend detection for the duration of the test.
func withDetect(t *testing.T, fn func(automation.Options) (automation.Launcher, error)) {
	t.Helper()
	prev := detectLauncher
	detectLauncher = fn
	t.Cleanup(func() { detectLauncher = prev })
}

// withLaunchers swaps the doctor's candidate list for the duration of the test.
func withLaunchers(t *testing.T, fn func(automation.Options) []automation.Launcher) {
	t.Helper()
	prev := listLaunchers
	listLaunchers = fn
	t.Cleanup(func() { listLaunchers = prev })
}
