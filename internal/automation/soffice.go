// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/pkg/types"
)

const (
	binSoffice     = "soffice"
	binLibreoffice = "libreoffice"

	// probeTimeout bounds the --version check used by Available.
	probeTimeout = 30 * time.Second
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunCombined(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

func (o *osExecutor) RunCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = 5 * time.Second
	return cmd.CombinedOutput()
}

var defaultExec = &osExecutor{}

// sofficeLauncher starts LibreOffice "applications". LibreOffice has no
// long-lived automation handle from the command line, so an application is
// a private user profile directory; every export is one headless run
// against that profile.
type sofficeLauncher struct {
	bin  string
	exec executor
	log  logrus.FieldLogger
}

func newSofficeLauncher(bin string, exec executor, log logrus.FieldLogger) *sofficeLauncher {
	return &sofficeLauncher{bin: bin, exec: exec, log: log}
}

func (l *sofficeLauncher) Name() string { return types.BackendSoffice.String() + ":" + l.bin }

func (l *sofficeLauncher) Available() bool {
	if _, err := l.exec.LookPath(l.bin); err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return l.exec.RunSilent(ctx, l.bin, "--version") == nil
}

func (l *sofficeLauncher) Start(ctx context.Context, family types.Family) (Application, error) {
	path, err := l.exec.LookPath(l.bin)
	if err != nil {
		return nil, fmt.Errorf("locating %s: %w", l.bin, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := os.MkdirTemp("", "office2pdf-"+string(family)+"-*")
	if err != nil {
		return nil, fmt.Errorf("creating %s profile directory: %w", l.bin, err)
	}

	l.log.WithFields(logrus.Fields{"bin": path, "family": family}).Debug("started LibreOffice session")
	return &sofficeApp{
		launcher: l,
		bin:      path,
		profile:  profile,
	}, nil
}

type sofficeApp struct {
	launcher *sofficeLauncher
	bin      string
	profile  string
}

func (a *sofficeApp) Open(ctx context.Context, path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("opening %s: not a regular file", filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	f.Close()
	return &sofficeDocument{app: a, source: path}, nil
}

func (a *sofficeApp) Quit(ctx context.Context) error {
	if err := os.RemoveAll(a.profile); err != nil {
		return fmt.Errorf("removing %s profile: %w", a.launcher.bin, err)
	}
	return nil
}

type sofficeDocument struct {
	app    *sofficeApp
	source string
}

// ExportPDF converts into a staging directory next to target and renames
// the result into place, so target only ever holds a complete file.
func (d *sofficeDocument) ExportPDF(ctx context.Context, target string) error {
	stage, err := os.MkdirTemp(filepath.Dir(target), ".office2pdf-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(stage)

	args := []string{
		"-env:UserInstallation=" + fileURL(d.app.profile),
		"--headless",
		"--norestore",
		"--nolockcheck",
		"--convert-to", "pdf",
		"--outdir", stage,
		d.source,
	}
	out, err := d.app.launcher.exec.RunCombined(ctx, d.app.bin, args...)
	d.app.launcher.log.WithField("output", strings.TrimSpace(string(out))).Debug("soffice finished")
	if err != nil {
		return fmt.Errorf("running %s: %w", d.app.launcher.bin, err)
	}

	base := filepath.Base(d.source)
	produced := filepath.Join(stage, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if _, err := os.Stat(produced); err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = "no output"
		}
		return fmt.Errorf("%s produced no PDF for %s: %s", d.app.launcher.bin, base, msg)
	}

	if err := os.Rename(produced, target); err != nil {
		return fmt.Errorf("moving PDF into place: %w", err)
	}
	return nil
}

func (d *sofficeDocument) Close() error { return nil }

// fileURL turns a filesystem path into the file:// URL form LibreOffice
// expects for -env:UserInstallation.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
