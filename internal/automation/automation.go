// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package automation drives office applications that can open Word and
// PowerPoint documents and export them as PDF. The rest of the program
// treats a backend as an opaque open / export / close / quit capability set.
//
// Two backends exist: "ole" drives Microsoft Office through COM (Windows
// only) and "soffice" drives LibreOffice in headless mode.
package automation

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// Launcher starts office applications for a backend.
type Launcher interface {
	// Name returns the backend name ("ole" or "soffice").
	Name() string

	// Available reports whether the backend can be started on this machine.
	Available() bool

	// Start launches an application able to open documents of family.
	Start(ctx context.Context, family types.Family) (Application, error)
}

// Application is a running office application for one document family.
type Application interface {
	// Open opens the document at path read-only.
	Open(ctx context.Context, path string) (Document, error)

	// Quit shuts the application down and releases its resources.
	Quit(ctx context.Context) error
}

// Document is an open document handle.
type Document interface {
	// ExportPDF writes the document as a PDF file at target.
	ExportPDF(ctx context.Context, target string) error

	// Close releases the document without saving changes.
	Close() error
}

// Options configures backend detection.
type Options struct {
	// Backend is "auto", "ole", or "soffice".
	Backend types.BackendName

	// SofficePath overrides the LibreOffice binary. Empty means search PATH.
	SofficePath string

	// Log receives backend diagnostics. Nil disables them.
	Log logrus.FieldLogger
}

// Launchers returns every launcher candidate for opts, in preference order,
// without checking availability.
func Launchers(opts Options) []Launcher {
	return launchers(opts, defaultExec)
}

func launchers(opts Options, exec executor) []Launcher {
	log := opts.Log
	if log == nil {
		log = discardLogger()
	}

	var soffice []Launcher
	if opts.SofficePath != "" {
		soffice = []Launcher{newSofficeLauncher(opts.SofficePath, exec, log)}
	} else {
		soffice = []Launcher{
			newSofficeLauncher(binSoffice, exec, log),
			newSofficeLauncher(binLibreoffice, exec, log),
		}
	}

	switch opts.Backend {
	case types.BackendOLE:
		return []Launcher{newOLELauncher(log)}
	case types.BackendSoffice:
		return soffice
	default:
		return append([]Launcher{newOLELauncher(log)}, soffice...)
	}
}

// Detect returns the first available launcher for opts. On Windows the auto
// preference is Microsoft Office, then LibreOffice; elsewhere only
// LibreOffice is considered.
func Detect(opts Options) (Launcher, error) {
	return detect(opts, defaultExec)
}

func detect(opts Options, exec executor) (Launcher, error) {
	switch opts.Backend {
	case "", types.BackendAuto, types.BackendOLE, types.BackendSoffice:
	default:
		return nil, fmt.Errorf("%w: unknown backend %q (use auto, ole, or soffice)", types.ErrConfiguration, opts.Backend)
	}

	candidates := launchers(opts, exec)
	names := make([]string, 0, len(candidates))
	for _, l := range candidates {
		if l.Available() {
			return l, nil
		}
		names = append(names, l.Name())
	}
	return nil, fmt.Errorf("%w: no office automation backend available (tried %v)", types.ErrSession, names)
}

// Unavailable returns a launcher whose Start always fails with err. It
// stands in when detection finds no backend, so that documents fail one by
// one while PDF passthrough still runs.
func Unavailable(err error) Launcher {
	return unavailable{err: err}
}

type unavailable struct {
	err error
}

func (u unavailable) Name() string    { return "none" }
func (u unavailable) Available() bool { return false }

func (u unavailable) Start(context.Context, types.Family) (Application, error) {
	return nil, u.err
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
