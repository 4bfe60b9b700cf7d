//go:build windows

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// Office COM constants.
const (
	wdFormatPDF       = 17
	ppSaveAsPDF       = 32
	wdAlertsNone      = 0
	ppWindowMinimized = 2
)

// closeTimeout bounds Document.Close, which has no caller context.
const closeTimeout = 30 * time.Second

// comApp describes how each family is reached through COM.
type comApp struct {
	progID     string
	collection string
	openArgs   func(path string) []interface{}
	saveFormat int
	closeArgs  []interface{}
	setup      func(app *ole.IDispatch)
}

var comApps = map[types.Family]comApp{
	types.FamilyWord: {
		progID:     "Word.Application",
		collection: "Documents",
		// FileName, ConfirmConversions, ReadOnly, AddToRecentFiles
		openArgs:   func(p string) []interface{} { return []interface{}{p, false, true, false} },
		saveFormat: wdFormatPDF,
		// SaveChanges = wdDoNotSaveChanges
		closeArgs: []interface{}{0},
		setup: func(app *ole.IDispatch) {
			oleutil.PutProperty(app, "Visible", false)
			oleutil.PutProperty(app, "DisplayAlerts", wdAlertsNone)
		},
	},
	types.FamilyPresentation: {
		progID:     "PowerPoint.Application",
		collection: "Presentations",
		// FileName, ReadOnly, Untitled, WithWindow
		openArgs:   func(p string) []interface{} { return []interface{}{p, true, false, false} },
		saveFormat: ppSaveAsPDF,
		setup: func(app *ole.IDispatch) {
			// Not every PowerPoint build accepts this; a visible window is harmless.
			oleutil.PutProperty(app, "WindowState", ppWindowMinimized)
		},
	},
}

// oleLauncher starts Microsoft Office applications through COM.
type oleLauncher struct {
	log logrus.FieldLogger
}

func newOLELauncher(log logrus.FieldLogger) Launcher { return &oleLauncher{log: log} }

func (l *oleLauncher) Name() string { return types.BackendOLE.String() }

// Available reports whether at least one Office ProgID is registered.
func (l *oleLauncher) Available() bool {
	found := make(chan bool, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := ole.CoInitialize(0); err != nil {
			found <- false
			return
		}
		defer ole.CoUninitialize()
		for _, family := range types.Families {
			if _, err := ole.CLSIDFromProgID(comApps[family].progID); err == nil {
				found <- true
				return
			}
		}
		found <- false
	}()
	return <-found
}

func (l *oleLauncher) Start(ctx context.Context, family types.Family) (Application, error) {
	com, ok := comApps[family]
	if !ok {
		return nil, fmt.Errorf("no COM application for family %q", family)
	}

	a := &oleApp{com: com, calls: make(chan oleCall), log: l.log.WithField("app", com.progID)}
	ready := make(chan error, 1)
	go a.loop(ready)

	select {
	case err := <-ready:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		// The application may still come up; shut it down when it does.
		go func() {
			if err := <-ready; err == nil {
				a.Quit(context.Background())
			}
		}()
		return nil, fmt.Errorf("starting %s: %w", com.progID, ctx.Err())
	}

	a.log.Debug("started COM application")
	return a, nil
}

// oleCall is one unit of work executed on the application's COM thread.
type oleCall struct {
	fn   func() error
	done chan error
}

// oleApp owns one Office application. All COM calls run on a single
// goroutine locked to its OS thread, because the COM objects belong to the
// apartment of the thread that created them.
type oleApp struct {
	com   comApp
	calls chan oleCall
	log   logrus.FieldLogger

	// Owned by the COM goroutine.
	app        *ole.IDispatch
	collection *ole.IDispatch

	mu     sync.Mutex
	closed bool
}

func (a *oleApp) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitialize(0); err != nil {
		ready <- fmt.Errorf("initializing COM: %w", err)
		return
	}
	defer ole.CoUninitialize()

	if err := a.create(); err != nil {
		ready <- err
		return
	}
	ready <- nil

	for c := range a.calls {
		c.done <- c.fn()
	}
}

func (a *oleApp) create() error {
	unknown, err := oleutil.CreateObject(a.com.progID)
	if err != nil {
		return fmt.Errorf("creating %s: %w", a.com.progID, err)
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("querying %s dispatch interface: %w", a.com.progID, err)
	}
	a.com.setup(app)

	v, err := oleutil.GetProperty(app, a.com.collection)
	if err != nil {
		oleutil.CallMethod(app, "Quit")
		app.Release()
		return fmt.Errorf("getting %s.%s: %w", a.com.progID, a.com.collection, err)
	}
	a.app = app
	a.collection = v.ToIDispatch()
	return nil
}

// do runs fn on the COM thread, giving up when ctx is done. A call that
// is abandoned keeps running on the COM thread; the caller is expected to
// discard the application.
func (a *oleApp) do(ctx context.Context, fn func() error) error {
	c := oleCall{fn: fn, done: make(chan error, 1)}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return errors.New("application already quit")
	}
	select {
	case a.calls <- c:
		a.mu.Unlock()
	case <-ctx.Done():
		a.mu.Unlock()
		return ctx.Err()
	}
	select {
	case err := <-c.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *oleApp) Open(ctx context.Context, path string) (Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	var disp *ole.IDispatch
	err = a.do(ctx, func() error {
		v, err := oleutil.CallMethod(a.collection, "Open", a.com.openArgs(abs)...)
		if err != nil {
			return err
		}
		disp = v.ToIDispatch()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	return &oleDocument{app: a, disp: disp}, nil
}

func (a *oleApp) Quit(ctx context.Context) error {
	err := a.do(ctx, func() error {
		a.collection.Release()
		_, err := oleutil.CallMethod(a.app, "Quit")
		a.app.Release()
		return err
	})

	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.calls)
	}
	a.mu.Unlock()

	if err != nil {
		return fmt.Errorf("quitting %s: %w", a.com.progID, err)
	}
	return nil
}

type oleDocument struct {
	app  *oleApp
	disp *ole.IDispatch
}

func (d *oleDocument) ExportPDF(ctx context.Context, target string) error {
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	return d.app.do(ctx, func() error {
		_, err := oleutil.CallMethod(d.disp, "SaveAs", abs, d.app.com.saveFormat)
		return err
	})
}

func (d *oleDocument) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return d.app.do(ctx, func() error {
		_, err := oleutil.CallMethod(d.disp, "Close", d.app.com.closeArgs...)
		d.disp.Release()
		return err
	})
}
