// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/internal/automation"
	"github.com/pdiddy/office2pdf/internal/scan"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// Runner converts one input directory per Run call. Tasks run strictly in
// scan order, one at a time.
type Runner struct {
	launcher automation.Launcher
	reporter Reporter
	log      logrus.FieldLogger
	timeout  time.Duration
	state    State
}

// NewRunner creates a Runner. timeout bounds every call into the
// automation backend (start, open, export); zero disables the bound. A nil
// reporter discards events.
func NewRunner(launcher automation.Launcher, reporter Reporter, log logrus.FieldLogger, timeout time.Duration) *Runner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Runner{
		launcher: launcher,
		reporter: reporter,
		log:      log,
		timeout:  timeout,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run converts every supported file in inputDir into outputDir (default
// inputDir/converted_pdf). Per-file failures are recorded in the result and
// do not make Run fail. Run returns an error wrapping ErrConfiguration when
// the input cannot be scanned or the output directory cannot be created,
// and ctx.Err() when the run is interrupted; in both cases every started
// application has been released.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (BatchResult, error) {
	start := time.Now()
	var batch BatchResult

	r.state = StateScanning
	inputDir, outputDir, err := resolveDirs(inputDir, outputDir)
	if err != nil {
		return batch, r.fail(err)
	}
	batch.InputDir, batch.OutputDir = inputDir, outputDir
	if err := scan.ValidateInput(inputDir); err != nil {
		return batch, r.fail(err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return batch, r.fail(fmt.Errorf("%w: creating output directory %s: %w", types.ErrConfiguration, outputDir, err))
	}
	tasks, err := scan.Scan(inputDir, outputDir)
	if err != nil {
		return batch, r.fail(err)
	}

	r.state = StateProcessing
	sessions := NewSessions(r.launcher, r.log, r.timeout)
	r.reporter.Start(len(tasks), inputDir, outputDir)

	var interrupted error
	func() {
		defer func() {
			r.state = StateFinalizing
			_ = sessions.ReleaseAll()
		}()
		for i, task := range tasks {
			if err := ctx.Err(); err != nil {
				interrupted = err
				return
			}
			r.reporter.Begin(i, task)
			res := r.process(ctx, sessions, task)
			batch.Add(res)
			batch.Results = append(batch.Results, res)
			r.reporter.Result(res)
		}
	}()

	batch.Elapsed = time.Since(start)
	r.reporter.Finish(batch.RunSummary)

	if interrupted != nil {
		r.state = StateFailed
		return batch, fmt.Errorf("run interrupted after %d of %d files: %w", batch.Total(), len(tasks), interrupted)
	}
	r.state = StateDone
	return batch, nil
}

func (r *Runner) fail(err error) error {
	r.state = StateFailed
	r.log.WithError(err).Error("Run aborted")
	return err
}

// resolveDirs makes both directories absolute and applies the default
// output directory.
func resolveDirs(inputDir, outputDir string) (string, string, error) {
	in, err := filepath.Abs(inputDir)
	if err != nil {
		return "", "", fmt.Errorf("%w: resolving %s: %w", types.ErrConfiguration, inputDir, err)
	}
	if outputDir == "" {
		return in, filepath.Join(in, types.DefaultOutputSubdir), nil
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return "", "", fmt.Errorf("%w: resolving %s: %w", types.ErrConfiguration, outputDir, err)
	}
	return in, out, nil
}

// process turns one task into exactly one result.
func (r *Runner) process(ctx context.Context, sessions *Sessions, task types.ConversionTask) types.ConversionResult {
	began := time.Now()
	res := types.ConversionResult{Task: task}

	switch {
	case ShouldSkip(task):
		res.Outcome = types.OutcomeSkipped
	case task.Kind == types.KindPDF:
		res.Err = CopyPDF(task.Source, task.Target)
		res.Outcome = types.OutcomeCopied
	default:
		res.Err = r.convertDocument(ctx, sessions, task)
		res.Outcome = types.OutcomeConverted
	}
	if res.Err != nil {
		res.Outcome = types.OutcomeFailed
	}

	res.Duration = time.Since(began)
	return res
}

// convertDocument opens the source through the family's application,
// exports it to the target, and closes it.
func (r *Runner) convertDocument(ctx context.Context, sessions *Sessions, task types.ConversionTask) error {
	family, ok := task.Kind.Family()
	if !ok {
		return fmt.Errorf("%w: no application family for %q", types.ErrConversion, task.Kind)
	}

	app, err := sessions.Acquire(ctx, family)
	if err != nil {
		return err
	}

	var doc automation.Document
	err = r.call(ctx, sessions, family, "opening "+task.Name(), func(c context.Context) error {
		d, err := app.Open(c, task.Source)
		doc = d
		return err
	})
	if err != nil {
		return err
	}

	exportErr := r.call(ctx, sessions, family, "exporting "+task.Name(), func(c context.Context) error {
		return doc.ExportPDF(c, task.Target)
	})
	if exportErr != nil {
		removePartial(task.Target)
	}
	if errors.Is(exportErr, types.ErrTimeout) {
		// The application was discarded along with the document.
		return exportErr
	}

	if err := doc.Close(); err != nil {
		r.log.WithError(err).WithField("file", task.Name()).Warn("Could not close document")
	}
	return exportErr
}

// call runs one automation call under the per-call bound. When the bound
// expires the family's application is discarded, since it may be hung.
func (r *Runner) call(ctx context.Context, sessions *Sessions, family types.Family, what string, fn func(context.Context) error) error {
	callCtx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		return nil
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		sessions.Discard(family)
		return fmt.Errorf("%w: %w: %s: no response after %s", types.ErrConversion, types.ErrTimeout, what, r.timeout)
	}
	return fmt.Errorf("%w: %s: %w", types.ErrConversion, what, err)
}

// removePartial deletes whatever a failed export left at target, so the
// skip policy never mistakes it for a finished PDF.
func removePartial(target string) {
	_ = os.Remove(target)
}
