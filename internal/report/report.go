// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders conversion progress to the terminal and the log.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// maxNameDisplay is the longest file name shown in the progress bar.
const maxNameDisplay = 40

// Reporter prints one status line per result to out, keeps a progress bar
// on the progress writer, and logs every event.
type Reporter struct {
	out      io.Writer
	progress io.Writer
	log      logrus.FieldLogger
	logFile  string
	bar      *progressbar.ProgressBar
	started  time.Time
}

// New creates a Reporter. A nil progress writer disables the progress bar.
func New(out, progress io.Writer, log logrus.FieldLogger) *Reporter {
	return &Reporter{out: out, progress: progress, log: log}
}

// SetLogFile makes the run header show where the log is written.
func (r *Reporter) SetLogFile(path string) {
	r.logFile = path
}

// Start logs the run header and creates the progress bar.
func (r *Reporter) Start(total int, inputDir, outputDir string) {
	r.started = time.Now()
	r.log.WithFields(logrus.Fields{
		"input":  inputDir,
		"output": outputDir,
		"files":  total,
	}).Info("Run started")

	fmt.Fprintf(r.out, "Input directory:  %s\n", inputDir)
	fmt.Fprintf(r.out, "Output directory: %s\n", outputDir)
	if r.logFile != "" {
		fmt.Fprintf(r.out, "Log file:         %s\n", r.logFile)
	}
	if total == 0 {
		fmt.Fprintln(r.out, "No files to copy or convert.")
		return
	}
	fmt.Fprintf(r.out, "Files to process: %d\n\n", total)

	if r.progress != nil {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("Processing files..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetElapsedTime(true),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
			progressbar.OptionClearOnFinish(),
		)
	}
}

// Begin updates the progress description with the current file.
func (r *Reporter) Begin(index int, task types.ConversionTask) {
	r.log.WithField("file", task.Name()).Infof("Processing '%s'", task.Name())
	if r.bar != nil {
		r.bar.Describe(fmt.Sprintf("Processing %s", DisplayName(task.Name())))
	}
}

// Result prints and logs a single outcome and advances the progress bar.
func (r *Reporter) Result(res types.ConversionResult) {
	if r.bar != nil {
		r.bar.Clear()
	}
	fmt.Fprintln(r.out, StatusLine(res))

	name := res.Task.Name()
	log := r.log.WithField("file", name)
	switch res.Outcome {
	case types.OutcomeConverted:
		log.Infof("Successfully converted '%s' to PDF", name)
	case types.OutcomeCopied:
		log.Infof("Copied '%s' to output directory", name)
	case types.OutcomeSkipped:
		log.Infof("Skipping '%s', PDF already exists", name)
	case types.OutcomeFailed:
		log.WithError(res.Err).Errorf("Failed to process '%s'", name)
	}

	if r.bar != nil {
		r.bar.Add(1)
	}
}

// Finish closes the progress bar and prints the summary.
func (r *Reporter) Finish(s types.RunSummary) {
	if r.bar != nil {
		r.bar.Finish()
	}
	fmt.Fprintf(r.out, "\n%s\n", SummaryLine(s))

	log := r.log.WithFields(logrus.Fields{
		"converted": s.Converted,
		"copied":    s.Copied,
		"skipped":   s.Skipped,
		"failed":    s.Failed,
		"elapsed":   s.Elapsed.Round(time.Millisecond),
	})
	if s.HasFailures() {
		log.Warn("Run finished with failures")
		return
	}
	log.Info("Run finished")
}

// StatusLine formats the console line for a result.
func StatusLine(res types.ConversionResult) string {
	name := res.Task.Name()
	switch res.Outcome {
	case types.OutcomeSkipped:
		return fmt.Sprintf("skipped:   %s (already exists)", name)
	case types.OutcomeFailed:
		return fmt.Sprintf("failed:    %s (%s)", name, res.Detail())
	case types.OutcomeCopied:
		return fmt.Sprintf("copied:    %s", name)
	default:
		return fmt.Sprintf("converted: %s", name)
	}
}

// SummaryLine formats the end-of-run counts.
func SummaryLine(s types.RunSummary) string {
	return fmt.Sprintf("Run summary: %d converted, %d copied, %d skipped, %d failed (total: %d) in %s",
		s.Converted, s.Copied, s.Skipped, s.Failed, s.Total(), s.Elapsed.Round(time.Millisecond))
}

// DisplayName truncates long file names for the progress bar.
func DisplayName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxNameDisplay {
		return name
	}
	return string(runes[:maxNameDisplay]) + "..."
}
