// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs a batch conversion of one directory: it scans the
// input, applies the skip policy, converts Office documents through an
// automation backend, copies existing PDFs, and reports every result.
package convert

import (
	"context"
	"time"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// Reporter receives run events in processing order.
type Reporter interface {
	// Start is called once with the number of tasks about to run.
	Start(total int, inputDir, outputDir string)

	// Begin is called before task index (zero-based) is processed.
	Begin(index int, task types.ConversionTask)

	// Result is called once per task with its outcome.
	Result(res types.ConversionResult)

	// Finish is called once after all sessions have been released.
	Finish(summary types.RunSummary)
}

// State is the lifecycle state of a Runner.
type State string

const (
	StateIdle       State = "idle"
	StateScanning   State = "scanning"
	StateProcessing State = "processing"
	StateFinalizing State = "finalizing"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// BatchResult holds the outcome of a run.
type BatchResult struct {
	types.RunSummary
	InputDir  string
	OutputDir string
	Results   []types.ConversionResult
}

// bounded derives a context limited by d. A non-positive d means no limit.
func bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// nopReporter discards all events.
type nopReporter struct{}

func (nopReporter) Start(int, string, string)       {}
func (nopReporter) Begin(int, types.ConversionTask) {}
func (nopReporter) Result(types.ConversionResult)   {}
func (nopReporter) Finish(types.RunSummary)         {}
