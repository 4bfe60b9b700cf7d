// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"time"
)

// DocumentKind classifies a source file by how it reaches the output directory.
type DocumentKind string

const (
	KindWord         DocumentKind = "word"
	KindPresentation DocumentKind = "presentation"
	KindPDF          DocumentKind = "pdf"
	KindUnsupported  DocumentKind = ""
)

// Family is the office application category needed to open a document.
type Family string

const (
	FamilyWord         Family = "word"
	FamilyPresentation Family = "presentation"
)

// Families lists every application family in release order.
var Families = []Family{FamilyWord, FamilyPresentation}

// Family returns the application family for k. The second value is false
// for kinds that never need an office application (PDF passthrough).
func (k DocumentKind) Family() (Family, bool) {
	switch k {
	case KindWord:
		return FamilyWord, true
	case KindPresentation:
		return FamilyPresentation, true
	default:
		return "", false
	}
}

// ConversionTask is one unit of work produced by the scanner.
type ConversionTask struct {
	// Source is the path of the input file.
	Source string `json:"source" yaml:"source"`

	// Target is the path of the PDF to produce in the output directory.
	Target string `json:"target" yaml:"target"`

	// Kind selects conversion or passthrough.
	Kind DocumentKind `json:"kind" yaml:"kind"`
}

// Name returns the base name of the source file.
func (t ConversionTask) Name() string {
	return filepath.Base(t.Source)
}

// Outcome is the final state of a processed task.
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeCopied    Outcome = "copied"
	OutcomeFailed    Outcome = "failed"
)

// ConversionResult records what happened to a single task.
type ConversionResult struct {
	Task     ConversionTask
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Detail returns the error text of a failed result, or "".
func (r ConversionResult) Detail() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// RunSummary aggregates result counts for a run.
type RunSummary struct {
	Converted int           `json:"converted" yaml:"converted"`
	Skipped   int           `json:"skipped" yaml:"skipped"`
	Copied    int           `json:"copied" yaml:"copied"`
	Failed    int           `json:"failed" yaml:"failed"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Add counts r into the summary.
func (s *RunSummary) Add(r ConversionResult) {
	switch r.Outcome {
	case OutcomeConverted:
		s.Converted++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeCopied:
		s.Copied++
	case OutcomeFailed:
		s.Failed++
	}
}

// Total returns the number of results counted.
func (s RunSummary) Total() int {
	return s.Converted + s.Skipped + s.Copied + s.Failed
}

// HasFailures reports whether any task failed.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}
