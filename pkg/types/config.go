// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the scanner, the conversion
// driver, the reporter, and the CLI.
package types

import "time"

// BackendName selects the office automation backend.
type BackendName string

const (
	BackendAuto    BackendName = "auto"
	BackendOLE     BackendName = "ole"
	BackendSoffice BackendName = "soffice"
)

func (b BackendName) String() string { return string(b) }

const (
	// DefaultOutputSubdir is created under the input directory when no
	// output directory is given.
	DefaultOutputSubdir = "converted_pdf"

	// DefaultLogFile is relative to the working directory.
	DefaultLogFile = "conversion_log.txt"

	// DefaultTimeout bounds each call into the automation backend.
	DefaultTimeout = 5 * time.Minute
)

// ConversionConfig holds the settings for one conversion run.
type ConversionConfig struct {
	// InputDir is the directory scanned for documents (non-recursive).
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the PDFs (default: InputDir/converted_pdf).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// LogFile is the append-only log path.
	LogFile string `json:"log_file" yaml:"log_file"`

	// Backend selects ole, soffice, or auto detection.
	Backend BackendName `json:"backend" yaml:"backend"`

	// SofficePath overrides the LibreOffice binary lookup.
	SofficePath string `json:"soffice_path,omitempty" yaml:"soffice_path,omitempty"`

	// Timeout bounds each automation call. Zero disables the bound.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ShowProgress enables the live progress bar.
	ShowProgress bool `json:"show_progress" yaml:"show_progress"`

	// ReportPath, when set, receives a YAML run report.
	ReportPath string `json:"report_path,omitempty" yaml:"report_path,omitempty"`
}
