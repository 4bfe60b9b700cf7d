// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// RunReport is the YAML document written by WriteYAML.
type RunReport struct {
	GeneratedAt time.Time      `yaml:"generated_at"`
	InputDir    string         `yaml:"input_dir"`
	OutputDir   string         `yaml:"output_dir"`
	Summary     SummaryRecord  `yaml:"summary"`
	Results     []ResultRecord `yaml:"results"`
}

// SummaryRecord is the serialized form of types.RunSummary.
type SummaryRecord struct {
	Converted int    `yaml:"converted"`
	Copied    int    `yaml:"copied"`
	Skipped   int    `yaml:"skipped"`
	Failed    int    `yaml:"failed"`
	Total     int    `yaml:"total"`
	Elapsed   string `yaml:"elapsed"`
}

// ResultRecord is the serialized form of one types.ConversionResult.
type ResultRecord struct {
	Source   string `yaml:"source"`
	Target   string `yaml:"target"`
	Kind     string `yaml:"kind"`
	Outcome  string `yaml:"outcome"`
	Error    string `yaml:"error,omitempty"`
	Duration string `yaml:"duration"`
}

// NewRunReport builds a report from a finished run.
func NewRunReport(inputDir, outputDir string, s types.RunSummary, results []types.ConversionResult) RunReport {
	rep := RunReport{
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		InputDir:    inputDir,
		OutputDir:   outputDir,
		Summary: SummaryRecord{
			Converted: s.Converted,
			Copied:    s.Copied,
			Skipped:   s.Skipped,
			Failed:    s.Failed,
			Total:     s.Total(),
			Elapsed:   s.Elapsed.Round(time.Millisecond).String(),
		},
		Results: make([]ResultRecord, 0, len(results)),
	}
	for _, r := range results {
		rep.Results = append(rep.Results, ResultRecord{
			Source:   r.Task.Source,
			Target:   r.Task.Target,
			Kind:     string(r.Task.Kind),
			Outcome:  string(r.Outcome),
			Error:    r.Detail(),
			Duration: r.Duration.Round(time.Millisecond).String(),
		})
	}
	return rep
}

// WriteYAML writes rep to path.
func WriteYAML(path string, rep RunReport) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing run report %s: %w", types.ErrIO, path, err)
	}
	return nil
}
