// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/automation"
	"github.com/pdiddy/office2pdf/internal/config"
	"github.com/pdiddy/office2pdf/internal/convert"
	"github.com/pdiddy/office2pdf/internal/logging"
	"github.com/pdiddy/office2pdf/internal/report"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// detectLauncher is replaced in tests.
var detectLauncher = automation.Detect

var convertCmd = &cobra.Command{
	Use:   "convert [input_dir]",
	Short: "Convert Office files in a directory to PDF",
	Long: `Convert scans input_dir (not recursively), converts Word and PowerPoint
files to PDF, copies existing PDFs, and skips files whose PDF is already in
the output directory. Per-file failures are reported and logged but do not
change the exit code.`,
	Args: maxOneArg,
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(config.KeyOutput, "o", "", "output directory (default: <input_dir>/"+types.DefaultOutputSubdir+")")
	cmd.Flags().String(config.KeyLogFile, types.DefaultLogFile, "log file, appended to")
	cmd.Flags().String(config.KeyBackend, string(types.BackendAuto), "automation backend: auto, ole, or soffice")
	cmd.Flags().String(config.KeySoffice, "", "path to the LibreOffice binary")
	cmd.Flags().Duration(config.KeyTimeout, types.DefaultTimeout, "bound on each office call; 0 waits forever")
	cmd.Flags().Bool(config.KeyNoProgress, false, "disable the progress bar")
	cmd.Flags().String(config.KeyReport, "", "write a YAML run report to this path")
	cmd.Flags().Bool(config.KeyVerbose, false, "log debug detail")
}

func runConvert(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}
	v := viper.GetViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	var input string
	if len(args) == 1 {
		input = args[0]
	} else {
		dir, err := promptDirectory(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		input = dir
	}

	cfg, err := config.Load(v, input)
	if err != nil {
		return err
	}

	ctx, stop := notifyContext(cmd.Context())
	defer stop()

	err = execute(ctx, cfg, v.GetBool(config.KeyVerbose), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), "\nOperation cancelled by user.")
	}
	return err
}

// execute runs one conversion batch for cfg. Status lines go to stdout and
// the progress bar to stderr. Only fatal errors are returned; per-file
// failures end up in the log, the console, and the report.
func execute(ctx context.Context, cfg types.ConversionConfig, verbose bool, stdout, stderr io.Writer) error {
	logger, closer, err := logging.Open(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	defer closer.Close()
	logging.SetVerbose(logger, verbose)
	log := logger.WithField("run", uuid.NewString())

	launcher, err := detectLauncher(automation.Options{
		Backend:     cfg.Backend,
		SofficePath: cfg.SofficePath,
		Log:         log,
	})
	if err != nil {
		if errors.Is(err, types.ErrConfiguration) {
			return err
		}
		log.WithError(err).Error("No office automation backend available")
		fmt.Fprintf(stderr, "Warning: %v; documents will fail, PDFs are still copied.\n", err)
		launcher = automation.Unavailable(err)
	} else {
		log.WithFields(logrus.Fields{
			"backend": launcher.Name(),
			"timeout": cfg.Timeout,
		}).Info("Using office automation backend")
	}

	var progress io.Writer
	if cfg.ShowProgress {
		progress = stderr
	}
	logPath := cfg.LogFile
	if abs, err := filepath.Abs(logPath); err == nil {
		logPath = abs
	}
	rep := report.New(stdout, progress, log)
	rep.SetLogFile(logPath)
	runner := convert.NewRunner(launcher, rep, log, cfg.Timeout)
	batch, runErr := runner.Run(ctx, cfg.InputDir, cfg.OutputDir)

	if cfg.ReportPath != "" && !errors.Is(runErr, types.ErrConfiguration) {
		runReport := report.NewRunReport(batch.InputDir, batch.OutputDir, batch.RunSummary, batch.Results)
		if err := report.WriteYAML(cfg.ReportPath, runReport); err != nil {
			log.WithError(err).Error("Could not write run report")
			return errors.Join(runErr, err)
		}
		log.WithField("path", cfg.ReportPath).Info("Wrote run report")
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprintln(stdout, "\nProcessing complete.")
	return nil
}
