// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the office2pdf CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/config"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// configErr holds a config file failure from initConfig until a command runs.
var configErr error

// rootCmd converts a directory when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "office2pdf [input_dir]",
	Short: "Batch-convert Word and PowerPoint files to PDF",
	Long: `office2pdf converts every Word (.doc, .docx) and PowerPoint (.ppt, .pptx)
file in a directory to PDF through an installed office suite, and copies
PDFs that are already there. Files whose PDF already exists in the output
directory are skipped, so an interrupted run can simply be repeated.

Without input_dir, office2pdf asks for the directory interactively.`,
	Version:       version,
	Args:          maxOneArg,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./office2pdf.yaml or ~/.config/office2pdf/office2pdf.yaml)")
	rootCmd.SetVersionTemplate("office2pdf {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	})
	addConvertFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	configErr = config.Init(viper.GetViper(), cfgFile)
	if configErr == nil && viper.ConfigFileUsed() != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// maxOneArg accepts an optional input directory.
func maxOneArg(cmd *cobra.Command, args []string) error {
	if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w: %w", types.ErrConfiguration, err)
	}
	return nil
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitCodeFor(err))
}
