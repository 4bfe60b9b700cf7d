// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office2pdf/internal/automation"
	"github.com/pdiddy/office2pdf/internal/config"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// listLaunchers is replaced in tests.
var listLaunchers = automation.Launchers

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which office automation backends are available",
	Long: `Doctor probes every automation backend office2pdf can use, in the order
auto detection tries them, and reports which are available. It exits
non-zero when none is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		v := viper.GetViper()
		if err := config.BindFlags(v, cmd.Flags()); err != nil {
			return err
		}
		return runDoctor(cmd.OutOrStdout(), doctorOptions(v))
	},
}

func init() {
	doctorCmd.Flags().String(config.KeyBackend, string(types.BackendAuto), "automation backend: auto, ole, or soffice")
	doctorCmd.Flags().String(config.KeySoffice, "", "path to the LibreOffice binary")

	rootCmd.AddCommand(doctorCmd)
}

// doctorOptions reads the backend selection the same way convert does.
func doctorOptions(v *viper.Viper) automation.Options {
	return automation.Options{
		Backend:     config.Backend(v),
		SofficePath: v.GetString(config.KeySoffice),
	}
}

// runDoctor prints one line per candidate launcher and fails with
// ErrSession when none is available.
func runDoctor(out io.Writer, opts automation.Options) error {
	fmt.Fprintf(out, "office2pdf %s (%s/%s)\n\n", version, runtime.GOOS, runtime.GOARCH)

	switch opts.Backend {
	case types.BackendAuto, types.BackendOLE, types.BackendSoffice:
	default:
		return fmt.Errorf("%w: unknown backend %q (use auto, ole, or soffice)", types.ErrConfiguration, opts.Backend)
	}

	candidates := listLaunchers(opts)

	ready := 0
	for _, l := range candidates {
		status := "not available"
		if l.Available() {
			status = "available"
			ready++
		}
		fmt.Fprintf(out, "  %-24s %s\n", l.Name(), status)
	}
	fmt.Fprintln(out)

	if ready == 0 {
		return fmt.Errorf("%w: no office automation backend available", types.ErrSession)
	}
	fmt.Fprintf(out, "%d of %d backends available.\n", ready, len(candidates))
	return nil
}
