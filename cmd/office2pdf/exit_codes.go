// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// Exit codes. Per-file conversion failures never change the exit code.
const (
	ExitSuccess     = 0
	ExitGeneral     = 1   // any other fatal error
	ExitUsage       = 2   // invalid flags, config, or input directory
	ExitInterrupted = 130 // 128 + SIGINT
)

// exitCodeFor maps an error returned by a command to the process exit code.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, types.ErrConfiguration):
		return ExitUsage
	default:
		return ExitGeneral
	}
}
