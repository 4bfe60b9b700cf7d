//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts $INPUT_DIR, writing to $OUTPUT_DIR
// when set.
func Convert() error {
	mg.Deps(Build)

	input := os.Getenv("INPUT_DIR")
	if input == "" {
		return fmt.Errorf("INPUT_DIR is not set")
	}
	args := []string{"convert", input, "--no-progress"}
	if out := os.Getenv("OUTPUT_DIR"); out != "" {
		args = append(args, "--output", out)
	}
	return sh.RunV(binPath(), args...)
}

// Doctor builds the CLI and reports the available automation backends.
func Doctor() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "doctor")
}
