// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// promptDirectory asks for an input directory until an existing directory
// is entered. End of input is a configuration error.
func promptDirectory(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Office File to PDF Converter")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter the input directory path: ")
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", fmt.Errorf("%w: reading input directory: %w", types.ErrConfiguration, err)
			}
			fmt.Fprintln(out)
			return "", fmt.Errorf("%w: no input directory given", types.ErrConfiguration)
		}
		dir := strings.Trim(strings.TrimSpace(sc.Text()), `"'`)
		if info, err := os.Stat(dir); dir != "" && err == nil && info.IsDir() {
			return dir, nil
		}
		fmt.Fprintln(out, "Invalid directory. Please enter a valid path.")
	}
}
