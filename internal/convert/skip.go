// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// ShouldSkip reports whether the task's output already exists. Existing
// outputs are never overwritten, which makes repeated runs idempotent.
func ShouldSkip(task types.ConversionTask) bool {
	_, err := os.Stat(task.Target)
	return err == nil
}
