// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy. Only ErrConfiguration aborts a run; the others are
// recorded on the failing task and the run continues.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrSession       = errors.New("automation session error")
	ErrConversion    = errors.New("conversion error")
	ErrTimeout       = errors.New("automation call timed out")
	ErrIO            = errors.New("i/o error")
)
