//go:build !windows

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package automation

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/pkg/types"
)

// oleLauncher stands in for the COM backend on platforms without COM.
type oleLauncher struct{}

func newOLELauncher(logrus.FieldLogger) Launcher { return oleLauncher{} }

func (oleLauncher) Name() string    { return types.BackendOLE.String() }
func (oleLauncher) Available() bool { return false }

func (oleLauncher) Start(context.Context, types.Family) (Application, error) {
	return nil, fmt.Errorf("the ole backend requires Windows with Microsoft Office installed")
}
