// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/office2pdf/internal/automation"
	"github.com/pdiddy/office2pdf/pkg/types"
)

// QuitTimeout bounds each application shutdown during release.
var QuitTimeout = 30 * time.Second

// Sessions owns at most one running application per document family.
// Applications start on first use and are quit by Discard or ReleaseAll.
// It is not safe for concurrent use.
type Sessions struct {
	launcher automation.Launcher
	log      logrus.FieldLogger
	timeout  time.Duration
	live     map[types.Family]automation.Application
}

// NewSessions creates an empty session set. timeout bounds each application
// start; zero means no bound.
func NewSessions(launcher automation.Launcher, log logrus.FieldLogger, timeout time.Duration) *Sessions {
	return &Sessions{
		launcher: launcher,
		log:      log,
		timeout:  timeout,
		live:     make(map[types.Family]automation.Application),
	}
}

// Acquire returns the running application for family, starting it if
// needed. A failed start is not remembered: the next call tries again.
func (s *Sessions) Acquire(ctx context.Context, family types.Family) (automation.Application, error) {
	if app, ok := s.live[family]; ok {
		return app, nil
	}

	log := s.log.WithFields(logrus.Fields{"family": family, "backend": s.launcher.Name()})
	log.Info("Starting office application")

	startCtx, cancel := bounded(ctx, s.timeout)
	defer cancel()

	app, err := s.launcher.Start(startCtx, family)
	if err != nil {
		if errors.Is(startCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w after %s: %w", types.ErrTimeout, s.timeout, err)
		}
		log.WithError(err).Error("Could not start office application")
		return nil, fmt.Errorf("%w: starting %s application: %w", types.ErrSession, family, err)
	}

	s.live[family] = app
	return app, nil
}

// Live returns the families with a running application, in release order.
func (s *Sessions) Live() []types.Family {
	var out []types.Family
	for _, f := range types.Families {
		if _, ok := s.live[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Discard quits and forgets the application for family, if any. The next
// Acquire starts a fresh one.
func (s *Sessions) Discard(family types.Family) {
	app, ok := s.live[family]
	if !ok {
		return
	}
	delete(s.live, family)
	_ = s.quit(family, app)
}

// ReleaseAll quits every running application exactly once. Failures are
// logged and returned joined; they never affect task results.
func (s *Sessions) ReleaseAll() error {
	var errs []error
	for _, family := range s.Live() {
		app := s.live[family]
		delete(s.live, family)
		if err := s.quit(family, app); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Sessions) quit(family types.Family, app automation.Application) error {
	ctx, cancel := context.WithTimeout(context.Background(), QuitTimeout)
	defer cancel()

	log := s.log.WithField("family", family)
	if err := app.Quit(ctx); err != nil {
		log.WithError(err).Error("Error while quitting office application")
		return fmt.Errorf("quitting %s application: %w", family, err)
	}
	log.Info("Closed office application")
	return nil
}
