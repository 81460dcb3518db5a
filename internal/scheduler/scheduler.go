// Package scheduler drives periodic background refreshes of the rate table.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"ratewatch/internal/rates"
)

// Scheduler triggers controller refreshes on a cron schedule. The controller's
// own throttle still applies: a tick that lands inside the window is logged
// and dropped.
type Scheduler struct {
	cron *cron.Cron
	ctrl rates.RateControllerInterface
	log  *zap.SugaredLogger
	ctx  context.Context
}

// New creates a Scheduler. The context bounds every refresh issued by a tick.
func New(ctx context.Context, ctrl rates.RateControllerInterface, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		ctrl: ctrl,
		log:  logger,
		ctx:  ctx,
	}
}

// Register adds the refresh job under the given cron spec (e.g. "@every 5m").
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("Auto-refresh scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Infow("Auto-refresh scheduler stopped")
}

func (s *Scheduler) tick() {
	_, err := s.ctrl.Refresh(s.ctx)
	if err == nil {
		return
	}

	var throttled *rates.ThrottledError
	if errors.As(err, &throttled) {
		s.log.Infow("Scheduled refresh throttled", "seconds_remaining", throttled.SecondsRemaining)
		return
	}
	s.log.Errorw("Scheduled refresh failed", "error", err)
}
