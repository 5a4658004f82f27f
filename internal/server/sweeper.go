package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mesh-intelligence/lurelands/internal/engine"
)

// Sweeper periodically takes idle players offline.
type Sweeper struct {
	engine *engine.Engine
	idle   time.Duration
	log    *slog.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// NewSweeper schedules a sweep on a cron expression such as "@every 1m".
// Players not updated within idle are swept.
func NewSweeper(e *engine.Engine, idle time.Duration, schedule string, log *slog.Logger) (*Sweeper, error) {
	s := &Sweeper{
		engine: e,
		idle:   idle,
		log:    log,
		cron:   cron.New(),
		now:    time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running scheduled sweeps in the background.
func (s *Sweeper) Start() { s.cron.Start() }

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() { <-s.cron.Stop().Done() }

// Sweep runs one sweep now and returns how many players went offline.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	return s.engine.SweepIdle(ctx, s.now().Add(-s.idle))
}

func (s *Sweeper) run() {
	if _, err := s.Sweep(context.Background()); err != nil {
		s.log.Error("idle sweep failed", "error", err)
	}
}
