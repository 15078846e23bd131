package updater

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ArtemKolodko/band-oracle-updater/internal/metric"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Scheduler drives the update loop. The interval is waited after each cycle
// returns, so two cycles never run at the same time.
type Scheduler struct {
	source   TargetSource
	runner   CycleRunner
	interval time.Duration

	state       atomic.Int32
	cycles      atomic.Uint64
	lastCycleAt atomic.Int64
}

func NewScheduler(source TargetSource, runner CycleRunner, interval time.Duration) (*Scheduler, error) {
	if source == nil {
		return nil, fmt.Errorf("[Scheduler] target source is nil")
	}
	if runner == nil {
		return nil, fmt.Errorf("[Scheduler] cycle runner is nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("[Scheduler] interval must be positive, got %s", interval)
	}
	return &Scheduler{
		source:   source,
		runner:   runner,
		interval: interval,
	}, nil
}

// Run starts a cycle immediately, then alternates between idle and running
// until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Info().Dur("interval", s.interval).Msg("Update loop started")

	for {
		if ctx.Err() != nil {
			break
		}

		s.runOnce(ctx)

		s.state.Store(int32(StateIdle))
		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}

	log.Info().Uint64("cycles", s.cycles.Load()).Msg("Update loop stopped")
	return nil
}

// runOnce is the cycle-level boundary: target resolution errors and panics
// are logged here and the loop goes idle as usual.
func (s *Scheduler) runOnce(ctx context.Context) {
	s.state.Store(int32(StateRunning))
	start := time.Now()
	failed := false

	ctx, _ = WithCycleID(ctx)
	logger := cycleLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			failed = true
			logger.Error().Interface("panic", r).Msg("Recovered from panic in update cycle")
			metric.RecordError("cycle_panic")
		}
		s.cycles.Add(1)
		s.lastCycleAt.Store(time.Now().UnixNano())
		metric.RecordCycle(failed, time.Since(start))
		logger.Debug().Bool("failed", failed).Dur("took", time.Since(start)).Msg("Update cycle done")
	}()

	targets, err := s.source.Targets(ctx)
	if err != nil {
		failed = true
		logger.Error().Err(err).Msg("Failed to resolve update targets")
		metric.RecordError("resolve_targets")
		return
	}

	s.runner.RunCycle(ctx, targets)
}

func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Cycles returns how many cycles have finished, failed ones included
func (s *Scheduler) Cycles() uint64 {
	return s.cycles.Load()
}

// LastCycleAt is zero until the first cycle finishes
func (s *Scheduler) LastCycleAt() time.Time {
	ns := s.lastCycleAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}
