package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/perchhq/perch/internal/domain"
)

// Runner is one agent's activation entry point. Run must contain its own
// failures; the scheduler never inspects the outcome.
type Runner interface {
	Name() string
	Run(ctx context.Context)
}

// Scheduler drives a fleet of runners. Each runner gets its own goroutine, so
// activations of the same agent never overlap while different agents run
// concurrently.
type Scheduler struct {
	policy   Policy
	notifier domain.Notifier
	clock    domain.Clock
	logger   *slog.Logger
	cancel   context.CancelFunc
	runners  []Runner
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// New creates a Scheduler. The notifier is closed on Stop.
func New(policy Policy, runners []Runner, notifier domain.Notifier, clock domain.Clock, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		policy:   policy,
		runners:  runners,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// Start launches one activation loop per runner. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, r := range s.runners {
		s.wg.Add(1)
		go s.loop(ctx, r)
	}
	s.logger.Info("scheduler started", "agents", len(s.runners))
}

// Stop cancels all pending activations, waits for in-flight ones to finish,
// and closes the notification sink.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()
	s.wg.Wait()
	if err := s.notifier.Close(); err != nil {
		s.logger.Warn("close notifier", "error", err)
	}
	s.logger.Info("scheduler stopped")
}

// loop sleeps until the policy's next slot, runs one activation, and repeats
// until the context is cancelled. An in-flight activation finishes before the
// loop notices cancellation.
func (s *Scheduler) loop(ctx context.Context, r Runner) {
	defer s.wg.Done()

	for {
		next := s.policy.Next(r.Name(), s.clock.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.logger.Debug("activating", "agent", r.Name())
		r.Run(ctx)
	}
}
