package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler triggers each domain on its own fixed interval. Every domain
// runs in its own goroutine; within a domain the loop is sequential, so two
// passes of the same domain never overlap.
type Scheduler struct {
	runner    *Runner
	intervals map[string]time.Duration
	clock     clockwork.Clock
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewScheduler maps domain names to poll intervals. Domains without an
// interval are trigger-only (HTTP).
func NewScheduler(runner *Runner, intervals map[string]time.Duration, clock clockwork.Clock, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:    runner,
		intervals: intervals,
		clock:     clock,
		logger:    logger,
	}
}

// Start launches one polling loop per configured domain. Each domain runs
// once immediately, then on every interval tick until the context ends.
func (s *Scheduler) Start(ctx context.Context) {
	for _, domain := range s.runner.Domains() {
		interval, ok := s.intervals[domain]
		if !ok || interval <= 0 {
			s.logger.Info("domain is trigger-only", "domain", domain)
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, domain, interval)
	}
}

func (s *Scheduler) loop(ctx context.Context, domain string, interval time.Duration) {
	defer s.wg.Done()
	s.logger.Info("starting domain schedule", "domain", domain, "interval", interval)

	s.runner.Invoke(ctx, domain)

	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("domain schedule stopping", "domain", domain)
			return
		case <-ticker.Chan():
			s.runner.Invoke(ctx, domain)
		}
	}
}

// Stop blocks until every polling loop has observed context cancellation.
func (s *Scheduler) Stop() {
	s.wg.Wait()
}
