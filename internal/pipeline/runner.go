package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/otcampus/campus-feeds/internal/observability"
)

// Runner is the uniform error-containment boundary around every scheduled
// entry point. Whatever happens inside a job — provider outage, malformed
// payload, store rejection, even a panic — the invocation is logged, metered,
// and reported as received, so the external trigger never re-fires on
// failure. Recovery is left to the next scheduled pass.
type Runner struct {
	jobs    map[string]Job
	names   []string
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewRunner registers the given jobs under their names.
func NewRunner(logger *slog.Logger, metrics *observability.Metrics, jobs ...Job) *Runner {
	r := &Runner{
		jobs:    make(map[string]Job, len(jobs)),
		logger:  logger,
		metrics: metrics,
	}
	for _, j := range jobs {
		r.jobs[j.Name()] = j
		r.names = append(r.names, j.Name())
	}
	return r
}

// Domains returns the registered domain names in registration order.
func (r *Runner) Domains() []string {
	return r.names
}

// Invoke runs one domain's pass inside the containment boundary. The return
// value only reports whether the domain exists; the run itself always
// "succeeds" from the trigger's point of view.
func (r *Runner) Invoke(ctx context.Context, domain string) bool {
	job, ok := r.jobs[domain]
	if !ok {
		return false
	}

	start := time.Now()
	err := r.contain(ctx, job)
	r.metrics.RunDuration.WithLabelValues(job.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		r.logger.Error("sync run failed", "domain", job.Name(), "error", err)
		r.metrics.RunsTotal.WithLabelValues(job.Name(), "error").Inc()
		return true
	}

	r.logger.Info("sync run complete", "domain", job.Name(), "duration", time.Since(start))
	r.metrics.RunsTotal.WithLabelValues(job.Name(), "success").Inc()
	r.ready.Store(true)
	return true
}

// contain converts panics into errors so one bad payload cannot take the
// scheduler down.
func (r *Runner) contain(ctx context.Context, job Job) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in %s job: %v", job.Name(), rec)
		}
	}()
	return job.Run(ctx)
}

// CheckReadiness returns nil once any domain has completed a successful pass.
func (r *Runner) CheckReadiness(_ context.Context) error {
	if !r.ready.Load() {
		return errors.New("no domain has completed a sync pass yet")
	}
	return nil
}
