package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/me/patrol/internal/metrics"
)

// firing adapts a job body to the cron runner. It enforces the
// no-overlap rule (a firing whose predecessor is still running is
// skipped, not queued) and converts body errors and panics into log
// lines and counters. A failing body never deregisters its job.
type firing struct {
	id     string
	body   Body
	logger *slog.Logger

	mu       sync.Mutex
	inflight bool
}

func newFiring(id string, body Body, logger *slog.Logger) *firing {
	return &firing{id: id, body: body, logger: logger}
}

func (f *firing) tryAcquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inflight {
		return false
	}
	f.inflight = true
	return true
}

func (f *firing) release() {
	f.mu.Lock()
	f.inflight = false
	f.mu.Unlock()
}

// Run executes one firing. Called by cron on its own goroutine, so
// distinct jobs never block each other here.
func (f *firing) Run() {
	if !f.tryAcquire() {
		metrics.OverlapSkipsTotal.WithLabelValues(f.id).Inc()
		f.logger.Warn("previous firing still running, skipping", "job_id", f.id)
		return
	}
	defer f.release()

	metrics.JobsInflight.Inc()
	defer metrics.JobsInflight.Dec()

	start := time.Now()
	err := f.invoke(context.Background())
	if err != nil {
		metrics.FiringsTotal.WithLabelValues(f.id, "failure").Inc()
		f.logger.Error("firing failed", "job_id", f.id, "duration", time.Since(start), "error", err)
		return
	}
	metrics.FiringsTotal.WithLabelValues(f.id, "success").Inc()
	f.logger.Debug("firing complete", "job_id", f.id, "duration", time.Since(start))
}

// invoke calls the body, converting a panic into a failed firing so
// the schedule continues.
func (f *firing) invoke(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return f.body(ctx)
}
