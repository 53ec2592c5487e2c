package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/me/patrol/internal/engine"
	"github.com/me/patrol/internal/jobs"
	"github.com/me/patrol/internal/metrics"
	"github.com/me/patrol/internal/store"
	"github.com/me/patrol/pkg/model"
)

// Reconciler is the only writer path between the control surface and
// the engine/store pair. Every mutation goes engine first, store
// second: the engine is authoritative for what is actually running,
// the store is a best-effort mirror used for display and for seeding
// state after a restart.
//
// Mutations on the same job id are serialized; distinct ids proceed
// concurrently. Listing takes no per-id lock and may observe either
// side of an in-flight mutation.
type Reconciler struct {
	engine *engine.Engine
	store  store.Store
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Reconciler over an engine and a metadata store.
func New(eng *engine.Engine, st store.Store, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		engine: eng,
		store:  st,
		logger: logger.With("component", "reconciler"),
		locks:  make(map[string]*sync.Mutex),
	}
}

// lock serializes mutations per job id. Lock entries are never
// reclaimed; the id set is the configured catalog plus administrative
// adds, small for the lifetime of a process.
func (r *Reconciler) lock(id string) func() {
	r.mu.Lock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// partialFailure records mirror drift and wraps the store failure. The
// engine mutation already succeeded, so the caller's retry converges
// the mirror rather than redoing work.
func (r *Reconciler) partialFailure(op, id string, err error) error {
	metrics.StoreDriftTotal.WithLabelValues(op).Inc()
	r.logger.Error("metadata mirror write failed", "op", op, "job_id", id, "error", err)
	return &model.PartialFailureError{Op: op, JobID: id, Err: err}
}

// StartJob resumes firing of id and mirrors enabled=true. Unknown ids
// yield ErrNotFound; a failed mirror write yields *PartialFailureError
// with the job left resumed.
func (r *Reconciler) StartJob(ctx context.Context, id string) error {
	unlock := r.lock(id)
	defer unlock()

	if err := r.engine.Resume(id); err != nil {
		return err
	}
	if err := r.store.SetEnabled(ctx, id, true); err != nil {
		return r.partialFailure("start", id, err)
	}

	r.logger.Info("job started", "job_id", id)
	return nil
}

// PauseJob suspends firing of id and mirrors enabled=false. Pausing an
// already paused job succeeds and leaves state unchanged.
func (r *Reconciler) PauseJob(ctx context.Context, id string) error {
	unlock := r.lock(id)
	defer unlock()

	if err := r.engine.Pause(id); err != nil {
		return err
	}
	if err := r.store.SetEnabled(ctx, id, false); err != nil {
		return r.partialFailure("pause", id, err)
	}

	r.logger.Info("job paused", "job_id", id)
	return nil
}

// UpdateInterval reschedules id to fire every minutes and mirrors the
// new interval. The interval is validated before anything is touched.
func (r *Reconciler) UpdateInterval(ctx context.Context, id string, minutes int) error {
	if minutes <= 0 || minutes > engine.MaxIntervalMinutes {
		return fmt.Errorf("interval %d: %w", minutes, model.ErrInvalidInterval)
	}

	unlock := r.lock(id)
	defer unlock()

	if err := r.engine.Reschedule(id, minutes); err != nil {
		return err
	}
	if err := r.store.SetInterval(ctx, id, minutes); err != nil {
		return r.partialFailure("update_interval", id, err)
	}

	r.logger.Info("job interval updated", "job_id", id, "interval_minutes", minutes)
	return nil
}

// DeleteJob removes id from the engine and the store. Deletion is
// idempotent: an id unknown to either side is not an error.
func (r *Reconciler) DeleteJob(ctx context.Context, id string) error {
	unlock := r.lock(id)
	defer unlock()

	if err := r.engine.Remove(id); err != nil && !errors.Is(err, model.ErrNotFound) {
		return err
	}
	if err := r.store.DeleteJob(ctx, id); err != nil {
		return r.partialFailure("delete", id, err)
	}

	r.logger.Info("job deleted", "job_id", id)
	return nil
}

// ListJobs enumerates live jobs enriched with persisted metadata. A
// live job whose metadata row is missing is reported with nil
// interval/enabled markers; it never hides the rest of the listing. A
// store read failure fails the whole listing.
func (r *Reconciler) ListJobs(ctx context.Context) ([]model.JobSummary, error) {
	live := r.engine.List()

	rows, err := r.store.ListJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list metadata: %v", model.ErrStoreUnavailable, err)
	}
	byID := make(map[string]*model.JobMetadata, len(rows))
	for _, m := range rows {
		byID[m.JobID] = m
	}

	out := make([]model.JobSummary, 0, len(live))
	for _, d := range live {
		s := model.JobSummary{ID: d.ID, Name: d.Name}
		if m, ok := byID[d.ID]; ok {
			interval := m.TimeIntervalMinutes
			enabled := m.Enabled
			s.TimeIntervalMinutes = &interval
			s.Enabled = &enabled
			s.LastSuccess = m.LastSuccess
		} else {
			r.logger.Warn("live job has no metadata row", "job_id", d.ID)
		}
		out = append(out, s)
	}
	return out, nil
}

// RegisterJob adds a new job in scheduled state and seeds its metadata
// row. Registration collisions and invalid intervals pass through from
// the engine.
func (r *Reconciler) RegisterJob(ctx context.Context, reg jobs.Registration) error {
	unlock := r.lock(reg.ID)
	defer unlock()

	if err := r.engine.Register(reg.ID, reg.Name, reg.IntervalMinutes, r.instrument(reg.ID, reg.Body)); err != nil {
		return err
	}

	now := time.Now().UTC()
	meta := &model.JobMetadata{
		JobID:               reg.ID,
		Name:                reg.Name,
		TimeIntervalMinutes: reg.IntervalMinutes,
		Enabled:             true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := r.store.UpsertJob(ctx, meta); err != nil {
		return r.partialFailure("register", reg.ID, err)
	}

	r.logger.Info("job registered", "job_id", reg.ID, "interval_minutes", reg.IntervalMinutes)
	return nil
}

// Bootstrap registers the configured catalog at process start. A
// persisted metadata row, when present, wins over catalog defaults:
// the interval is recovered and a job disabled before the restart
// comes up paused. Missing rows are seeded. Individual job failures
// are logged and skipped so one bad entry cannot take down the rest.
func (r *Reconciler) Bootstrap(ctx context.Context, regs []jobs.Registration) error {
	var registered int
	for _, reg := range regs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.bootstrapJob(ctx, reg); err != nil {
			r.logger.Error("bootstrap job failed", "job_id", reg.ID, "error", err)
			continue
		}
		registered++
	}
	r.logger.Info("bootstrap complete", "registered", registered, "configured", len(regs))
	return nil
}

func (r *Reconciler) bootstrapJob(ctx context.Context, reg jobs.Registration) error {
	unlock := r.lock(reg.ID)
	defer unlock()

	minutes := reg.IntervalMinutes
	enabled := true

	meta, err := r.store.GetJob(ctx, reg.ID)
	if err != nil {
		r.logger.Warn("metadata read failed, using catalog defaults", "job_id", reg.ID, "error", err)
	} else if meta != nil {
		// Persisted configuration wins over the catalog after a
		// restart; a row outside the schedulable range does not.
		enabled = meta.Enabled
		if meta.TimeIntervalMinutes > 0 && meta.TimeIntervalMinutes <= engine.MaxIntervalMinutes {
			minutes = meta.TimeIntervalMinutes
		}
	}

	if err := r.engine.Register(reg.ID, reg.Name, minutes, r.instrument(reg.ID, reg.Body)); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if !enabled {
		if err := r.engine.Pause(reg.ID); err != nil {
			return fmt.Errorf("pause recovered-disabled job: %w", err)
		}
	}

	now := time.Now().UTC()
	seed := &model.JobMetadata{
		JobID:               reg.ID,
		Name:                reg.Name,
		TimeIntervalMinutes: minutes,
		Enabled:             enabled,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := r.store.UpsertJob(ctx, seed); err != nil {
		// The engine registration stands; the mirror converges on the
		// next successful mutation.
		metrics.StoreDriftTotal.WithLabelValues("register").Inc()
		r.logger.Error("metadata seed failed", "job_id", reg.ID, "error", err)
	}
	return nil
}

// instrument wraps a body so successful firings stamp last_success.
// The write is best-effort: mirror trouble never fails a firing.
func (r *Reconciler) instrument(id string, body engine.Body) engine.Body {
	return func(ctx context.Context) error {
		if err := body(ctx); err != nil {
			return err
		}
		if err := r.store.SetLastSuccess(ctx, id, time.Now().UTC()); err != nil {
			metrics.StoreDriftTotal.WithLabelValues("last_success").Inc()
			r.logger.Warn("last_success write failed", "job_id", id, "error", err)
		}
		return nil
	}
}
