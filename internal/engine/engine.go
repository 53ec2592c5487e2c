package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/me/patrol/pkg/model"
)

// Body is one executable firing of a job. Bodies may block for as long
// as they need; the engine serializes successive firings of the same
// job and never overlaps them.
type Body func(ctx context.Context) error

// MaxIntervalMinutes is the largest schedulable interval. Anything
// above it overflows time.Duration when converted to minutes, which
// would wrap negative and fire far too often instead of rarely.
const MaxIntervalMinutes = int(math.MaxInt64 / int64(time.Minute))

// Engine owns the set of live, interval-triggered job handles. It is
// constructed explicitly and injected into its callers; there is no
// package-level instance.
//
// All operations are safe for concurrent use. Lookups are indexed by
// job id.
type Engine struct {
	c      *cron.Cron
	logger *slog.Logger

	mu   sync.Mutex
	jobs map[string]*jobEntry
}

// jobEntry pairs a job's descriptor fields with its cron entry. The
// firing wrapper persists across pause/resume so the in-flight guard
// survives state changes.
type jobEntry struct {
	id      string
	name    string
	minutes int
	state   model.JobState
	entryID cron.EntryID // valid only while state is SCHEDULED
	run     *firing
}

func (j *jobEntry) descriptor() model.JobDescriptor {
	return model.JobDescriptor{
		ID:              j.id,
		Name:            j.name,
		IntervalMinutes: j.minutes,
		State:           j.state,
	}
}

// New creates an Engine. Call Start to begin triggering and Stop to
// shut down.
func New(logger *slog.Logger) *Engine {
	return &Engine{
		c:      cron.New(),
		logger: logger.With("component", "engine"),
		jobs:   make(map[string]*jobEntry),
	}
}

// Start begins interval triggering. Jobs may be registered before or
// after Start.
func (e *Engine) Start() {
	e.c.Start()
	e.logger.Info("engine started")
}

// Stop halts triggering and waits for in-flight firings to finish, up
// to ctx. Firings still running when ctx expires are abandoned: their
// goroutines complete on their own but nothing waits for them.
func (e *Engine) Stop(ctx context.Context) error {
	drained := e.c.Stop()
	select {
	case <-drained.Done():
		e.logger.Info("engine stopped, in-flight firings drained")
		return nil
	case <-ctx.Done():
		e.logger.Warn("engine stopped with firings still in flight")
		return ctx.Err()
	}
}

// Register adds a new job in SCHEDULED state. The first firing is due
// one interval from now.
func (e *Engine) Register(id, name string, minutes int, body Body) error {
	if minutes <= 0 || minutes > MaxIntervalMinutes {
		return fmt.Errorf("interval %d: %w", minutes, model.ErrInvalidInterval)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.jobs[id]; exists {
		return fmt.Errorf("register %s: %w", id, model.ErrDuplicateID)
	}

	entry := &jobEntry{
		id:      id,
		name:    name,
		minutes: minutes,
		state:   model.JobStateScheduled,
		run:     newFiring(id, body, e.logger),
	}
	entry.entryID = e.c.Schedule(every(minutes), entry.run)
	e.jobs[id] = entry

	e.logger.Info("job registered", "job_id", id, "name", name, "interval_minutes", minutes)
	return nil
}

// Find returns the live descriptor for id.
func (e *Engine) Find(id string) (model.JobDescriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.jobs[id]
	if !ok {
		return model.JobDescriptor{}, model.ErrNotFound
	}
	return entry.descriptor(), nil
}

// List returns all registered jobs ordered by id, live state included.
func (e *Engine) List() []model.JobDescriptor {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.JobDescriptor, 0, len(e.jobs))
	for _, entry := range e.jobs {
		out = append(out, entry.descriptor())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Pause suspends future firings of id. Pausing an already paused job
// is a no-op.
func (e *Engine) Pause(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.jobs[id]
	if !ok {
		return model.ErrNotFound
	}
	if entry.state == model.JobStatePaused {
		return nil
	}

	e.c.Remove(entry.entryID)
	entry.entryID = 0
	entry.state = model.JobStatePaused

	e.logger.Info("job paused", "job_id", id)
	return nil
}

// Resume reinstates firings of a paused job; the next firing is due
// one interval from now. Resuming a scheduled job is a no-op.
func (e *Engine) Resume(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.jobs[id]
	if !ok {
		return model.ErrNotFound
	}
	if entry.state == model.JobStateScheduled {
		return nil
	}

	entry.entryID = e.c.Schedule(every(entry.minutes), entry.run)
	entry.state = model.JobStateScheduled

	e.logger.Info("job resumed", "job_id", id, "interval_minutes", entry.minutes)
	return nil
}

// Reschedule replaces the interval of id. For a scheduled job the next
// firing is recomputed from now + new interval; for a paused job the
// new interval takes effect on resume.
func (e *Engine) Reschedule(id string, minutes int) error {
	if minutes <= 0 || minutes > MaxIntervalMinutes {
		return fmt.Errorf("interval %d: %w", minutes, model.ErrInvalidInterval)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.jobs[id]
	if !ok {
		return model.ErrNotFound
	}

	entry.minutes = minutes
	if entry.state == model.JobStateScheduled {
		e.c.Remove(entry.entryID)
		entry.entryID = e.c.Schedule(every(minutes), entry.run)
	}

	e.logger.Info("job rescheduled", "job_id", id, "interval_minutes", minutes)
	return nil
}

// Remove unregisters id permanently. Returns ErrNotFound when id was
// never registered; callers treat both outcomes as "nothing to
// remove".
func (e *Engine) Remove(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.jobs[id]
	if !ok {
		return model.ErrNotFound
	}

	if entry.state == model.JobStateScheduled {
		e.c.Remove(entry.entryID)
	}
	delete(e.jobs, id)

	e.logger.Info("job removed", "job_id", id)
	return nil
}

// every builds the constant-delay schedule. minutes has already been
// bounded by MaxIntervalMinutes, so the conversion cannot overflow.
func every(minutes int) cron.Schedule {
	return cron.Every(time.Duration(minutes) * time.Minute)
}
