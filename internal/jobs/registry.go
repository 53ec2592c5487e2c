package jobs

import (
	"fmt"
	"log/slog"

	"github.com/me/patrol/internal/engine"
)

// Runner builds executable bodies for one catalog entry type.
type Runner interface {
	// Type returns the catalog type identifier this runner handles.
	Type() string

	// Build turns a catalog entry into its executable body, validating
	// any type-specific fields.
	Build(spec Spec) (engine.Body, error)
}

// Registry maps catalog type values to their Runner implementations.
// Registration happens at startup before concurrent access, so no
// mutex is needed.
type Registry struct {
	runners map[string]Runner
	logger  *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		runners: make(map[string]Runner),
		logger:  logger.With("component", "job-registry"),
	}
}

// Register adds a Runner to the registry, keyed by its Type().
func (r *Registry) Register(run Runner) {
	t := run.Type()
	r.runners[t] = run
	r.logger.Info("job runner registered", "type", t)
}

// Get returns the Runner for the given type or an error if none is registered.
func (r *Registry) Get(t string) (Runner, error) {
	run, ok := r.runners[t]
	if !ok {
		return nil, fmt.Errorf("no job runner registered for type %q", t)
	}
	return run, nil
}

// Registration binds a catalog entry to its executable body, ready for
// engine registration.
type Registration struct {
	ID              string
	Name            string
	IntervalMinutes int
	Body            engine.Body
}

// Registrations builds the executable registration for every catalog
// entry. An unknown type or an invalid entry fails the whole catalog.
func (r *Registry) Registrations(cat *Catalog) ([]Registration, error) {
	regs := make([]Registration, 0, len(cat.Jobs))
	for _, spec := range cat.Jobs {
		run, err := r.Get(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", spec.ID, err)
		}
		body, err := run.Build(spec)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", spec.ID, err)
		}
		regs = append(regs, Registration{
			ID:              spec.ID,
			Name:            spec.Name,
			IntervalMinutes: spec.IntervalMinutes,
			Body:            body,
		})
	}
	return regs, nil
}
