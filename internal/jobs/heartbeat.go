package jobs

import (
	"context"
	"log/slog"

	"github.com/me/patrol/internal/engine"
)

// TypeHeartbeat is the catalog type for a body that only logs a
// liveness line. Useful for verifying the scheduling path end to end
// without touching external systems.
const TypeHeartbeat = "heartbeat"

// Heartbeat builds bodies that log one line per firing and never fail.
type Heartbeat struct {
	logger *slog.Logger
}

func NewHeartbeat(logger *slog.Logger) *Heartbeat {
	return &Heartbeat{logger: logger.With("component", "heartbeat")}
}

// Type returns TypeHeartbeat.
func (h *Heartbeat) Type() string {
	return TypeHeartbeat
}

// Build returns the firing body.
func (h *Heartbeat) Build(spec Spec) (engine.Body, error) {
	jobID := spec.ID
	return func(ctx context.Context) error {
		h.logger.Info("heartbeat", "job_id", jobID)
		return nil
	}, nil
}
