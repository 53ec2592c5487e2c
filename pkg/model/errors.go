package model

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the engine, store, and reconciler. Callers
// classify failures with errors.Is rather than string matching.
var (
	// ErrNotFound means the job id is unknown to the engine.
	ErrNotFound = errors.New("job not found")

	// ErrInvalidInterval means the requested interval is outside the
	// schedulable range (non-positive, or too large to represent as a
	// duration).
	ErrInvalidInterval = errors.New("interval must be a positive number of minutes")

	// ErrDuplicateID means a registration collided with an existing job.
	ErrDuplicateID = errors.New("job id already registered")

	// ErrStoreUnavailable means the metadata backend could not be reached.
	ErrStoreUnavailable = errors.New("metadata store unavailable")
)

// PartialFailureError reports an operation where the engine mutation
// succeeded but the store mirror write failed. The live schedule is
// authoritative and correct; persisted metadata is stale until the
// caller retries. It must never be collapsed into plain success.
type PartialFailureError struct {
	Op    string // reconciler operation, e.g. "start", "update_interval"
	JobID string
	Err   error // underlying store failure
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s %s: engine updated but metadata write failed: %v", e.Op, e.JobID, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}
