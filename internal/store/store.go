package store

import (
	"context"
	"time"

	"github.com/me/patrol/pkg/model"
)

// Store defines the persistence layer for job metadata. It is a
// key-value style mirror keyed by job id: the engine remains the
// source of truth for live scheduling state, the store is what
// listings display and what bootstrap reads after a restart.
//
// Updates are a closed set of typed operations; there is no generic
// field update.
type Store interface {
	// GetJob returns the metadata row for id, or (nil, nil) when absent.
	GetJob(ctx context.Context, id string) (*model.JobMetadata, error)

	// ListJobs returns all metadata rows ordered by job id.
	ListJobs(ctx context.Context) ([]*model.JobMetadata, error)

	// UpsertJob inserts the row or replaces its configuration, keeping
	// the original created_at on conflict.
	UpsertJob(ctx context.Context, meta *model.JobMetadata) error

	// SetInterval updates time_interval_minutes for id. Errors when the
	// row is absent.
	SetInterval(ctx context.Context, id string, minutes int) error

	// SetEnabled updates the enabled flag for id. Errors when the row
	// is absent.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// SetLastSuccess records the completion time of a successful
	// firing. Errors when the row is absent.
	SetLastSuccess(ctx context.Context, id string, t time.Time) error

	// DeleteJob removes the row. Deleting an absent row is not an
	// error.
	DeleteJob(ctx context.Context, id string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
