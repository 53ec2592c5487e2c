package model

import (
	"time"
)

// JobState represents the live scheduling state of a job.
type JobState string

const (
	// JobStateScheduled means the job fires on its interval.
	JobStateScheduled JobState = "SCHEDULED"
	// JobStatePaused means the job is registered but not firing.
	JobStatePaused JobState = "PAUSED"
)

// String returns the string representation of the job state.
func (s JobState) String() string {
	return string(s)
}

// JobDescriptor is the live, in-engine view of a registered job.
type JobDescriptor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	IntervalMinutes int      `json:"interval_minutes"`
	State           JobState `json:"state"`
}

// JobMetadata is the durable mirror of a job's configuration, used for
// display and for seeding scheduler state after a restart.
type JobMetadata struct {
	JobID               string     `json:"job_id"`
	Name                string     `json:"name"`
	TimeIntervalMinutes int        `json:"time_interval_minutes"`
	Enabled             bool       `json:"enabled"`
	LastSuccess         *time.Time `json:"last_success,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// JobSummary is one row of a job listing: the live descriptor enriched
// with persisted metadata. Interval and Enabled are pointers because a
// live job whose metadata row is missing is still listed, with null
// markers, rather than hidden or failing the listing.
type JobSummary struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	TimeIntervalMinutes *int       `json:"time_interval_minutes"`
	Enabled             *bool      `json:"enabled"`
	LastSuccess         *time.Time `json:"last_success,omitempty"`
}
