package model

// StatusResponse is the response shape of every mutating control
// endpoint: a success flag plus a human-readable message.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`

	// StaleMetadata marks a mutation that changed the live schedule
	// but failed the metadata mirror write. The operation took effect;
	// stored configuration is stale until a retry converges it.
	StaleMetadata bool `json:"stale_metadata,omitempty"`
}

// JobsResponse is the response shape of the job listing endpoint.
type JobsResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Jobs    []JobSummary `json:"jobs"`
}
