package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestPartialFailureError_Error(t *testing.T) {
	err := &PartialFailureError{
		Op:    "start",
		JobID: "scan-1",
		Err:   errors.New("database is locked"),
	}
	want := "start scan-1: engine updated but metadata write failed: database is locked"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestPartialFailureError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("write job_metadata: %w", ErrStoreUnavailable)
	err := &PartialFailureError{Op: "pause", JobID: "scan-1", Err: cause}

	if !errors.Is(err, ErrStoreUnavailable) {
		t.Error("errors.Is(err, ErrStoreUnavailable) = false, want true")
	}

	var pf *PartialFailureError
	if !errors.As(error(err), &pf) {
		t.Fatal("errors.As failed to match *PartialFailureError")
	}
	if pf.JobID != "scan-1" {
		t.Errorf("JobID = %q, want %q", pf.JobID, "scan-1")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrInvalidInterval, ErrDuplicateID, ErrStoreUnavailable}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v unexpectedly matches %v", a, b)
			}
		}
	}
}
