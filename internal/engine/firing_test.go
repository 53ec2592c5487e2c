package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
)

func testFiring(body Body) *firing {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newFiring("scan-1", body, logger)
}

func TestFiring_SkipsWhenPredecessorRunning(t *testing.T) {
	started := make(chan struct{})
	block := make(chan struct{})
	var calls atomic.Int32

	f := testFiring(func(ctx context.Context) error {
		calls.Add(1)
		close(started)
		<-block
		return nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.Run()
	}()
	<-started

	// Second due firing while the first is still running: must skip,
	// not queue and not overlap.
	f.Run()
	if got := calls.Load(); got != 1 {
		t.Errorf("body invoked %d times during overlap, want 1", got)
	}

	close(block)
	wg.Wait()
}

func TestFiring_RunsAgainAfterCompletion(t *testing.T) {
	var calls atomic.Int32
	f := testFiring(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	f.Run()
	f.Run()
	if got := calls.Load(); got != 2 {
		t.Errorf("body invoked %d times, want 2", got)
	}
}

func TestFiring_BodyErrorDoesNotStopSchedule(t *testing.T) {
	var calls atomic.Int32
	f := testFiring(func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("collector endpoint returned 503")
	})

	f.Run()
	f.Run()
	if got := calls.Load(); got != 2 {
		t.Errorf("body invoked %d times after failures, want 2", got)
	}
}

func TestFiring_RecoversPanic(t *testing.T) {
	var calls atomic.Int32
	f := testFiring(func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			panic("nil map write in collector")
		}
		return nil
	})

	f.Run() // must not propagate the panic
	f.Run() // guard must have been released
	if got := calls.Load(); got != 2 {
		t.Errorf("body invoked %d times, want 2", got)
	}
}
