package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshWeather(ctx context.Context) error {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a bounded context")
	}
	return r.err
}

func TestDisabledSchedulerDoesNothing(t *testing.T) {
	r := &countingRefresher{}
	s := New(0, r)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if r.calls.Load() != 0 {
		t.Fatalf("disabled scheduler must not refresh")
	}
}

func TestSchedulerRequiresTarget(t *testing.T) {
	if err := New(time.Minute, nil).Start(); !errors.Is(err, errNoTarget) {
		t.Fatalf("expected errNoTarget, got %v", err)
	}
}

func TestSchedulerRefreshesOnInterval(t *testing.T) {
	r := &countingRefresher{}
	s := New(time.Second, r)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	if r.calls.Load() != 0 {
		t.Fatalf("first refresh should wait for the schedule")
	}

	deadline := time.Now().Add(3 * time.Second)
	for r.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduled refresh never ran")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestSchedulerKeepsSubSecondInterval(t *testing.T) {
	r := &countingRefresher{}
	s := New(1500*time.Millisecond, r)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	start := time.Now()
	deadline := start.Add(4 * time.Second)
	for r.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduled refresh never ran")
		}
		time.Sleep(20 * time.Millisecond)
	}
	if elapsed := time.Since(start); elapsed < 1300*time.Millisecond {
		t.Fatalf("first refresh after %s, expected the full 1.5s interval", elapsed)
	}
}
