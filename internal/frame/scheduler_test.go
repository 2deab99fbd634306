package frame

import (
	"testing"
	"time"
)

func TestRequestRunsOnce(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.Request(func(time.Duration) { calls++ })

	if got := s.Run(0); got != 1 {
		t.Fatalf("Run ran %d callbacks, want 1", got)
	}
	s.Run(time.Millisecond)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestSelfRescheduleWaitsForNextFrame(t *testing.T) {
	s := NewScheduler()
	calls := 0
	var step Callback
	step = func(time.Duration) {
		calls++
		s.Request(step)
	}
	s.Request(step)

	for i := 0; i < 3; i++ {
		s.Run(0)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
}

func TestCancelPending(t *testing.T) {
	s := NewScheduler()
	called := false
	id := s.Request(func(time.Duration) { called = true })
	s.Cancel(id)
	if n := s.Run(0); n != 0 || called {
		t.Errorf("cancelled callback ran (n=%d)", n)
	}
}

func TestCancelLaterCallbackInSameFrame(t *testing.T) {
	s := NewScheduler()
	var second ID
	secondRan := false
	s.Request(func(time.Duration) { s.Cancel(second) })
	second = s.Request(func(time.Duration) { secondRan = true })

	s.Run(0)
	if secondRan {
		t.Error("callback cancelled earlier in the same frame still ran")
	}
}

func TestCancelUnknownIsNoop(t *testing.T) {
	s := NewScheduler()
	s.Cancel(0)
	s.Cancel(42)
	s.Request(func(time.Duration) {})
	s.Cancel(42)
	if s.Pending() != 1 {
		t.Errorf("pending = %d, want 1", s.Pending())
	}
	if s.Frames() != 0 {
		t.Errorf("frames = %d, want 0", s.Frames())
	}
}
