// Package frame provides a cooperative frame scheduler. Callbacks requested
// with Request run once, on the next call to Run; a callback that wants to run
// again must request itself. Cancel only prevents a callback that has not run
// yet. Nothing here is goroutine safe: requests, cancels and runs all happen on
// the frontend's loop goroutine.
package frame

import "time"

// ID identifies a pending request. The zero ID is never issued.
type ID uint64

// Callback receives the time elapsed since the scheduler's first frame.
type Callback func(now time.Duration)

type request struct {
	id        ID
	fn        Callback
	cancelled bool
}

type Scheduler struct {
	next    ID
	queue   []*request
	running []*request
	frames  uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Request queues fn for the next frame.
func (s *Scheduler) Request(fn Callback) ID {
	s.next++
	s.queue = append(s.queue, &request{id: s.next, fn: fn})
	return s.next
}

// Cancel drops a pending request. Unknown or already-run IDs are ignored.
func (s *Scheduler) Cancel(id ID) {
	if id == 0 {
		return
	}
	for i, r := range s.queue {
		if r.id == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			return
		}
	}
	for _, r := range s.running {
		if r.id == id {
			r.cancelled = true
			return
		}
	}
}

// Run fires every callback queued before the call and returns how many ran.
// Callbacks requested while running wait for the next Run.
func (s *Scheduler) Run(now time.Duration) int {
	s.frames++
	s.running, s.queue = s.queue, nil
	n := 0
	for _, r := range s.running {
		if r.cancelled {
			continue
		}
		r.fn(now)
		n++
	}
	s.running = nil
	return n
}

// Pending returns the number of queued requests.
func (s *Scheduler) Pending() int { return len(s.queue) }

// Frames returns how many times Run has been called.
func (s *Scheduler) Frames() uint64 { return s.frames }
