package stream

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap wraps a beep.Streamer and keeps the most recent samples in a ring
// buffer so the UI can show how loud the ambience currently is.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    bool
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
				t.filled = true
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// level returns the RMS of the buffered samples, mixed down to mono, in [0,1].
func (t *levelTap) level() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.nextIndex
	if t.filled {
		n = len(t.buffer)
	}
	if n == 0 {
		return 0
	}
	var sumSquares float64
	for i := 0; i < n; i++ {
		mono := (t.buffer[i][0] + t.buffer[i][1]) * 0.5
		sumSquares += mono * mono
	}
	return min(math.Sqrt(sumSquares/float64(n)), 1)
}

// reset forgets buffered samples, used when playback is paused.
func (t *levelTap) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextIndex = 0
	t.filled = false
}
