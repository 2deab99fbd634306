// Package audio controls the looping ambience that accompanies rain mode.
package audio

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/iburimskiy/ambient-canvas/internal/prefs"
)

// PreviewDuration is how long a temporary play runs before it is rewound.
const PreviewDuration = 3500 * time.Millisecond

// Track is a single playable, looping resource.
type Track interface {
	// Start begins playback and returns once it has started or failed. The
	// first call may load the resource.
	Start(ctx context.Context) error
	Pause()
	Rewind()
	// SetVolume takes a linear gain in [0,1].
	SetVolume(v float64)
}

// Leveler is implemented by tracks that can report their recent output level.
type Leveler interface {
	Level() float64
}

// Opener creates the track for a source. It must not block; loading belongs
// in Track.Start.
type Opener func(source string) Track

// Options configures an Ambience.
type Options struct {
	Source  string
	Open    Opener
	Store   prefs.Store
	Preview time.Duration
	Logger  *slog.Logger
}

// Ambience owns at most one track, created lazily on the first Play. Play is
// asynchronous: failures are logged and leave the ambience stopped. A later
// Play or Stop supersedes a pending start or preview timeout.
type Ambience struct {
	open    Opener
	store   prefs.Store
	preview time.Duration
	log     *slog.Logger

	// afterFunc is swapped in tests.
	afterFunc func(d time.Duration, f func()) (stop func() bool)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	source    string
	track     Track
	volume    float64
	gen       uint64
	playing   bool
	stopTimer func() bool
}

func New(opts Options) *Ambience {
	a := &Ambience{
		open:    opts.Open,
		store:   opts.Store,
		preview: opts.Preview,
		log:     opts.Logger,
		source:  opts.Source,
	}
	if a.store == nil {
		a.store = prefs.NewMemory()
	}
	if a.preview <= 0 {
		a.preview = PreviewDuration
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	a.afterFunc = func(d time.Duration, f func()) func() bool {
		return time.AfterFunc(d, f).Stop
	}
	a.volume = prefs.LoadVolume(a.store)
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a
}

// Play requests playback. With temporary set, a successful start schedules a
// pause and rewind after the preview duration.
func (a *Ambience) Play(temporary bool) {
	a.mu.Lock()
	if a.track == nil {
		if a.open == nil {
			a.mu.Unlock()
			a.log.Warn("ambience has no opener")
			return
		}
		a.track = a.open(a.source)
		a.track.SetVolume(a.volume)
	}
	a.gen++
	a.playing = true
	a.disarmLocked()
	gen, track, source := a.gen, a.track, a.source
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := track.Start(a.ctx)

		a.mu.Lock()
		defer a.mu.Unlock()
		if err != nil {
			a.log.Warn("unable to play ambience", "source", source, "error", err)
			if gen == a.gen {
				a.playing = false
			}
			return
		}
		if gen != a.gen {
			// Superseded while starting. Honour a Stop or a source switch
			// that raced us.
			if !a.playing || track != a.track {
				track.Pause()
				track.Rewind()
			}
			return
		}
		if temporary {
			a.stopTimer = a.afterFunc(a.preview, func() { a.endPreview(gen) })
		}
	}()
}

func (a *Ambience) endPreview(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen || a.track == nil {
		return
	}
	a.track.Pause()
	a.track.Rewind()
	a.playing = false
	a.stopTimer = nil
}

// Stop pauses and rewinds. Without a track it does nothing.
func (a *Ambience) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
	a.playing = false
	a.disarmLocked()
	if a.track == nil {
		return
	}
	a.track.Pause()
	a.track.Rewind()
}

// SetVolume applies v to the live track and persists it.
func (a *Ambience) SetVolume(v float64) {
	v = min(max(v, 0), 1)
	a.mu.Lock()
	a.volume = v
	if a.track != nil {
		a.track.SetVolume(v)
	}
	a.mu.Unlock()

	if err := prefs.SaveVolume(a.store, v); err != nil {
		a.log.Warn("unable to persist ambience volume", "volume", v, "error", err)
	}
}

// SetSource switches to another resource. The current track is stopped and
// dropped; the next Play opens the new source.
func (a *Ambience) SetSource(source string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if source == a.source {
		return
	}
	a.gen++
	a.playing = false
	a.disarmLocked()
	a.releaseLocked()
	a.source = source
}

func (a *Ambience) Volume() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.volume
}

func (a *Ambience) Source() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}

// Playing reports whether playback is requested and has not been stopped or
// failed.
func (a *Ambience) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

// Level returns the track's recent output level, or 0.
func (a *Ambience) Level() float64 {
	a.mu.Lock()
	track := a.track
	playing := a.playing
	a.mu.Unlock()
	if l, ok := track.(Leveler); ok && playing {
		return l.Level()
	}
	return 0
}

// Close stops playback, abandons pending starts and releases the track.
func (a *Ambience) Close() {
	a.cancel()
	a.Stop()
	a.wg.Wait()
	a.mu.Lock()
	a.releaseLocked()
	a.mu.Unlock()
}

func (a *Ambience) disarmLocked() {
	if a.stopTimer != nil {
		a.stopTimer()
		a.stopTimer = nil
	}
}

func (a *Ambience) releaseLocked() {
	if a.track == nil {
		return
	}
	a.track.Pause()
	if c, ok := a.track.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn("closing ambience track", "error", err)
		}
	}
	a.track = nil
}
