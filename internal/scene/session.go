// Package scene owns the ambient animation state: the active mode, its
// particle population, the redraw driver and the viewport the population is
// sized against.
package scene

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
	"github.com/iburimskiy/ambient-canvas/internal/particle"
)

// Ambience is the audio side of a mode switch.
type Ambience interface {
	Play(temporary bool)
	Stop()
}

type silence struct{}

func (silence) Play(bool) {}
func (silence) Stop()     {}

// Step describes one completed driver step.
type Step struct {
	Frame     uint64
	Mode      Mode
	Particles int
	Elapsed   time.Duration
}

// Options configures a Session. Canvas and Scheduler are required.
type Options struct {
	Canvas    canvas.Canvas
	Scheduler FrameScheduler
	Audio     Ambience
	Rand      *rand.Rand
	Logger    *slog.Logger
	// OnStep, when set, observes every driver step.
	OnStep func(Step)
}

// Session holds the state that would otherwise be page globals: mode,
// particles, pending frame, viewport and audio. It is not goroutine safe.
type Session struct {
	canvas   canvas.Canvas
	audio    Ambience
	rng      *rand.Rand
	log      *slog.Logger
	driver   *Driver
	onStep   func(Step)
	steps    uint64
	mode     Mode
	backdrop Backdrop
	vp       *particle.Viewport
	ps       []particle.Particle
}

// NewSession builds a session in mode Off and applies the initial size.
func NewSession(opts Options, width, height int) *Session {
	s := &Session{
		canvas:   opts.Canvas,
		audio:    opts.Audio,
		rng:      opts.Rand,
		log:      opts.Logger,
		onStep:   opts.OnStep,
		mode:     Off,
		backdrop: BackdropFor(Off),
		vp:       &particle.Viewport{},
	}
	if s.audio == nil {
		s.audio = silence{}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.driver = NewDriver(opts.Scheduler, opts.Canvas, s.Particles)
	s.driver.OnStep(s.observe)
	s.Resize(width, height)
	return s
}

// SetMode switches to m: it cancels the pending frame, drops the current
// population, clears the surface, applies the backdrop, builds the new
// population against the current viewport and restarts the driver. Calling it
// again with the same mode rebuilds the population.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.driver.Stop()
	s.ps = nil

	canvas.Clear(s.canvas)
	s.backdrop = BackdropFor(m)

	switch m {
	case Sun:
		s.ps = particle.Spawn(s.ps, SunMotes, s.vp, s.rng, particle.SunMotes)
	case Rain:
		s.ps = particle.Spawn(s.ps, RainDrops, s.vp, s.rng, particle.RainDrops)
	case Snow:
		s.ps = particle.Spawn(s.ps, Snowflakes, s.vp, s.rng, particle.Snowflakes)
	case Night:
		s.ps = particle.Spawn(s.ps, Stars, s.vp, s.rng, particle.Stars)
		s.ps = particle.Spawn(s.ps, Clouds, s.vp, s.rng, particle.Clouds)
	}

	if m == Rain {
		s.audio.Play(false)
	} else {
		s.audio.Stop()
	}

	if m != Off {
		s.driver.Start()
	}
	s.log.Debug("mode selected", "mode", m, "particles", len(s.ps),
		"width", s.vp.Width, "height", s.vp.Height)
}

// Resize records the new viewport, resizes the surface backing store and, when
// a mode is active, rebuilds the population for the new bounds.
func (s *Session) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	s.canvas.Resize(width, height)
	s.vp.Width, s.vp.Height = float64(width), float64(height)
	s.log.Debug("viewport resized", "width", width, "height", height)
	if s.mode != Off {
		s.SetMode(s.mode)
	}
}

// Close halts the driver and the ambience.
func (s *Session) Close() {
	s.driver.Stop()
	s.audio.Stop()
}

func (s *Session) Mode() Mode { return s.mode }
func (s *Session) Backdrop() Backdrop { return s.backdrop }
func (s *Session) Running() bool { return s.driver.Running() }
func (s *Session) Viewport() particle.Viewport { return *s.vp }

// Particles returns the live population. Callers must not modify it.
func (s *Session) Particles() []particle.Particle { return s.ps }

func (s *Session) observe(n int, elapsed time.Duration) {
	s.steps++
	if s.onStep != nil {
		s.onStep(Step{Frame: s.steps, Mode: s.mode, Particles: n, Elapsed: elapsed})
	}
}
