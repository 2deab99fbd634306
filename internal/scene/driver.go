package scene

import (
	"time"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
	"github.com/iburimskiy/ambient-canvas/internal/frame"
	"github.com/iburimskiy/ambient-canvas/internal/particle"
)

// FrameScheduler is the frame-synchronised callback source the driver runs on.
type FrameScheduler interface {
	Request(fn frame.Callback) frame.ID
	Cancel(id frame.ID)
}

// Driver is the redraw loop: each frame it clears the surface, steps and
// draws every particle in insertion order, then requests the next frame.
type Driver struct {
	sched     FrameScheduler
	surface   canvas.Canvas
	particles func() []particle.Particle
	onStep    func(particles int, elapsed time.Duration)

	handle  frame.ID
	running bool
}

func NewDriver(sched FrameScheduler, surface canvas.Canvas, particles func() []particle.Particle) *Driver {
	return &Driver{
		sched:     sched,
		surface:   surface,
		particles: particles,
	}
}

// OnStep registers a hook called after every completed step.
func (d *Driver) OnStep(fn func(particles int, elapsed time.Duration)) {
	d.onStep = fn
}

// Start requests the first frame. Starting a running driver restarts it
// without leaving a second request behind.
func (d *Driver) Start() {
	d.Stop()
	d.running = true
	d.handle = d.sched.Request(d.step)
}

// Stop cancels the pending frame. A step already executing still completes
// but does not reschedule.
func (d *Driver) Stop() {
	if d.handle != 0 {
		d.sched.Cancel(d.handle)
		d.handle = 0
	}
	d.running = false
}

func (d *Driver) Running() bool { return d.running }

func (d *Driver) step(time.Duration) {
	d.handle = 0
	start := time.Now()

	canvas.Clear(d.surface)
	ps := d.particles()
	for _, p := range ps {
		p.Update()
		p.Draw(d.surface)
	}

	if d.onStep != nil {
		d.onStep(len(ps), time.Since(start))
	}
	if d.running {
		d.handle = d.sched.Request(d.step)
	}
}
