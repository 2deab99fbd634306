// Package particle implements the ambient particle variants. Each variant owns
// its update and draw rule; a population is created in full for a mode and
// discarded in full when the mode changes.
package particle

import (
	"math/rand/v2"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
)

// Particle is one animated unit of a mode's population.
type Particle interface {
	// Update advances one step, touching only the particle's own state.
	Update()
	// Draw renders the current state without mutating it.
	Draw(s canvas.Surface)
}

// Viewport is the surface size a population is born against. Particles keep a
// pointer to it and read the bounds during Update.
type Viewport struct {
	Width  float64
	Height float64
}

// SunMote is a warm speck drifting upwards.
type SunMote struct {
	X, Y   float64
	Radius float64
	Speed  float64
	Alpha  float64

	vp *Viewport
}

func NewSunMote(vp *Viewport, rng *rand.Rand) *SunMote {
	return &SunMote{
		X:      rng.Float64() * vp.Width,
		Y:      rng.Float64() * vp.Height,
		Radius: rng.Float64() * 3,
		Speed:  rng.Float64()*0.5 + 0.1,
		Alpha:  rng.Float64() * 0.5,
		vp:     vp,
	}
}

func (p *SunMote) Update() {
	p.Y -= p.Speed
	if p.Y < 0 {
		p.Y = p.vp.Height
	}
}

func (p *SunMote) Draw(s canvas.Surface) {
	s.SetFillStyle(canvas.RGBA(255, 200, 100, p.Alpha))
	s.FillCircle(p.X, p.Y, p.Radius)
}

// RainDrop is a falling streak.
type RainDrop struct {
	X, Y   float64
	Length float64
	Speed  float64

	vp  *Viewport
	rng *rand.Rand
}

var rainColor = canvas.RGBA(174, 194, 224, 0.5)

func NewRainDrop(vp *Viewport, rng *rand.Rand) *RainDrop {
	return &RainDrop{
		X:      rng.Float64() * vp.Width,
		Y:      rng.Float64() * vp.Height,
		Length: rng.Float64()*20 + 10,
		Speed:  rng.Float64()*10 + 5,
		vp:     vp,
		rng:    rng,
	}
}

func (p *RainDrop) Update() {
	p.Y += p.Speed
	if p.Y > p.vp.Height {
		p.Y = -p.Length
		p.X = p.rng.Float64() * p.vp.Width
	}
}

func (p *RainDrop) Draw(s canvas.Surface) {
	s.SetStrokeStyle(rainColor)
	s.SetLineWidth(1)
	s.StrokeLine(p.X, p.Y, p.X, p.Y+p.Length)
}

// Snowflake falls with a small sideways drift.
type Snowflake struct {
	X, Y   float64
	Radius float64
	SpeedY float64
	SpeedX float64

	vp  *Viewport
	rng *rand.Rand
}

// snowReset is where a flake re-enters above the top edge.
const snowReset = -5

var snowColor = canvas.RGBA(255, 255, 255, 0.8)

func NewSnowflake(vp *Viewport, rng *rand.Rand) *Snowflake {
	return &Snowflake{
		X:      rng.Float64() * vp.Width,
		Y:      rng.Float64() * vp.Height,
		Radius: rng.Float64()*3 + 1,
		SpeedY: rng.Float64() + 0.5,
		SpeedX: rng.Float64() - 0.5,
		vp:     vp,
		rng:    rng,
	}
}

func (p *Snowflake) Update() {
	p.Y += p.SpeedY
	p.X += p.SpeedX
	if p.Y > p.vp.Height {
		p.Y = snowReset
		p.X = p.rng.Float64() * p.vp.Width
	}
}

func (p *Snowflake) Draw(s canvas.Surface) {
	s.SetFillStyle(snowColor)
	s.FillCircle(p.X, p.Y, p.Radius)
}

// Star blinks in place. Alpha oscillates inside [0,1].
type Star struct {
	X, Y      float64
	Radius    float64
	Rate      float64
	Alpha     float64
	Direction float64
}

func NewStar(vp *Viewport, rng *rand.Rand) *Star {
	s := &Star{
		X:         rng.Float64() * vp.Width,
		Y:         rng.Float64() * vp.Height,
		Radius:    rng.Float64() * 2,
		Rate:      rng.Float64() * 0.05,
		Alpha:     rng.Float64(),
		Direction: -1,
	}
	if rng.Float64() > 0.5 {
		s.Direction = 1
	}
	return s
}

func (p *Star) Update() {
	p.Alpha += p.Rate * p.Direction
	switch {
	case p.Alpha >= 1:
		p.Alpha = 1
		p.Direction = -1
	case p.Alpha <= 0:
		p.Alpha = 0
		p.Direction = 1
	}
}

func (p *Star) Draw(s canvas.Surface) {
	s.SetFillStyle(canvas.RGBA(255, 255, 255, p.Alpha))
	s.FillCircle(p.X, p.Y, p.Radius)
}

// Cloud drifts right across the upper half and wraps around.
type Cloud struct {
	X, Y    float64
	Width   float64
	Height  float64
	Speed   float64
	Opacity float64

	vp *Viewport
}

func NewCloud(vp *Viewport, rng *rand.Rand) *Cloud {
	w := rng.Float64()*200 + 100
	return &Cloud{
		X:       rng.Float64() * vp.Width,
		Y:       rng.Float64() * (vp.Height / 2),
		Width:   w,
		Height:  w * 0.6,
		Speed:   rng.Float64()*0.2 + 0.1,
		Opacity: rng.Float64()*0.2 + 0.1,
		vp:      vp,
	}
}

func (p *Cloud) Update() {
	p.X += p.Speed
	if p.X > p.vp.Width+p.Width {
		p.X = -p.Width
	}
}

func (p *Cloud) Draw(s canvas.Surface) {
	s.SetFillStyle(canvas.RGBA(255, 255, 255, p.Opacity))
	s.FillEllipse(p.X, p.Y, p.Width/2, p.Height/2)
}

// Spawn appends n particles built by newFn to dst.
func Spawn(dst []Particle, n int, vp *Viewport, rng *rand.Rand, newFn func(*Viewport, *rand.Rand) Particle) []Particle {
	for i := 0; i < n; i++ {
		dst = append(dst, newFn(vp, rng))
	}
	return dst
}

// Constructors adapted to the Spawn signature.
var (
	SunMotes   = func(vp *Viewport, rng *rand.Rand) Particle { return NewSunMote(vp, rng) }
	RainDrops  = func(vp *Viewport, rng *rand.Rand) Particle { return NewRainDrop(vp, rng) }
	Snowflakes = func(vp *Viewport, rng *rand.Rand) Particle { return NewSnowflake(vp, rng) }
	Stars      = func(vp *Viewport, rng *rand.Rand) Particle { return NewStar(vp, rng) }
	Clouds     = func(vp *Viewport, rng *rand.Rand) Particle { return NewCloud(vp, rng) }
)
