package particle

import (
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
)

const steps = 5000

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestWrappedCoordinatesStayInBounds(t *testing.T) {
	vp := &Viewport{Width: 320, Height: 240}
	rng := newRand()

	t.Run("sun", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			p := NewSunMote(vp, rng)
			for n := 0; n < steps; n++ {
				p.Update()
				if p.Y < 0 || p.Y > vp.Height {
					t.Fatalf("sun mote y=%v outside [0, %v]", p.Y, vp.Height)
				}
			}
		}
	})

	t.Run("rain", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			p := NewRainDrop(vp, rng)
			for n := 0; n < steps; n++ {
				p.Update()
				if p.Y < -p.Length || p.Y > vp.Height {
					t.Fatalf("rain drop y=%v outside [%v, %v]", p.Y, -p.Length, vp.Height)
				}
				if p.X < 0 || p.X >= vp.Width {
					t.Fatalf("rain drop x=%v outside viewport", p.X)
				}
			}
		}
	})

	t.Run("snow", func(t *testing.T) {
		for i := 0; i < 80; i++ {
			p := NewSnowflake(vp, rng)
			for n := 0; n < steps; n++ {
				p.Update()
				if p.Y < snowReset || p.Y > vp.Height {
					t.Fatalf("snowflake y=%v outside [%v, %v]", p.Y, snowReset, vp.Height)
				}
			}
		}
	})

	t.Run("cloud", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			p := NewCloud(vp, rng)
			if p.Y < 0 || p.Y >= vp.Height/2 {
				t.Fatalf("cloud born at y=%v, want upper half", p.Y)
			}
			for n := 0; n < steps; n++ {
				p.Update()
				if p.X < -p.Width || p.X > vp.Width+p.Width {
					t.Fatalf("cloud x=%v outside [%v, %v]", p.X, -p.Width, vp.Width+p.Width)
				}
			}
		}
	})
}

func TestStarAlphaStaysInUnitRange(t *testing.T) {
	vp := &Viewport{Width: 100, Height: 100}
	rng := newRand()
	for i := 0; i < 150; i++ {
		s := NewStar(vp, rng)
		for n := 0; n < steps; n++ {
			s.Update()
			if s.Alpha < 0 || s.Alpha > 1 {
				t.Fatalf("star alpha %v left [0,1] after %d steps", s.Alpha, n)
			}
		}
	}
}

func TestStarFlipsAtBoundary(t *testing.T) {
	tests := []struct {
		name      string
		alpha     float64
		direction float64
		wantAlpha float64
		wantDir   float64
	}{
		{"crosses top", 0.98, 1, 1, -1},
		{"crosses bottom", 0.02, -1, 0, 1},
		{"inside", 0.5, 1, 0.55, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Star{Rate: 0.05, Alpha: tt.alpha, Direction: tt.direction}
			s.Update()
			if diff := s.Alpha - tt.wantAlpha; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("alpha = %v, want %v", s.Alpha, tt.wantAlpha)
			}
			if s.Direction != tt.wantDir {
				t.Errorf("direction = %v, want %v", s.Direction, tt.wantDir)
			}
		})
	}
}

func TestRainDropResetsAboveTop(t *testing.T) {
	vp := &Viewport{Width: 200, Height: 100}
	p := NewRainDrop(vp, newRand())
	p.Y = vp.Height - 1
	p.Speed = 5
	p.Update()
	if p.Y != -p.Length {
		t.Errorf("y = %v, want %v", p.Y, -p.Length)
	}
}

func TestSunMoteWrapsToBottom(t *testing.T) {
	vp := &Viewport{Width: 200, Height: 100}
	p := &SunMote{Y: 0.05, Speed: 0.1, vp: vp}
	p.Update()
	if p.Y != vp.Height {
		t.Errorf("y = %v, want %v", p.Y, vp.Height)
	}
}

func TestCloudWrapsToLeft(t *testing.T) {
	vp := &Viewport{Width: 200, Height: 100}
	p := &Cloud{X: 349.95, Width: 150, Speed: 0.1, vp: vp}
	p.Update()
	if p.X != -150 {
		t.Errorf("x = %v, want -150", p.X)
	}
}

func TestDrawUsesExpectedPrimitive(t *testing.T) {
	vp := &Viewport{Width: 100, Height: 100}
	rng := newRand()
	tests := []struct {
		name string
		p    Particle
		want canvas.OpKind
	}{
		{"sun", NewSunMote(vp, rng), canvas.OpFillCircle},
		{"rain", NewRainDrop(vp, rng), canvas.OpLine},
		{"snow", NewSnowflake(vp, rng), canvas.OpFillCircle},
		{"star", NewStar(vp, rng), canvas.OpFillCircle},
		{"cloud", NewCloud(vp, rng), canvas.OpFillEllipse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := canvas.NewRecorder(100, 100)
			tt.p.Draw(rec)
			if len(rec.Ops) != 1 || rec.Ops[0].Kind != tt.want {
				t.Fatalf("ops = %+v, want one %v", rec.Ops, tt.want)
			}
		})
	}
}

func TestCloudEllipseProportions(t *testing.T) {
	vp := &Viewport{Width: 100, Height: 100}
	c := NewCloud(vp, newRand())
	rec := canvas.NewRecorder(100, 100)
	c.Draw(rec)
	args := rec.Ops[0].Args
	if args[2] != c.Width/2 || args[3] != c.Width*0.6/2 {
		t.Errorf("ellipse radii = %v, %v for width %v", args[2], args[3], c.Width)
	}
}

func TestSpawn(t *testing.T) {
	vp := &Viewport{Width: 10, Height: 10}
	ps := Spawn(nil, 150, vp, newRand(), Stars)
	ps = Spawn(ps, 5, vp, newRand(), Clouds)
	if len(ps) != 155 {
		t.Fatalf("len = %d, want 155", len(ps))
	}
	if _, ok := ps[154].(*Cloud); !ok {
		t.Errorf("last particle is %T, want *Cloud", ps[154])
	}
}
