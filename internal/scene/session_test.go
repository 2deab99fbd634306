package scene

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
	"github.com/iburimskiy/ambient-canvas/internal/frame"
	"github.com/iburimskiy/ambient-canvas/internal/particle"
)

type fakeAudio struct {
	plays []bool
	stops int
}

func (a *fakeAudio) Play(temporary bool) { a.plays = append(a.plays, temporary) }
func (a *fakeAudio) Stop()               { a.stops++ }

type fixture struct {
	rec   *canvas.Recorder
	sched *frame.Scheduler
	audio *fakeAudio
	s     *Session
	steps []Step
}

func newFixture(t *testing.T, w, h int) *fixture {
	t.Helper()
	f := &fixture{
		rec:   canvas.NewRecorder(0, 0),
		sched: frame.NewScheduler(),
		audio: &fakeAudio{},
	}
	f.s = NewSession(Options{
		Canvas:    f.rec,
		Scheduler: f.sched,
		Audio:     f.audio,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnStep:    func(st Step) { f.steps = append(f.steps, st) },
	}, w, h)
	return f
}

func TestSetModePopulation(t *testing.T) {
	tests := []struct {
		mode Mode
		want int
	}{
		{Sun, 50},
		{Rain, 100},
		{Snow, 80},
		{Night, 155},
		{Off, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f := newFixture(t, 800, 600)
			f.s.SetMode(tt.mode)
			if got := len(f.s.Particles()); got != tt.want {
				t.Errorf("particles = %d, want %d", got, tt.want)
			}
			if got := tt.mode.Population(); got != tt.want {
				t.Errorf("Population() = %d, want %d", got, tt.want)
			}
			if f.s.Backdrop() != BackdropFor(tt.mode) {
				t.Errorf("backdrop not applied for %v", tt.mode)
			}
		})
	}
}

func TestNightMixesStarsAndClouds(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Night)
	var stars, clouds int
	for _, p := range f.s.Particles() {
		switch p.(type) {
		case *particle.Star:
			stars++
		case *particle.Cloud:
			clouds++
		}
	}
	if stars != 150 || clouds != 5 {
		t.Errorf("stars=%d clouds=%d, want 150 and 5", stars, clouds)
	}
}

func TestSetModeIsIdempotent(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Snow)
	first := f.s.Particles()[0]
	f.s.SetMode(Snow)

	if got := len(f.s.Particles()); got != 80 {
		t.Fatalf("particles = %d, want 80", got)
	}
	if f.s.Particles()[0] == first {
		t.Error("repeated SetMode should rebuild the population")
	}
	if f.sched.Pending() != 1 {
		t.Errorf("pending frames = %d, want exactly 1", f.sched.Pending())
	}
}

func TestDriverStepsEveryParticle(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Rain)
	f.rec.Reset()

	f.sched.Run(0)

	if got := f.rec.Count(canvas.OpClear); got != 1 {
		t.Errorf("clears per frame = %d, want 1", got)
	}
	if got := f.rec.Count(canvas.OpLine); got != 100 {
		t.Errorf("lines per frame = %d, want 100", got)
	}
	if f.rec.Ops[0].Kind != canvas.OpClear {
		t.Errorf("first op = %v, want clear", f.rec.Ops[0].Kind)
	}
	if len(f.steps) != 1 || f.steps[0].Particles != 100 || f.steps[0].Mode != Rain {
		t.Errorf("steps = %+v", f.steps)
	}
}

func TestSwitchingModeNeverOverlapsPopulations(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Sun)
	f.s.SetMode(Snow)
	f.rec.Reset()

	f.sched.Run(0)

	if got := f.rec.Count(canvas.OpFillCircle); got != 80 {
		t.Errorf("circles drawn = %d, want 80 (snow only)", got)
	}
	if got := f.rec.Count(canvas.OpClear); got != 1 {
		t.Errorf("clears = %d, want a single step", got)
	}
}

func TestOffHaltsDrawing(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Night)
	f.sched.Run(0)
	f.s.SetMode(Off)
	f.rec.Reset()

	for i := 0; i < 10; i++ {
		f.sched.Run(0)
	}

	if f.rec.Draws() != 0 {
		t.Errorf("surface received %d draw calls after off", f.rec.Draws())
	}
	if f.s.Running() {
		t.Error("driver still running after off")
	}
	if f.sched.Pending() != 0 {
		t.Errorf("pending = %d, want 0", f.sched.Pending())
	}
}

func TestSetModeClearsSurface(t *testing.T) {
	f := newFixture(t, 640, 480)
	f.rec.Reset()
	f.s.SetMode(Off)
	if len(f.rec.Ops) != 1 || f.rec.Ops[0].Kind != canvas.OpClear {
		t.Fatalf("ops = %+v, want a single clear", f.rec.Ops)
	}
	if args := f.rec.Ops[0].Args; args[2] != 640 || args[3] != 480 {
		t.Errorf("clear covers %vx%v, want 640x480", args[2], args[3])
	}
}

func TestAudioFollowsMode(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Rain)
	if len(f.audio.plays) != 1 || f.audio.plays[0] {
		t.Fatalf("plays = %v, want one looping play", f.audio.plays)
	}
	stops := f.audio.stops
	for _, m := range []Mode{Sun, Snow, Night, Off} {
		f.s.SetMode(m)
	}
	if got := f.audio.stops - stops; got != 4 {
		t.Errorf("stops = %d, want 4", got)
	}
	if len(f.audio.plays) != 1 {
		t.Errorf("non-rain modes started audio: %v", f.audio.plays)
	}
}

func TestResizeRegeneratesWithinNewBounds(t *testing.T) {
	f := newFixture(t, 1024, 768)
	f.s.SetMode(Snow)
	f.s.Resize(300, 200)

	if f.s.Mode() != Snow {
		t.Fatalf("mode = %v, want snow", f.s.Mode())
	}
	if w, h := f.rec.Size(); w != 300 || h != 200 {
		t.Errorf("backing store = %dx%d, want 300x200", w, h)
	}
	ps := f.s.Particles()
	if len(ps) != 80 {
		t.Fatalf("particles = %d, want 80", len(ps))
	}
	for _, p := range ps {
		sf := p.(*particle.Snowflake)
		if sf.X < 0 || sf.X >= 300 || sf.Y < 0 || sf.Y >= 200 {
			t.Fatalf("snowflake at (%v, %v) outside 300x200", sf.X, sf.Y)
		}
	}
	if f.sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", f.sched.Pending())
	}
}

func TestResizeWhileOffKeepsOff(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.Resize(100, 100)
	if f.s.Mode() != Off || len(f.s.Particles()) != 0 || f.s.Running() {
		t.Error("resize while off should not start anything")
	}
	if vp := f.s.Viewport(); vp.Width != 100 || vp.Height != 100 {
		t.Errorf("viewport = %+v", vp)
	}
}

func TestResizeClampsToOnePixel(t *testing.T) {
	f := newFixture(t, 0, -5)
	if vp := f.s.Viewport(); vp.Width != 1 || vp.Height != 1 {
		t.Errorf("viewport = %+v, want 1x1", vp)
	}
}

func TestCloseStopsDriver(t *testing.T) {
	f := newFixture(t, 800, 600)
	f.s.SetMode(Sun)
	f.s.Close()
	if f.sched.Pending() != 0 || f.s.Running() {
		t.Error("Close left the driver scheduled")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMode(" Night "); err != nil || got != Night {
		t.Errorf("ParseMode is not lenient: %v, %v", got, err)
	}
	if _, err := ParseMode("fog"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(fog) error = %v, want ErrUnknownMode", err)
	}
}

func TestBackdrops(t *testing.T) {
	if BackdropFor(Sun).Solid() {
		t.Error("sun backdrop should be a gradient")
	}
	for _, m := range []Mode{Rain, Snow, Night, Off} {
		if !BackdropFor(m).Solid() {
			t.Errorf("%v backdrop should be solid", m)
		}
	}
	if BackdropFor(Mode(42)) != BackdropFor(Off) {
		t.Error("unknown mode should fall back to the off backdrop")
	}
}
