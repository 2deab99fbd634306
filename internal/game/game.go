// Package game is the desktop frontend: an ebiten window showing the ambient
// scene behind the page controls.
package game

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/ambient-canvas/internal/frame"
	"github.com/iburimskiy/ambient-canvas/internal/scene"
	"github.com/iburimskiy/ambient-canvas/internal/ui"
)

const volumeStep = 0.05

// Meter reports the ambience state shown in the window.
type Meter interface {
	Level() float64
	Playing() bool
	Volume() float64
}

// Options wires a Game. Every field but Logger is required.
type Options struct {
	Session *scene.Session
	Frames  *frame.Scheduler
	Surface *Surface
	Page    *ui.Page
	Meter   Meter
	Logger  *slog.Logger
}

// Game implements ebiten.Game.
type Game struct {
	session *scene.Session
	frames  *frame.Scheduler
	surface *Surface
	page    *ui.Page
	meter   Meter
	log     *slog.Logger

	start time.Time

	// outside size reported by Layout, applied on the next Update
	width, height int
	pendingW      int
	pendingH      int

	// smoothed ambience level for the meter
	level float64

	lastErr error

	vertices []ebiten.Vertex
	indices  []uint16
}

func New(opts Options) *Game {
	g := &Game{
		session: opts.Session,
		frames:  opts.Frames,
		surface: opts.Surface,
		page:    opts.Page,
		meter:   opts.Meter,
		log:     opts.Logger,
		start:   time.Now(),
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	g.width, g.height = g.surface.Size()
	g.pendingW, g.pendingH = g.width, g.height
	return g
}

// SetError shows err in the status line until the next one.
func (g *Game) SetError(err error) {
	g.lastErr = err
}

func (g *Game) Update() error {
	if g.pendingW != g.width || g.pendingH != g.height {
		g.width, g.height = g.pendingW, g.pendingH
		g.log.Debug("window resized", "width", g.width, "height", g.height)
		g.session.Resize(g.width, g.height)
		g.page.Layout(g.width, g.height)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleKeys()

	now := time.Since(g.start)
	g.page.Update(pointer(), now)

	// Update visualization
	g.frames.Run(now)
	g.level = smoothingFactor*g.level + (1-smoothingFactor)*g.meter.Level()
	return nil
}

func (g *Game) handleKeys() {
	for i, k := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5} {
		if inpututil.IsKeyJustPressed(k) {
			g.page.SelectMode(scene.Modes()[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.page.ToggleAmbience()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.page.PreviewAmbience()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.page.TogglePanel()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.page.PromptNewsletter()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.page.NudgeVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.page.NudgeVolume(-volumeStep)
	}
}

func pointer() ui.Pointer {
	x, y := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	return ui.Pointer{
		X:            float64(x),
		Y:            float64(y),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Down:         ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Wheel:        wheel,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Backdrop, then the particle layer
	g.drawBackground(screen)
	screen.DrawImage(g.surface.Image(), nil)

	g.drawHero(screen)
	g.drawCard(screen)
	g.drawSections(screen)
	g.drawLevelMeter(screen)
	g.drawPanel(screen)
	g.drawStatus(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.pendingW, g.pendingH
}
