package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/ambient-canvas/internal/canvas"
	"github.com/iburimskiy/ambient-canvas/internal/ui"
)

const (
	smoothingFactor = 0.6
	meterSegments   = 24
	// approximate width of a debug font glyph
	charWidth = 6
)

var (
	panelColor   = color.RGBA{R: 20, G: 25, B: 35, A: 230}
	borderColor  = color.RGBA{R: 150, G: 170, B: 200, A: 255}
	sectionColor = color.RGBA{R: 20, G: 25, B: 35, A: 170}
	cardColor    = color.RGBA{R: 255, G: 255, B: 255, A: 28}
)

func (g *Game) drawBackground(screen *ebiten.Image) {
	bd := g.session.Backdrop()
	if bd.Solid() {
		screen.Fill(bd.Top)
		return
	}
	// Vertical gradient, one row at a time
	h := screen.Bounds().Dy()
	w := float32(screen.Bounds().Dx())
	for y := 0; y < h; y++ {
		ratio := 0.0
		if h > 1 {
			ratio = float64(y) / float64(h-1)
		}
		vector.DrawFilledRect(screen, 0, float32(y), w, 1, canvas.Lerp(bd.Top, bd.Bottom, ratio), false)
	}
}

// drawButton draws a labelled button in its normal, hovered or pressed state.
func drawButton(screen *ebiten.Image, b ui.Button, label string, active bool) {
	var bgColor color.Color
	switch {
	case b.Held:
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	case active:
		bgColor = color.RGBA{R: 120, G: 140, B: 190, A: 255} // Active
	case b.Hovered:
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	default:
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	r := b.Rect
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bgColor, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, borderColor, false)

	textWidth := len(label) * charWidth
	textX := int(r.X) + (int(r.W)-textWidth)/2
	textY := int(r.Y) + (int(r.H)-16)/2
	ebitenutil.DebugPrintAt(screen, label, textX, textY)
}

func (g *Game) drawHero(screen *ebiten.Image) {
	p := g.page
	y := int(p.Hero.Rect.Y)
	ebitenutil.DebugPrintAt(screen, "AMBIENT CANVAS", 20, y-70)
	ebitenutil.DebugPrintAt(screen, "Sun, rain, snow and night behind your page.", 20, y-50)

	// Glow under the primary button, in the theme color
	glow := p.Theme.Glow()
	r := p.Hero.Rect
	for i := 3; i >= 1; i-- {
		spread := float32(i * 5)
		c := glow
		c.A = uint8(int(glow.A) / (i + 1))
		vector.DrawFilledRect(screen, float32(r.X)-spread, float32(r.Y)+4-spread, float32(r.W)+2*spread, float32(r.H)+2*spread, c, true)
	}
	primary := p.Theme.Primary()
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), primary, false)
	label := p.Hero.Label
	ebitenutil.DebugPrintAt(screen, label, int(r.X)+(int(r.W)-len(label)*charWidth)/2, int(r.Y)+(int(r.H)-16)/2)

	drawButton(screen, p.Ambience.Button, p.Ambience.Label(), p.Ambience.Pressed)
}

// drawCard draws the tilt card as a perspective-projected quad.
func (g *Game) drawCard(screen *ebiten.Image) {
	p := g.page
	quad := p.Tilt.Project(p.Card, ui.Perspective)
	fillPolygon(screen, quad[:], cardColor, ebiten.BlendSourceOver, &g.vertices, &g.indices)
	for i := range quad {
		a, b := quad[i], quad[(i+1)%len(quad)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), 1, borderColor, true)
	}

	cx, cy := p.Card.Center()
	lines := []string{
		"Mode: " + g.session.Mode().String(),
		fmt.Sprintf("Particles: %d", len(g.session.Particles())),
		fmt.Sprintf("Tilt: %+.1f / %+.1f", p.Tilt.RotateX, p.Tilt.RotateY),
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(cx)-len(line)*charWidth/2, int(cy)-24+i*16)
	}
}

func (g *Game) drawSections(screen *ebiten.Image) {
	p := g.page
	w, h := p.Size()
	now := time.Since(g.start)
	for _, s := range p.Reveal.Sections {
		y := p.ScreenY(s.Top)
		if y > h || y+s.Height < 0 {
			continue
		}
		if !s.InView {
			// Not revealed yet: only the outline
			vector.StrokeRect(screen, 20, float32(y), float32(w-40), float32(s.Height), 1, color.RGBA{R: 60, G: 70, B: 90, A: 120}, false)
			continue
		}
		vector.DrawFilledRect(screen, 20, float32(y), float32(w-40), float32(s.Height), sectionColor, false)
		vector.StrokeRect(screen, 20, float32(y), float32(w-40), float32(s.Height), 2, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, s.Title, 32, int(y)+12)
		for i, line := range s.Lines {
			ebitenutil.DebugPrintAt(screen, line, 32, int(y)+40+i*18)
		}

		primary := p.Theme.Primary()
		barW := w - 200
		for i, bar := range s.Bars {
			by := float32(y) + 44 + float32(i)*56
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d%%", bar.Label, bar.Percent), 32, int(by)-2)
			vector.DrawFilledRect(screen, 32, by+18, float32(barW), 14, color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
			fill := p.Reveal.BarLevel(s, bar, now) * barW
			if fill > 0 {
				vector.DrawFilledRect(screen, 32, by+18, float32(fill), 14, primary, false)
			}
		}
	}

	if n := len(p.Reveal.Sections); n > 0 && p.Reveal.Sections[n-1].InView {
		drawButton(screen, p.Subscribe, p.Subscribe.Label, false)
		if p.Message != "" {
			r := p.Subscribe.Rect
			ebitenutil.DebugPrintAt(screen, p.Message, int(r.X+r.W)+12, int(r.Y)+8)
		}
	}
}

// drawLevelMeter shows how loud the ambience currently plays.
func (g *Game) drawLevelMeter(screen *ebiten.Image) {
	_, h := g.page.Size()
	barWidth, barHeight := 180, 16
	barX, barY := 20, int(h)-barHeight-20
	segmentWidth := float64(barWidth) / meterSegments

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), 1, color.RGBA{R: 60, G: 70, B: 90, A: 255}, false)

	lit := int(clamp01(g.level*4) * meterSegments)
	for i := 0; i < lit; i++ {
		segmentX := float64(barX) + float64(i)*segmentWidth
		c := meterColor(float64(i) / meterSegments)
		vector.DrawFilledRect(screen, float32(segmentX)+1, float32(barY)+2, float32(segmentWidth)-2, float32(barHeight)-4, c, false)
	}

	label := "Ambience off"
	if g.meter.Playing() {
		label = fmt.Sprintf("Ambience %d%%", int(g.meter.Volume()*100+0.5))
	}
	ebitenutil.DebugPrintAt(screen, label, barX, barY-16)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	p := g.page
	if !p.PanelOpen {
		drawButton(screen, p.Gear, p.Gear.Label, false)
		return
	}
	r := p.PanelRect()
	px := int(r.X)
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), panelColor, false)
	vector.StrokeLine(screen, float32(r.X), 0, float32(r.X), float32(r.H), 2, borderColor, false)
	ebitenutil.DebugPrintAt(screen, "Settings", px+10, 12)
	drawButton(screen, p.Close, p.Close.Label, false)

	ebitenutil.DebugPrintAt(screen, "Environment", px+10, 42)
	for i, b := range p.Modes.Buttons {
		drawButton(screen, b, b.Label, i == p.Modes.Active)
	}

	ebitenutil.DebugPrintAt(screen, "Theme", px+10, 112)
	for i, b := range p.Swatches {
		c := p.Theme.Swatches[i]
		sr := b.Rect
		vector.DrawFilledRect(screen, float32(sr.X), float32(sr.Y), float32(sr.W), float32(sr.H), c, false)
		if i == p.Theme.Active {
			vector.StrokeRect(screen, float32(sr.X)-2, float32(sr.Y)-2, float32(sr.W)+4, float32(sr.H)+4, 2, color.White, false)
		}
	}

	// Volume slider
	s := p.Volume
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Rain volume %d%%", int(s.Value*100+0.5)), px+10, int(s.Rect.Y)-18)
	vector.DrawFilledRect(screen, float32(s.Rect.X), float32(s.Rect.Y), float32(s.Rect.W), float32(s.Rect.H), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	vector.StrokeRect(screen, float32(s.Rect.X), float32(s.Rect.Y), float32(s.Rect.W), float32(s.Rect.H), 2, color.RGBA{R: 70, G: 80, B: 100, A: 255}, false)
	fillWidth := s.Fraction() * s.Rect.W
	if fillWidth > 0 {
		vector.DrawFilledRect(screen, float32(s.Rect.X), float32(s.Rect.Y), float32(fillWidth), float32(s.Rect.H), p.Theme.Primary(), false)
	}
	knobX := s.Rect.X + fillWidth
	knobY := s.Rect.Y + s.Rect.H/2
	vector.DrawFilledCircle(screen, float32(knobX), float32(knobY), 8, color.White, true)
	vector.StrokeCircle(screen, float32(knobX), float32(knobY), 8, 2, color.RGBA{R: 100, G: 110, B: 130, A: 255}, true)

	drawButton(screen, p.Preview, p.Preview.Label, false)
	drawButton(screen, p.Source, p.Source.Label, false)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := fmt.Sprintf("%s | %s | 1-5 mode, A ambience, P preview, M settings, N newsletter, Esc/Q quit",
		g.session.Mode(), formatDuration(time.Since(g.start)))
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}
