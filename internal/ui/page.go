package ui

import (
	"image/color"
	"strings"
	"time"

	"github.com/iburimskiy/ambient-canvas/internal/scene"
)

const (
	MsgInvalidEmail = "Please enter a valid email address."
	MsgSubscribed   = "Thanks! You are subscribed."
)

// ValidateEmail applies the newsletter form check: a non-empty address that
// contains '@'. It returns the message to show.
func ValidateEmail(email string) (string, bool) {
	if email == "" || !strings.Contains(email, "@") {
		return MsgInvalidEmail, false
	}
	return MsgSubscribed, true
}

// Scene is the animation side the page drives.
type Scene interface {
	SetMode(scene.Mode)
	Mode() scene.Mode
}

// Sound is the ambience side the page drives.
type Sound interface {
	Play(temporary bool)
	Stop()
	SetVolume(v float64)
	Volume() float64
	SetSource(source string)
}

// Theme is the swatch palette; the active swatch is the primary color.
type Theme struct {
	Swatches []color.NRGBA
	Active   int
}

func (t Theme) Primary() color.NRGBA {
	if t.Active < 0 || t.Active >= len(t.Swatches) {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return t.Swatches[t.Active]
}

// Glow is the primary color at alpha 0x66, used for the hero button shadow.
func (t Theme) Glow() color.NRGBA {
	c := t.Primary()
	c.A = 0x66
	return c
}

// PageOptions configures a Page. Scene and Sound are required.
type PageOptions struct {
	Scene  Scene
	Sound  Sound
	Theme  Theme
	Tilt   float64
	Reveal *Reveal

	// Prompt asks for an email address; ok is false when dismissed.
	Prompt func() (email string, ok bool)
	// Notify shows the newsletter result.
	Notify func(msg string, ok bool)
	// Choose asks for a local ambience file; ok is false when dismissed.
	Choose func() (path string, ok bool)
}

const (
	panelWidth = 260
	wheelStep  = 40
	sectionGap = 40
)

// Page is the control surface around the canvas: settings panel, hero
// buttons, tilt card, newsletter and scroll-revealed sections.
type Page struct {
	scene  Scene
	sound  Sound
	prompt func() (string, bool)
	notify func(string, bool)
	choose func() (string, bool)

	PanelOpen bool
	Gear      Button
	Close     Button
	Modes     Group
	Swatches  []Button
	Theme     Theme
	Volume    Slider
	Preview   Button
	Source    Button

	Hero      Button
	Ambience  Toggle
	Card      Rect
	Tilt      Tilt
	maxTilt   float64
	Subscribe Button
	Message   string

	Reveal *Reveal
	Scroll float64

	width, height float64
	content       float64
}

func NewPage(opts PageOptions, width, height int) *Page {
	p := &Page{
		scene:   opts.Scene,
		sound:   opts.Sound,
		prompt:  opts.Prompt,
		notify:  opts.Notify,
		choose:  opts.Choose,
		Theme:   opts.Theme,
		maxTilt: opts.Tilt,
		Reveal:  opts.Reveal,
		Tilt:    Flat,
	}
	if p.maxTilt <= 0 {
		p.maxTilt = TiltMaxDegrees
	}
	if p.Reveal == nil {
		p.Reveal = NewReveal(RevealThreshold, BarDelay, DefaultSections()...)
	}

	p.Gear.Label = "Settings"
	p.Close.Label = "x"
	for _, m := range scene.Modes() {
		p.Modes.Buttons = append(p.Modes.Buttons, Button{Label: m.String()})
	}
	p.Swatches = make([]Button, len(p.Theme.Swatches))
	p.Volume = Slider{Min: 0, Max: 1, Step: 0.01, Value: p.sound.Volume()}
	p.Preview.Label = "Test"
	p.Source.Label = "Local file"
	p.Hero.Label = "Explore"
	p.Ambience = Toggle{Off: "Ambience", On: "Stop"}
	p.Subscribe.Label = "Subscribe"

	p.syncMode()
	p.Layout(width, height)
	return p
}

// DefaultSections is the scrollable content below the hero.
func DefaultSections() []*Section {
	return []*Section{
		{Name: "about", Title: "About", Height: 200, Lines: []string{
			"Ambient backdrops drawn behind the page: sun, rain, snow and night.",
			"Pick a mode in the settings panel or press 1-5.",
		}},
		{Name: "skills", Title: "Skills", Height: 240, Bars: []Bar{
			{Label: "Go", Percent: 90},
			{Label: "Graphics", Percent: 75},
			{Label: "Audio", Percent: 60},
		}},
		{Name: "contact", Title: "Newsletter", Height: 200, Lines: []string{
			"Occasional notes on ambient rendering.",
		}},
	}
}

// Layout positions every control for a viewport of width x height.
func (p *Page) Layout(width, height int) {
	p.width, p.height = float64(max(width, 1)), float64(max(height, 1))

	top := p.height - 60
	for _, s := range p.Reveal.Sections {
		s.Top = top
		top += s.Height + sectionGap
	}
	p.content = top
	p.setScroll(p.Scroll)
}

func (p *Page) setScroll(v float64) {
	p.Scroll = min(max(v, 0), p.maxScroll())
	p.place()
}

func (p *Page) maxScroll() float64 {
	return max(p.content-p.height, 0)
}

// place computes scroll-dependent and panel rectangles.
func (p *Page) place() {
	w := p.width
	p.Gear.Rect = Rect{X: w - 92, Y: 8, W: 80, H: 24}

	px := w - panelWidth
	p.Close.Rect = Rect{X: px + panelWidth - 34, Y: 8, W: 24, H: 24}
	for i := range p.Modes.Buttons {
		p.Modes.Buttons[i].Rect = Rect{X: px + 10 + float64(i)*48, Y: 60, W: 44, H: 28}
	}
	for i := range p.Swatches {
		p.Swatches[i].Rect = Rect{X: px + 10 + float64(i)*40, Y: 130, W: 28, H: 28}
	}
	p.Volume.Rect = Rect{X: px + 10, Y: 200, W: 180, H: 16}
	p.Preview.Rect = Rect{X: px + 200, Y: 194, W: 50, H: 28}
	p.Source.Rect = Rect{X: px + 10, Y: 240, W: 120, H: 28}

	y := -p.Scroll
	p.Hero.Rect = Rect{X: 20, Y: y + 150, W: 120, H: 40}
	p.Ambience.Rect = Rect{X: 150, Y: y + 150, W: 120, H: 40}
	p.Card = Rect{X: max(w-360, 300), Y: y + 90, W: 300, H: 180}

	if n := len(p.Reveal.Sections); n > 0 {
		last := p.Reveal.Sections[n-1]
		p.Subscribe.Rect = Rect{X: 20, Y: last.Top - p.Scroll + 110, W: 120, H: 32}
	}
}

// PanelRect is the settings panel area while open.
func (p *Page) PanelRect() Rect {
	return Rect{X: p.width - panelWidth, Y: 0, W: panelWidth, H: p.height}
}

// Update applies one tick of pointer input.
func (p *Page) Update(ptr Pointer, now time.Duration) {
	if ptr.Wheel != 0 {
		p.setScroll(p.Scroll - ptr.Wheel*wheelStep)
	}
	p.Reveal.Observe(p.Scroll, p.height, now)

	content := ptr
	// The open panel covers the gear.
	if !p.PanelOpen && p.Gear.Update(ptr) {
		p.TogglePanel()
	} else if p.PanelOpen {
		if p.Close.Update(ptr) {
			p.TogglePanel()
		}
		if i := p.Modes.Update(ptr); i >= 0 {
			p.SelectMode(scene.Modes()[i])
		}
		for i := range p.Swatches {
			if p.Swatches[i].Update(ptr) {
				p.SelectSwatch(i)
			}
		}
		if p.Volume.Update(ptr) {
			p.sound.SetVolume(p.Volume.Value)
		}
		if p.Preview.Update(ptr) {
			p.PreviewAmbience()
		}
		if p.Source.Update(ptr) {
			p.ChooseSource()
		}
		if p.PanelRect().Contains(ptr.X, ptr.Y) {
			content.JustPressed = false
		}
	}

	if p.Hero.Update(content) && len(p.Reveal.Sections) > 0 {
		p.setScroll(p.Reveal.Sections[0].Top)
	}
	if p.Ambience.Update(content) {
		p.ToggleAmbience()
	}
	if p.Subscribe.Update(content) {
		p.PromptNewsletter()
	}

	p.Tilt = TiltAt(p.Card, content.X, content.Y, p.maxTilt)
}

// TogglePanel opens or closes the settings panel.
func (p *Page) TogglePanel() {
	p.PanelOpen = !p.PanelOpen
}

// SelectMode makes m the only active mode button and switches the scene.
func (p *Page) SelectMode(m scene.Mode) {
	p.scene.SetMode(m)
	p.syncMode()
}

func (p *Page) syncMode() {
	for i, m := range scene.Modes() {
		if m == p.scene.Mode() {
			p.Modes.Active = i
		}
	}
}

// SelectSwatch makes swatch i the primary color.
func (p *Page) SelectSwatch(i int) {
	if i < 0 || i >= len(p.Theme.Swatches) {
		return
	}
	p.Theme.Active = i
}

// ToggleAmbience stops the ambience when pressed, otherwise switches to rain
// and starts it.
func (p *Page) ToggleAmbience() {
	if p.Ambience.Pressed {
		p.sound.Stop()
		p.Ambience.Pressed = false
		return
	}
	p.SelectMode(scene.Rain)
	p.sound.Play(false)
	p.Ambience.Pressed = true
}

// NudgeVolume moves the volume by delta, as the slider would.
func (p *Page) NudgeVolume(delta float64) {
	v := min(max(p.Volume.Value+delta, p.Volume.Min), p.Volume.Max)
	if v == p.Volume.Value {
		return
	}
	p.Volume.Value = v
	p.sound.SetVolume(v)
}

// PreviewAmbience plays the ambience briefly at the current volume.
func (p *Page) PreviewAmbience() {
	p.sound.Play(true)
}

// ChooseSource replaces the ambience source with a local file.
func (p *Page) ChooseSource() {
	if p.choose == nil {
		return
	}
	path, ok := p.choose()
	if !ok || path == "" {
		return
	}
	p.sound.SetSource(path)
	p.Ambience.Pressed = false
}

// PromptNewsletter asks for an address and submits it unless dismissed.
func (p *Page) PromptNewsletter() {
	if p.prompt == nil {
		return
	}
	if email, ok := p.prompt(); ok {
		p.Submit(email)
	}
}

// Submit validates a newsletter address and records the resulting message.
// Nothing is sent anywhere.
func (p *Page) Submit(email string) bool {
	msg, ok := ValidateEmail(email)
	p.Message = msg
	if p.notify != nil {
		p.notify(msg, ok)
	}
	return ok
}

// ScreenY converts a content-space y to the viewport.
func (p *Page) ScreenY(y float64) float64 { return y - p.Scroll }

func (p *Page) Size() (float64, float64) { return p.width, p.height }
