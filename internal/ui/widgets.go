// Package ui holds the page controls around the ambient canvas as plain state
// machines. Frontends feed them a Pointer each tick and draw whatever state
// results; nothing here touches a window or a terminal.
package ui

import "math"

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Pointer is one tick of mouse input.
type Pointer struct {
	X, Y         float64
	JustPressed  bool
	JustReleased bool
	Down         bool
	// Wheel is the vertical scroll delta; positive scrolls content up.
	Wheel float64
}

// Button registers a click when a press that started inside is released
// inside.
type Button struct {
	Rect    Rect
	Label   string
	Hovered bool
	Held    bool
}

// Update advances the button and reports a click.
func (b *Button) Update(p Pointer) bool {
	b.Hovered = b.Rect.Contains(p.X, p.Y)
	if b.Hovered && p.JustPressed {
		b.Held = true
	}
	if p.JustReleased {
		clicked := b.Held && b.Hovered
		b.Held = false
		return clicked
	}
	return false
}

// Group is a set of buttons of which exactly one is active.
type Group struct {
	Buttons []Button
	Active  int
}

// Update returns the index of a clicked button, which becomes the only active
// one, or -1.
func (g *Group) Update(p Pointer) int {
	clicked := -1
	for i := range g.Buttons {
		if g.Buttons[i].Update(p) {
			clicked = i
		}
	}
	if clicked >= 0 {
		g.Active = clicked
	}
	return clicked
}

// Slider maps a horizontal drag onto [Min, Max].
type Slider struct {
	Rect     Rect
	Min, Max float64
	// Step rounds values when positive.
	Step     float64
	Value    float64
	Dragging bool
}

// Update reports whether the value changed this tick.
func (s *Slider) Update(p Pointer) bool {
	if p.JustPressed && s.Rect.Contains(p.X, p.Y) {
		s.Dragging = true
	}
	if !s.Dragging {
		return false
	}
	if !p.Down || p.JustReleased {
		s.Dragging = false
	}
	v := s.valueAt(p.X)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

func (s *Slider) valueAt(x float64) float64 {
	f := 0.0
	if s.Rect.W > 0 {
		f = clamp01((x - s.Rect.X) / s.Rect.W)
	}
	v := s.Min + f*(s.Max-s.Min)
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		v = math.Min(math.Max(v, s.Min), s.Max)
	}
	return v
}

// Fraction is the knob position in [0,1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return clamp01((s.Value - s.Min) / (s.Max - s.Min))
}

// Toggle is a button with a pressed state and a label per state.
type Toggle struct {
	Button
	Pressed bool
	Off, On string
}

func (t *Toggle) Label() string {
	if t.Pressed {
		return t.On
	}
	return t.Off
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
