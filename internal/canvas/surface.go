// Package canvas defines the 2D immediate-mode drawing surface that particles
// render onto, plus helpers shared by its implementations.
package canvas

import (
	"image/color"
)

// Surface is the capability set a particle's Draw step depends on. Style
// setters change state used by the following fill or stroke calls.
type Surface interface {
	ClearRect(x, y, w, h float64)
	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetLineWidth(w float64)
	FillCircle(cx, cy, r float64)
	StrokeCircle(cx, cy, r float64)
	StrokeLine(x0, y0, x1, y1 float64)
	FillEllipse(cx, cy, rx, ry float64)
}

// Canvas is a Surface with a resizable backing store.
type Canvas interface {
	Surface
	Resize(width, height int)
	Size() (width, height int)
}

// Clear erases the whole backing store of c.
func Clear(c Canvas) {
	w, h := c.Size()
	c.ClearRect(0, 0, float64(w), float64(h))
}

// RGBA builds a straight-alpha color from 8-bit channels and an alpha in [0,1].
// Alpha is clamped because it has to fit a byte.
func RGBA(r, g, b uint8, alpha float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// Straight returns c as straight-alpha components in [0,1].
func Straight(c color.Color) (r, g, b, a float32) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(n.R) / 255, float32(n.G) / 255, float32(n.B) / 255, float32(n.A) / 255
}

// Hex parses "#rrggbb" or "#rrggbbaa". Invalid input yields opaque black and false.
func Hex(s string) (color.NRGBA, bool) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{A: 255}, false
	}
	var v [4]uint8
	v[3] = 255
	for i := 0; i < len(s)/2; i++ {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return color.NRGBA{A: 255}, false
		}
		v[i] = hi<<4 | lo
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Lerp mixes a and b, t=0 gives a.
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
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
