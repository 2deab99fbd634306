package game

import (
	"fmt"
	"image/color"
	"math"
	"time"
)

// hsva builds a color from hue (degrees, any sign), saturation and value in
// [0, 1], and alpha.
func hsva(h, s, v float64, a uint8) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s, v = clamp01(s), clamp01(v)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch int(h / 60) {
	case 0:
		r, g, b = c, x, 0
	case 1:
		r, g, b = x, c, 0
	case 2:
		r, g, b = 0, c, x
	case 3:
		r, g, b = 0, x, c
	case 4:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	to8 := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return color.RGBA{R: to8(r), G: to8(g), B: to8(b), A: a}
}

// meterColor runs from blue at the quiet end of the meter to red at the loud
// end.
func meterColor(ratio float64) color.RGBA {
	return hsva(200-clamp01(ratio)*200, 0.8, 0.9, 220)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// formatDuration formats a duration as MM:SS, or H:MM:SS past the hour.
func formatDuration(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
