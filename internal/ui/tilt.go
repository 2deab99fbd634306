package ui

import "math"

const (
	// TiltMaxDegrees is the rotation at the card edge.
	TiltMaxDegrees = 10
	TiltScale      = 1.02
	Perspective    = 1000
)

// Tilt is the transform applied to a card under the pointer.
type Tilt struct {
	RotateX, RotateY float64 // degrees
	Scale            float64
}

// Flat is the resting transform.
var Flat = Tilt{Scale: 1}

// TiltAt returns the transform for a pointer at (px, py). Outside the card the
// transform is Flat.
func TiltAt(card Rect, px, py, maxDegrees float64) Tilt {
	if !card.Contains(px, py) || card.W <= 0 || card.H <= 0 {
		return Flat
	}
	cx, cy := card.W/2, card.H/2
	x, y := px-card.X, py-card.Y
	return Tilt{
		RotateX: (y - cy) / cy * -maxDegrees,
		RotateY: (x - cx) / cx * maxDegrees,
		Scale:   TiltScale,
	}
}

// Project returns the card corners after the transform, viewed through a
// perspective of the given distance from the card plane. Corners are ordered
// top-left, top-right, bottom-right, bottom-left.
func (t Tilt) Project(card Rect, perspective float64) [4][2]float64 {
	cx, cy := card.Center()
	hw, hh := card.W/2*t.Scale, card.H/2*t.Scale
	ax := t.RotateX * math.Pi / 180
	ay := t.RotateY * math.Pi / 180
	sinX, cosX := math.Sincos(ax)
	sinY, cosY := math.Sincos(ay)

	local := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float64
	for i, c := range local {
		x, y, z := c[0], c[1], 0.0

		// rotateY
		x, z = x*cosY+z*sinY, -x*sinY+z*cosY
		// rotateX, with y pointing down the screen
		y, z = y*cosX+z*sinX, -y*sinX+z*cosX

		k := 1.0
		if perspective > 0 && z < perspective {
			k = perspective / (perspective - z)
		}
		out[i] = [2]float64{cx + x*k, cy + y*k}
	}
	return out
}
