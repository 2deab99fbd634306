package game

import (
	"image/color"
	"math"
	"testing"
	"time"
)

func TestHsva(t *testing.T) {
	tests := []struct {
		h, s, v float64
		want    color.RGBA
	}{
		{0, 1, 1, color.RGBA{R: 255, A: 255}},
		{120, 1, 1, color.RGBA{G: 255, A: 255}},
		{240, 1, 1, color.RGBA{B: 255, A: 255}},
		{360, 1, 1, color.RGBA{R: 255, A: 255}},
		{-120, 1, 1, color.RGBA{B: 255, A: 255}},
		{0, 0, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{200, 0.8, 0, color.RGBA{A: 255}},
		{60, 2, 1, color.RGBA{R: 255, G: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := hsva(tt.h, tt.s, tt.v, 255); got != tt.want {
			t.Errorf("hsva(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
		}
	}
}

func TestMeterColor(t *testing.T) {
	quiet, loud := meterColor(0), meterColor(1)
	if quiet.B <= quiet.R {
		t.Errorf("quiet end %v should be blue", quiet)
	}
	if loud.R <= loud.B {
		t.Errorf("loud end %v should be red", loud)
	}
	if meterColor(5) != loud || meterColor(-1) != quiet {
		t.Error("ratio is not clamped")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                              "00:00",
		-time.Second:                   "00:00",
		59 * time.Second:               "00:59",
		61 * time.Second:               "01:01",
		12*time.Minute + 3*time.Second: "12:03",
		3500 * time.Millisecond:        "00:03",
		time.Hour + 2*time.Second:      "1:00:02",
	}
	for d, want := range tests {
		if got := formatDuration(d); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestEllipsePoints(t *testing.T) {
	pts := ellipsePoints(100, 50, 40, 10)
	if len(pts) < 12 {
		t.Fatalf("only %d points", len(pts))
	}
	for i, p := range pts {
		dx, dy := (p[0]-100)/40, (p[1]-50)/10
		if d := dx*dx + dy*dy; math.Abs(d-1) > 1e-9 {
			t.Errorf("point %d = %v is off the ellipse", i, p)
		}
	}
	if n := len(ellipsePoints(0, 0, 1000, 1000)); n != 96 {
		t.Errorf("large ellipse uses %d points, want the cap of 96", n)
	}
}
