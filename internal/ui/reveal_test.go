package ui

import (
	"math"
	"testing"
	"time"
)

func TestVisibleFraction(t *testing.T) {
	tests := []struct {
		name                            string
		top, height, scroll, viewHeight float64
		want                            float64
	}{
		{"fully visible", 100, 100, 0, 500, 1},
		{"below", 600, 100, 0, 500, 0},
		{"above", 0, 100, 200, 500, 0},
		{"bottom edge", 485, 100, 0, 500, 0.15},
		{"top edge", 100, 200, 250, 500, 0.25},
		{"touching", 500, 100, 0, 500, 0},
		{"empty", 100, 0, 0, 500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleFraction(tt.top, tt.height, tt.scroll, tt.viewHeight)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("VisibleFraction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRevealThreshold(t *testing.T) {
	s := &Section{Name: "skills", Top: 500, Height: 100}
	r := NewReveal(RevealThreshold, BarDelay, s)

	if got := r.Observe(0, 510, 0); len(got) != 0 || s.InView {
		t.Fatalf("10%% visible revealed the section: %v", got)
	}
	got := r.Observe(0, 515, time.Second)
	if len(got) != 1 || got[0] != "skills" || !s.InView {
		t.Fatalf("15%% visible did not reveal: %v", got)
	}
	// Stays revealed and is reported once.
	if got := r.Observe(10000, 500, 2*time.Second); len(got) != 0 || !s.InView {
		t.Errorf("second observe = %v, in view = %v", got, s.InView)
	}
}

func TestBarLevel(t *testing.T) {
	bar := Bar{Label: "Go", Percent: 80}
	s := &Section{Name: "skills", Top: 0, Height: 100, Bars: []Bar{bar}}
	r := NewReveal(RevealThreshold, BarDelay, s)

	if got := r.BarLevel(s, bar, time.Hour); got != 0 {
		t.Fatalf("unrevealed bar level = %v", got)
	}
	revealAt := 5 * time.Second
	r.Observe(0, 500, revealAt)

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{revealAt, 0},
		{revealAt + BarDelay - time.Millisecond, 0},
		{revealAt + BarDelay, 0},
		{revealAt + BarDelay + r.Fill/2, 0.4},
		{revealAt + BarDelay + r.Fill, 0.8},
		{revealAt + time.Minute, 0.8},
	}
	for _, tt := range tests {
		if got := r.BarLevel(s, bar, tt.at); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("BarLevel at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
}
