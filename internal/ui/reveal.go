package ui

import "time"

const (
	RevealThreshold = 0.15
	BarDelay        = 200 * time.Millisecond
	BarFill         = 900 * time.Millisecond
)

// Bar is a skill bar that fills to Percent once its section is revealed.
type Bar struct {
	Label   string
	Percent int
}

// Section is a block of scrollable content, positioned in content space.
type Section struct {
	Name   string
	Title  string
	Lines  []string
	Top    float64
	Height float64
	Bars   []Bar

	InView     bool
	revealedAt time.Duration
}

// Reveal marks sections as in view the first time enough of them is visible.
// Sections never leave the in-view state.
type Reveal struct {
	Threshold float64
	Delay     time.Duration
	Fill      time.Duration
	Sections  []*Section
}

func NewReveal(threshold float64, delay time.Duration, sections ...*Section) *Reveal {
	if threshold <= 0 {
		threshold = RevealThreshold
	}
	return &Reveal{Threshold: threshold, Delay: delay, Fill: BarFill, Sections: sections}
}

// VisibleFraction is the share of a section's height inside the viewport
// [scroll, scroll+viewHeight].
func VisibleFraction(top, height, scroll, viewHeight float64) float64 {
	if height <= 0 {
		return 0
	}
	lo := max(top, scroll)
	hi := min(top+height, scroll+viewHeight)
	if hi <= lo {
		return 0
	}
	return (hi - lo) / height
}

// Observe reveals sections for the current scroll position and returns the
// names of those revealed by this call.
func (r *Reveal) Observe(scroll, viewHeight float64, now time.Duration) []string {
	var revealed []string
	for _, s := range r.Sections {
		if s.InView {
			continue
		}
		f := VisibleFraction(s.Top, s.Height, scroll, viewHeight)
		if f > 0 && f >= r.Threshold {
			s.InView = true
			s.revealedAt = now
			revealed = append(revealed, s.Name)
		}
	}
	return revealed
}

// BarLevel is how far bar b of section s is filled at now, in [0, Percent/100].
func (r *Reveal) BarLevel(s *Section, b Bar, now time.Duration) float64 {
	target := clamp01(float64(b.Percent) / 100)
	if !s.InView {
		return 0
	}
	start := s.revealedAt + r.Delay
	if now < start {
		return 0
	}
	if r.Fill <= 0 {
		return target
	}
	return target * clamp01(float64(now-start)/float64(r.Fill))
}
