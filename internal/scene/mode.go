package scene

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Mode is the selected ambient theme.
type Mode int

const (
	Sun Mode = iota
	Rain
	Snow
	Night
	Off
)

// ErrUnknownMode is returned by ParseMode for names outside the five modes.
var ErrUnknownMode = errors.New("unknown mode")

var modeNames = [...]string{
	Sun:   "sun",
	Rain:  "rain",
	Snow:  "snow",
	Night: "night",
	Off:   "off",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name to its Mode, case-insensitively.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return Off, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Modes lists every mode in selector order.
func Modes() []Mode {
	return []Mode{Sun, Rain, Snow, Night, Off}
}

// Population sizes per mode.
const (
	SunMotes   = 50
	RainDrops  = 100
	Snowflakes = 80
	Stars      = 150
	Clouds     = 5
)

// Population returns the fixed number of particles a mode activates.
func (m Mode) Population() int {
	switch m {
	case Sun:
		return SunMotes
	case Rain:
		return RainDrops
	case Snow:
		return Snowflakes
	case Night:
		return Stars + Clouds
	}
	return 0
}

// Backdrop is the style painted behind the drawing surface. Solid backdrops
// have Top == Bottom.
type Backdrop struct {
	Top    color.NRGBA
	Bottom color.NRGBA
}

// Solid reports whether the backdrop is a single color.
func (b Backdrop) Solid() bool { return b.Top == b.Bottom }

func solid(c color.NRGBA) Backdrop { return Backdrop{Top: c, Bottom: c} }

var backdrops = [...]Backdrop{
	Sun:   {Top: color.NRGBA{0x2c, 0x3e, 0x50, 0xff}, Bottom: color.NRGBA{0xfd, 0x74, 0x6c, 0xff}},
	Rain:  solid(color.NRGBA{0x0f, 0x20, 0x27, 0xff}),
	Snow:  solid(color.NRGBA{0x1b, 0x27, 0x35, 0xff}),
	Night: solid(color.NRGBA{0x00, 0x00, 0x00, 0xff}),
	Off:   solid(color.NRGBA{0x1a, 0x1a, 0x2e, 0xff}),
}

// BackdropFor returns the backdrop a mode applies.
func BackdropFor(m Mode) Backdrop {
	if m < 0 || int(m) >= len(backdrops) {
		return backdrops[Off]
	}
	return backdrops[m]
}
