package garland

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bulb is the rendered state of one light for one frame.
type Bulb struct {
	Color Color
	Lit   bool
}

// Mode is one of the built-in animation patterns.
type Mode int

const (
	Static Mode = iota
	Disco
	Running
	Flicker
	BlinkAll
	Filling
	OddEven
	Blinking
	Flipping

	// ModeCount is the number of defined modes.
	ModeCount = int(Flipping) + 1
)

type modeInfo struct {
	name  string
	delay time.Duration
}

var modeTable = [ModeCount]modeInfo{
	Static:   {"Static", 200 * time.Millisecond},
	Disco:    {"Disco", 100 * time.Millisecond},
	Running:  {"Running light", 50 * time.Millisecond},
	Flicker:  {"Flicker", 150 * time.Millisecond},
	BlinkAll: {"Flash", 400 * time.Millisecond},
	Filling:  {"Filling", 50 * time.Millisecond},
	OddEven:  {"Odd/even", 250 * time.Millisecond},
	Blinking: {"Blinking", 250 * time.Millisecond},
	Flipping: {"Flipping", 200 * time.Millisecond},
}

// Modes returns every mode in switching order.
func Modes() []Mode {
	out := make([]Mode, ModeCount)
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

func (m Mode) Valid() bool {
	return m >= 0 && int(m) < ModeCount
}

func (m Mode) Name() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTable[m].name
}

func (m Mode) String() string { return m.Name() }

// Delay is the pause between two frames of this mode.
func (m Mode) Delay() time.Duration {
	if !m.Valid() {
		return modeTable[Static].delay
	}
	return modeTable[m].delay
}

// Next returns the mode that follows m, wrapping after the last one.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % ModeCount)
}

// ParseMode accepts a mode name (case and surrounding space ignored) or its
// 1-based position.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > ModeCount {
			return 0, fmt.Errorf("unknown mode: %d (want 1..%d)", n, ModeCount)
		}
		return Mode(n - 1), nil
	}
	for _, m := range Modes() {
		if strings.EqualFold(m.Name(), s) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode: %q", s)
}

// Generate produces one frame for the given tick. It reads only its
// arguments; Disco and Flicker draw from r.
func (m Mode) Generate(tick int, base []Color, p Palette, r Random) []Bulb {
	n := len(base)
	out := make([]Bulb, n)
	if n == 0 {
		return out
	}

	switch m {
	case Static:
		for i, c := range base {
			out[i] = Bulb{c, true}
		}

	case Disco:
		for i := range out {
			out[i] = Bulb{p.Pick(r), true}
		}

	case Running:
		active := tick % n
		for i, c := range base {
			out[i] = Bulb{c, i == active}
		}

	case Flicker:
		for i, c := range base {
			out[i] = Bulb{c, r.Intn(2) == 0}
		}

	case BlinkAll:
		on := tick%2 == 0
		for i, c := range base {
			out[i] = Bulb{c, on}
		}

	case Filling:
		step := tick % (2 * n)
		for i, c := range base {
			var on bool
			if step < n {
				on = i <= step
			} else {
				on = i > step-n
			}
			out[i] = Bulb{c, on}
		}

	case OddEven:
		for i, c := range base {
			out[i] = Bulb{c, (tick+i)%2 == 0}
		}

	case Blinking:
		gated := tick%2 == 0
		for i, c := range base {
			out[i] = Bulb{c, !gated && (tick/4+i)%2 == 0}
		}

	case Flipping:
		// rotate right: the last k colors move to the front
		k := tick % n
		for i := range base {
			out[(i+k)%n] = Bulb{base[i], true}
		}

	default:
		for i, c := range base {
			out[i] = Bulb{c, false}
		}
	}

	return out
}
