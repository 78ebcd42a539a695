package garland

import "time"

// AutoSwitchInterval is how long a mode stays active when auto-switch is on.
const AutoSwitchInterval = 5 * time.Second

// State is the mutable garland: base colors, active mode, tick counter and
// the header and auto-switch flags.
type State struct {
	base          []Color
	mode          Mode
	tick          int
	headerVisible bool
	autoSwitch    bool
	lastSwitch    time.Time
	now           func() time.Time
}

// NewState builds a state around base colors produced by [Assign]. The
// header starts visible and auto-switch starts off. A nil clock means
// time.Now.
func NewState(base []Color, now func() time.Time) (*State, error) {
	if len(base) < 1 {
		return nil, &ConfigError{Field: "bulb count", Value: len(base), Reason: "must be at least 1"}
	}
	if now == nil {
		now = time.Now
	}
	colors := make([]Color, len(base))
	copy(colors, base)

	return &State{
		base:          colors,
		mode:          Static,
		headerVisible: true,
		lastSwitch:    now(),
		now:           now,
	}, nil
}

func (s *State) BulbCount() int { return len(s.base) }

// BaseColors returns a copy of the per-bulb colors.
func (s *State) BaseColors() []Color {
	out := make([]Color, len(s.base))
	copy(out, s.base)
	return out
}

func (s *State) Mode() Mode            { return s.mode }
func (s *State) Tick() int             { return s.tick }
func (s *State) HeaderVisible() bool   { return s.headerVisible }
func (s *State) AutoSwitch() bool      { return s.autoSwitch }
func (s *State) LastSwitch() time.Time { return s.lastSwitch }

// SwitchMode moves to the next mode and restarts its animation.
func (s *State) SwitchMode() {
	s.SetMode(s.mode.Next())
}

// SetMode jumps to m with the same restart semantics as SwitchMode.
// Invalid modes are ignored.
func (s *State) SetMode(m Mode) {
	if !m.Valid() {
		return
	}
	s.mode = m
	s.tick = 0
	s.lastSwitch = s.now()
}

func (s *State) ToggleHeader() {
	s.headerVisible = !s.headerVisible
}

// ToggleAutoSwitch flips auto-switch and restarts its timer so enabling it
// never switches on the spot.
func (s *State) ToggleAutoSwitch() {
	s.autoSwitch = !s.autoSwitch
	s.lastSwitch = s.now()
}

// AutoSwitchDue reports whether auto-switch is on and the current mode has
// been shown for longer than AutoSwitchInterval.
func (s *State) AutoSwitchDue(now time.Time) bool {
	return s.autoSwitch && now.Sub(s.lastSwitch) > AutoSwitchInterval
}

// Advance moves to the next frame. Call once per rendered frame, after the
// frame has been generated.
func (s *State) Advance() {
	s.tick++
}

// Frame runs the active mode for the current tick.
func (s *State) Frame(p Palette, r Random) []Bulb {
	return s.mode.Generate(s.tick, s.base, p, r)
}
