// Package loop drives the garland: one frame per iteration, paced by the
// active mode's delay.
package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/garland/internal/garland"
	"github.com/san-kum/garland/internal/input"
	"github.com/san-kum/garland/internal/render"
)

// Status is the loop's lifecycle state.
type Status int

const (
	Running Status = iota
	Terminating
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "terminating"
}

// DefaultGoodbye is written after the terminal is restored.
const DefaultGoodbye = "garland switched off"

// Sleeper pauses for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Loop owns a garland state for the lifetime of one run.
type Loop struct {
	state   *garland.State
	painter *render.Painter
	screen  *render.Screen
	poller  input.Poller

	palette garland.Palette
	rng     garland.Random
	now     func() time.Time
	sleep   Sleeper
	logger  *log.Logger
	goodbye string

	status Status
}

type Option func(*Loop)

// WithClock sets the time source for auto-switch. Use the same clock the
// state was built with.
func WithClock(now func() time.Time) Option { return func(l *Loop) { l.now = now } }

func WithSleeper(s Sleeper) Option { return func(l *Loop) { l.sleep = s } }

// WithPalette sets the colors Disco picks from.
func WithPalette(p garland.Palette) Option { return func(l *Loop) { l.palette = p } }

// WithRandom sets the source for the random modes.
func WithRandom(r garland.Random) Option { return func(l *Loop) { l.rng = r } }

func WithLogger(lg *log.Logger) Option { return func(l *Loop) { l.logger = lg } }

func WithGoodbye(msg string) Option { return func(l *Loop) { l.goodbye = msg } }

func New(st *garland.State, p *render.Painter, s *render.Screen, in input.Poller, opts ...Option) *Loop {
	l := &Loop{
		state:   st,
		painter: p,
		screen:  s,
		poller:  in,
		palette: garland.DefaultPalette,
		now:     time.Now,
		sleep:   Sleep,
		logger:  log.New(io.Discard),
		goodbye: DefaultGoodbye,
		status:  Running,
	}
	for _, o := range opts {
		o(l)
	}
	if l.rng == nil {
		l.rng = newRandom(l.now())
	}
	return l
}

func (l *Loop) Status() Status { return l.status }

func (l *Loop) State() *garland.State { return l.state }

// Run acquires the terminal, draws frames until interrupted, canceled or an
// I/O failure, and restores the terminal on every way out. Interrupts and
// cancellation return nil.
func (l *Loop) Run(ctx context.Context) (err error) {
	if err := l.poller.Acquire(); err != nil {
		l.status = Terminating
		return &garland.TerminalError{Op: "acquire", Err: err}
	}
	defer func() {
		if rerr := l.poller.Release(); rerr != nil && err == nil {
			err = &garland.TerminalError{Op: "restore", Err: rerr}
		}
		if cerr := l.screen.Close(l.goodbye); cerr != nil && err == nil {
			err = &garland.TerminalError{Op: "write", Err: cerr}
		}
	}()

	l.logger.Debug("loop started", "bulbs", l.state.BulbCount(), "mode", l.state.Mode())

	for l.status == Running {
		if ctx.Err() != nil {
			l.terminate("canceled")
			break
		}
		if _, err := l.Step(); err != nil {
			return err
		}
		if l.status != Running {
			break
		}
		if err := l.sleep(ctx, l.state.Mode().Delay()); err != nil {
			l.terminate("canceled")
		}
	}
	return nil
}

// Step runs one frame without sleeping: input, auto-switch, draw, advance.
func (l *Loop) Step() (Status, error) {
	if l.status != Running {
		return l.status, nil
	}

	key, ok, err := l.poller.Poll()
	if err != nil {
		l.terminate("poll failed")
		return l.status, &garland.TerminalError{Op: "poll", Err: err}
	}
	if ok {
		l.handleKey(key)
		if l.status != Running {
			return l.status, nil
		}
	}

	if l.state.AutoSwitchDue(l.now()) {
		l.state.SwitchMode()
		l.logger.Debug("auto switch", "mode", l.state.Mode())
	}

	bulbs := l.state.Frame(l.palette, l.rng)
	header, body := l.painter.Frame(l.state, bulbs)
	if err := l.screen.Draw(header, body); err != nil {
		l.terminate("write failed")
		return l.status, &garland.TerminalError{Op: "write", Err: err}
	}

	l.state.Advance()
	return l.status, nil
}

func (l *Loop) handleKey(k input.Key) {
	switch k {
	case input.KeyEnter:
		l.state.SwitchMode()
		l.logger.Debug("mode switched", "mode", l.state.Mode())
	case 'h':
		l.state.ToggleHeader()
		l.logger.Debug("header toggled", "visible", l.state.HeaderVisible())
	case 'a':
		l.state.ToggleAutoSwitch()
		l.logger.Debug("auto switch toggled", "enabled", l.state.AutoSwitch())
	case input.KeyInterrupt:
		l.terminate("interrupt key")
	}
}

func (l *Loop) terminate(reason string) {
	if l.status == Terminating {
		return
	}
	l.status = Terminating
	l.logger.Debug("terminating", "reason", reason, "mode", l.state.Mode(), "tick", l.state.Tick())
}
