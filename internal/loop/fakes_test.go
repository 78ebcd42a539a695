package loop

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/garland/internal/input"
)

// scriptPoller hands out one scripted key per Poll and sends the interrupt
// key once the script runs out.
type scriptPoller struct {
	keys       []input.Key
	acquired   int
	released   int
	polls      int
	acquireErr error
	pollErr    error
	panicOn    int
}

func (p *scriptPoller) Acquire() error {
	if p.acquireErr != nil {
		return p.acquireErr
	}
	p.acquired++
	return nil
}

func (p *scriptPoller) Release() error {
	p.released++
	return nil
}

func (p *scriptPoller) Poll() (input.Key, bool, error) {
	p.polls++
	if p.panicOn > 0 && p.polls == p.panicOn {
		panic("poll exploded")
	}
	if p.pollErr != nil {
		return input.KeyNone, false, p.pollErr
	}
	if len(p.keys) == 0 {
		return input.KeyInterrupt, true, nil
	}
	k := p.keys[0]
	p.keys = p.keys[1:]
	if k == input.KeyNone {
		return input.KeyNone, false, nil
	}
	return k, true, nil
}

// fakeClock advances only when the loop sleeps.
type fakeClock struct {
	t      time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
	return nil
}

type brokenWriter struct{ after int }

func (w *brokenWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("write: broken pipe")
	}
	w.after--
	return len(p), nil
}
