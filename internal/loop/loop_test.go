package loop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/garland/internal/garland"
	"github.com/san-kum/garland/internal/input"
	"github.com/san-kum/garland/internal/render"
)

func keys(ks ...input.Key) []input.Key { return ks }

// lastBody returns the stripped garland line of the most recent frame.
func lastBody(out string) string {
	frames := strings.Split(out, ansi.CursorUp(1))
	last := frames[len(frames)-1]
	lines := strings.Split(last, "\n")
	return strings.TrimSpace(ansi.Strip(lines[len(lines)-1]))
}

var _ = Describe("Loop", func() {
	var (
		clock  *fakeClock
		poller *scriptPoller
		out    *bytes.Buffer
		st     *garland.State
		l      *Loop
	)

	build := func(w io.Writer) {
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.ANSI)
		l = New(st, render.NewPainter(r, render.DefaultGlyphs), render.NewScreen(w), poller,
			WithClock(clock.Now),
			WithSleeper(clock.Sleep),
			WithRandom(rand.New(rand.NewSource(1))),
		)
	}

	BeforeEach(func() {
		clock = newFakeClock()
		poller = &scriptPoller{}
		out = &bytes.Buffer{}

		var err error
		st, err = garland.NewState([]garland.Color{"1", "2", "3"}, clock.Now)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Run", func() {
		It("stops on the interrupt key and restores the terminal", func() {
			poller.keys = keys(input.KeyNone, input.KeyNone)
			build(out)

			Expect(l.Run(context.Background())).To(Succeed())
			Expect(l.Status()).To(Equal(Terminating))
			Expect(poller.acquired).To(Equal(1))
			Expect(poller.released).To(Equal(1))
			Expect(out.String()).To(ContainSubstring(DefaultGoodbye))
			Expect(out.String()).To(HaveSuffix(ansi.ResetStyle + ansi.ShowCursor))
		})

		It("draws one frame per iteration and sleeps the mode delay", func() {
			poller.keys = keys(input.KeyNone, input.KeyNone, input.KeyNone)
			build(out)

			Expect(l.Run(context.Background())).To(Succeed())
			Expect(st.Tick()).To(Equal(3))
			Expect(clock.sleeps).To(Equal([]time.Duration{
				garland.Static.Delay(), garland.Static.Delay(), garland.Static.Delay(),
			}))
		})

		It("shows the running light walking along the wire", func() {
			st.SetMode(garland.Running)
			build(out)

			var seen []string
			for i := 0; i < 4; i++ {
				poller.keys = keys(input.KeyNone)
				_, err := l.Step()
				Expect(err).NotTo(HaveOccurred())
				seen = append(seen, lastBody(out.String()))
			}
			Expect(seen).To(Equal([]string{"-●-○-○-", "-○-●-○-", "-○-○-●-", "-●-○-○-"}))
		})

		It("returns a terminal error without drawing when acquire fails", func() {
			poller.acquireErr = errors.New("not a tty")
			build(out)

			err := l.Run(context.Background())
			Expect(err).To(MatchError(garland.ErrTerminalIO))
			Expect(out.Len()).To(BeZero())
			Expect(poller.polls).To(BeZero())
		})

		It("terminates on a poll error and still restores the terminal", func() {
			poller.pollErr = errors.New("read: input/output error")
			build(out)

			err := l.Run(context.Background())
			Expect(err).To(MatchError(garland.ErrTerminalIO))
			var te *garland.TerminalError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Op).To(Equal("poll"))
			Expect(poller.released).To(Equal(1))
		})

		It("terminates on a write error and still restores the terminal", func() {
			poller.keys = keys(input.KeyNone, input.KeyNone)
			build(&brokenWriter{after: 1})

			err := l.Run(context.Background())
			Expect(err).To(MatchError(garland.ErrTerminalIO))
			Expect(poller.released).To(Equal(1))
			Expect(l.Status()).To(Equal(Terminating))
		})

		It("stops when the context is canceled", func() {
			poller.keys = keys(input.KeyNone, input.KeyNone, input.KeyNone)
			build(out)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			Expect(l.Run(ctx)).To(Succeed())
			Expect(poller.polls).To(BeZero())
			Expect(poller.released).To(Equal(1))
		})

		It("restores the terminal when a frame panics", func() {
			poller.keys = keys(input.KeyNone, input.KeyNone)
			poller.panicOn = 2
			build(out)

			Expect(func() { _ = l.Run(context.Background()) }).To(Panic())
			Expect(poller.released).To(Equal(1))
		})
	})

	Describe("keys", func() {
		BeforeEach(func() { build(out) })

		It("switches mode on enter and restarts the tick", func() {
			poller.keys = keys(input.KeyNone, input.KeyNone, input.KeyEnter)
			l.Step()
			l.Step()
			Expect(st.Tick()).To(Equal(2))

			l.Step()
			Expect(st.Mode()).To(Equal(garland.Disco))
			Expect(st.Tick()).To(Equal(1))
		})

		It("hides and shows the header", func() {
			poller.keys = keys('h')
			l.Step()
			Expect(st.HeaderVisible()).To(BeFalse())

			frames := strings.Split(out.String(), "\r"+ansi.EraseLineRight)
			Expect(frames[len(frames)-2]).To(Equal("\n"))

			poller.keys = keys('h')
			l.Step()
			Expect(st.HeaderVisible()).To(BeTrue())
			Expect(ansi.Strip(out.String())).To(ContainSubstring("mode: Static"))
		})

		It("ignores unknown keys", func() {
			poller.keys = keys('x', 'q', ' ')
			for i := 0; i < 3; i++ {
				status, err := l.Step()
				Expect(err).NotTo(HaveOccurred())
				Expect(status).To(Equal(Running))
			}
			Expect(st.Mode()).To(Equal(garland.Static))
			Expect(st.HeaderVisible()).To(BeTrue())
			Expect(st.AutoSwitch()).To(BeFalse())
		})

		It("does not draw the frame that carried the interrupt", func() {
			poller.keys = keys(input.KeyInterrupt)
			status, err := l.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(Terminating))
			Expect(out.Len()).To(BeZero())
			Expect(st.Tick()).To(BeZero())
		})
	})

	Describe("auto-switch", func() {
		BeforeEach(func() { build(out) })

		step := func() {
			poller.keys = keys(input.KeyNone)
			_, err := l.Step()
			Expect(err).NotTo(HaveOccurred())
		}

		It("switches exactly once after the interval", func() {
			poller.keys = keys('a')
			l.Step()
			Expect(st.AutoSwitch()).To(BeTrue())

			clock.t = clock.t.Add(4 * time.Second)
			step()
			clock.t = clock.t.Add(999 * time.Millisecond)
			step()
			Expect(st.Mode()).To(Equal(garland.Static))

			clock.t = clock.t.Add(2 * time.Millisecond)
			step()
			Expect(st.Mode()).To(Equal(garland.Disco))

			clock.t = clock.t.Add(time.Second)
			step()
			Expect(st.Mode()).To(Equal(garland.Disco))
		})

		It("never switches while disabled", func() {
			clock.t = clock.t.Add(time.Minute)
			step()
			Expect(st.Mode()).To(Equal(garland.Static))
		})

		It("keeps pacing by the new mode after switching", func() {
			st.SetMode(garland.BlinkAll)
			poller.keys = keys('a')
			for i := 0; i < 41; i++ {
				poller.keys = append(poller.keys, input.KeyNone)
			}
			Expect(l.Run(context.Background())).To(Succeed())

			// flash frames are 400ms apart, so the switch lands on the 14th frame
			Expect(st.Mode()).To(Equal(garland.Filling))
			Expect(clock.sleeps).To(HaveLen(42))
			Expect(clock.sleeps[12]).To(Equal(garland.BlinkAll.Delay()))
			Expect(clock.sleeps[13]).To(Equal(garland.Filling.Delay()))
		})
	})
})
