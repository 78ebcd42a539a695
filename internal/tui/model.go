// Package tui is the Bubble Tea frontend: the same garland state and
// painter, with Bubble Tea owning the terminal, input and frame timing.
package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/garland/internal/garland"
	"github.com/san-kum/garland/internal/render"
)

// FrameMsg asks the model to produce the next frame.
type FrameMsg time.Time

// Model renders one garland per frame and schedules the next frame after the
// active mode's delay.
type Model struct {
	state   *garland.State
	painter *render.Painter
	palette garland.Palette
	rng     garland.Random
	now     func() time.Time
	logger  *log.Logger
	help    help.Model

	header string
	body   string
	done   bool
}

// NewModel draws the first frame up front so View has something to show.
func NewModel(st *garland.State, p *render.Painter, pal garland.Palette, r garland.Random, now func() time.Time, lg *log.Logger) Model {
	if now == nil {
		now = time.Now
	}
	if lg == nil {
		lg = log.New(io.Discard)
	}
	m := Model{
		state:   st,
		painter: p,
		palette: pal,
		rng:     r,
		now:     now,
		logger:  lg,
		help:    help.New(),
	}
	m.frame()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.state.Mode().Delay(), func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// frame renders the current tick and then advances it.
func (m *Model) frame() {
	bulbs := m.state.Frame(m.palette, m.rng)
	m.header, m.body = m.painter.Frame(m.state, bulbs)
	m.state.Advance()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.done = true
			m.logger.Debug("quit", "mode", m.state.Mode())
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.state.SwitchMode()
			m.logger.Debug("mode switched", "mode", m.state.Mode())
		case key.Matches(msg, keys.Header):
			m.state.ToggleHeader()
		case key.Matches(msg, keys.Auto):
			m.state.ToggleAutoSwitch()
		}
		return m, nil

	case FrameMsg:
		if m.state.AutoSwitchDue(m.now()) {
			m.state.SwitchMode()
			m.logger.Debug("auto switch", "mode", m.state.Mode())
		}
		m.frame()
		return m, m.nextFrame()
	}

	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	view := m.header + "\n" + m.body
	if m.state.HeaderVisible() {
		view += "\n" + m.help.View(keys)
	}
	return view + "\n"
}

// Run starts the program on the current terminal.
func Run(m Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
