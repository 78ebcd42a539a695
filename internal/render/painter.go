package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/garland/internal/garland"
)

// Glyphs are the characters a garland is drawn with.
type Glyphs struct {
	On   string
	Off  string
	Wire string
}

var DefaultGlyphs = Glyphs{On: "●", Off: "○", Wire: "-"}

// Painter turns bulbs and state into styled strings.
type Painter struct {
	r      *lipgloss.Renderer
	glyphs Glyphs

	wire    lipgloss.Style
	off     lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	auto    lipgloss.Style
	autoOn  lipgloss.Style
	autoOff lipgloss.Style
	hint    lipgloss.Style
}

// NewPainter builds the styles on r so color output follows r's profile.
func NewPainter(r *lipgloss.Renderer, g Glyphs) *Painter {
	return &Painter{
		r:       r,
		glyphs:  g,
		wire:    r.NewStyle(),
		off:     r.NewStyle().Faint(true).Foreground(lipgloss.Color("7")),
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		label:   r.NewStyle().Foreground(lipgloss.Color("6")),
		auto:    r.NewStyle().Foreground(lipgloss.Color("4")),
		autoOn:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		autoOff: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("7")),
	}
}

// Bulb renders one light: its own color when lit, a dim neutral glyph when not.
func (p *Painter) Bulb(b garland.Bulb) string {
	if !b.Lit {
		return p.off.Render(p.glyphs.Off)
	}
	return p.r.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(p.glyphs.On)
}

// Garland joins the bulbs with wire segments, including one at each end.
func (p *Painter) Garland(bulbs []garland.Bulb) string {
	wire := p.wire.Render(p.glyphs.Wire)

	var sb strings.Builder
	sb.WriteString(wire)
	for _, b := range bulbs {
		sb.WriteString(p.Bulb(b))
		sb.WriteString(wire)
	}
	return sb.String()
}

// Header is the status line: active mode, auto-switch state and key hints.
func (p *Painter) Header(m garland.Mode, auto bool) string {
	status := p.autoOff.Render("off")
	if auto {
		status = p.autoOn.Render("on")
	}
	return strings.Join([]string{
		p.title.Render("garland"),
		p.label.Render("mode: " + m.Name()),
		p.auto.Render("auto: ") + status,
		p.hint.Render("keys: enter, a, h, ctrl+c"),
	}, "  ")
}

// Frame renders both lines for the current state. The header is empty when
// hidden so the garland keeps its row.
func (p *Painter) Frame(st *garland.State, bulbs []garland.Bulb) (header, body string) {
	if st.HeaderVisible() {
		header = p.Header(st.Mode(), st.AutoSwitch())
	}
	return header, " " + p.Garland(bulbs) + " "
}
