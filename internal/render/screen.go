package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Screen redraws a fixed two-line area in place: header above, garland below.
type Screen struct {
	w       io.Writer
	started bool
}

func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Begin hides the cursor and reserves the header row. Draw calls it on first use.
func (s *Screen) Begin() error {
	if s.started {
		return nil
	}
	s.started = true
	_, err := io.WriteString(s.w, ansi.HideCursor+"\n")
	return err
}

// Draw moves back to the header row, clears both lines and writes them.
func (s *Screen) Draw(header, body string) error {
	if err := s.Begin(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(ansi.CursorUp(1))
	sb.WriteString("\r" + ansi.EraseLineRight)
	sb.WriteString(header)
	sb.WriteString("\n\r" + ansi.EraseLineRight)
	sb.WriteString(body)

	_, err := io.WriteString(s.w, sb.String())
	return err
}

// Close leaves the drawing area, resets styling, prints msg and shows the cursor.
func (s *Screen) Close(msg string) error {
	var sb strings.Builder
	sb.WriteString("\n" + ansi.ResetStyle)
	if msg != "" {
		sb.WriteString(msg + "\n")
	}
	sb.WriteString(ansi.ResetStyle + ansi.ShowCursor)

	_, err := io.WriteString(s.w, sb.String())
	return err
}
