package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next   key.Binding
	Header key.Binding
	Auto   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Auto, k.Header, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next mode"),
	),
	Header: key.NewBinding(
		key.WithKeys("h", "H"),
		key.WithHelp("h", "header"),
	),
	Auto: key.NewBinding(
		key.WithKeys("a", "A"),
		key.WithHelp("a", "auto"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}
