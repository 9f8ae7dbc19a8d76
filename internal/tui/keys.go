package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser's keybindings beyond table navigation.
type KeyMap struct {
	Today      key.Binding
	NextSunday key.Binding
	PrevSunday key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		NextSunday: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next sunday"),
		),
		PrevSunday: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous sunday"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) help() string {
	var out string
	for i, b := range []key.Binding{k.Today, k.NextSunday, k.PrevSunday, k.Quit} {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return "↑/↓ move  " + out
}
