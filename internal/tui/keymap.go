package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the inspector.
type KeyMap struct {
	Quit       key.Binding
	Next       key.Binding
	Prev       key.Binding
	First      key.Binding
	Last       key.Binding
	ToggleAmps key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n", " "),
			key.WithHelp("→", "next column"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "previous column"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "initial state"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "final state"),
		),
		ToggleAmps: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all amplitudes"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.First, k.Last, k.ToggleAmps, k.Quit}
}
