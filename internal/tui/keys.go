package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the TUI keybindings.
type KeyMap struct {
	Quit      key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Search    key.Binding
	RemoveAll key.Binding
	NewSearch key.Binding
	Generate  key.Binding
	Dismiss   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add / open"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+s", "tab"),
			key.WithHelp("tab", "find recipes"),
		),
		RemoveAll: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear ingredients"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate instructions"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "dismiss notification"),
		),
	}
}
