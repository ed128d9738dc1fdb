package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the home-view key bindings
type KeyMap struct {
	SwitchModel key.Binding
	Palette     key.Binding
	Favourites  key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchModel: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "switch model"),
		),
		Palette: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "commands"),
		),
		Favourites: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "favourites"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchModel, k.Palette, k.Favourites, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchModel, k.Palette, k.Favourites},
		{k.Help, k.Quit},
	}
}
