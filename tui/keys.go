package tui

import (
	"github.com/artyrk/go-uploadwidget/widget"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for both views.
type KeyMap struct {
	view widget.View

	Submit   key.Binding
	Browse   key.Binding
	NextExp  key.Binding
	PrevExp  key.Binding
	Copy     key.Binding
	NewUp    key.Binding
	Back     key.Binding
	Quit     key.Binding
	ShowHelp key.Binding
}

// DefaultKeyMap ...
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "upload"),
		),
		Browse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "browse"),
		),
		NextExp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next expiration"),
		),
		PrevExp: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev expiration"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy link"),
		),
		NewUp: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "upload more"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

// ShortHelp returns the bindings for the active view.
func (k KeyMap) ShortHelp() []key.Binding {
	if k.view == widget.ViewShowingResult {
		return []key.Binding{k.Copy, k.NewUp, k.Quit}
	}
	return []key.Binding{k.Submit, k.Browse, k.NextExp, k.Quit, k.ShowHelp}
}

// FullHelp ...
func (k KeyMap) FullHelp() [][]key.Binding {
	if k.view == widget.ViewShowingResult {
		return [][]key.Binding{{k.Copy, k.NewUp}, {k.Quit}}
	}
	return [][]key.Binding{
		{k.Submit, k.Browse, k.Back},
		{k.NextExp, k.PrevExp},
		{k.Quit, k.ShowHelp},
	}
}
