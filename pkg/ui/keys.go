package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the map TUI responds to.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	SizeMode   key.Binding
	ColorMode  key.Binding
	DepthUp    key.Binding
	DepthDown  key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Find       key.Binding
	CopyPath   key.Binding
	ClearSel   key.Binding
	Rescan     key.Binding
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		SizeMode:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle size metric")),
		ColorMode: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cycle color mode")),
		DepthUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more depth")),
		DepthDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less depth")),
		ZoomIn:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "zoom into selection")),
		ZoomOut:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "zoom out")),
		Find:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find file")),
		CopyPath:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy selected path")),
		ClearSel:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear selection")),
		Rescan:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
	}
}
