package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings for the application. View-specific
// handlers consult the relevant subset; the help overlay renders from it.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// Collections
	CycleFilter key.Binding
	PrevPage    key.Binding
	NextPage    key.Binding

	// Mail actions
	Compose    key.Binding
	Reply      key.Binding
	Archive    key.Binding
	ToggleRead key.Binding

	// Feed actions
	Edit   key.Binding
	Toggle key.Binding // like on feed, follow on profile

	// Finance actions
	CycleMonths  key.Binding
	Transactions key.Binding
	Search       key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Send      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),

		// Collections
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next page"),
		),

		// Mail actions
		Compose: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Compose"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reply"),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Archive/unarchive"),
		),
		ToggleRead: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Toggle read"),
		),

		// Feed actions
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit post"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Like/follow"),
		),

		// Finance actions
		CycleMonths: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Cycle months"),
		),
		Transactions: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Transactions"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),

		// Forms
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Send: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Send"),
		),
	}
}
