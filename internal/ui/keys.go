package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	FocusNext  key.Binding
	FocusPrev  key.Binding
	FocusForm  key.Binding
	LeaveForm  key.Binding
	YankBranch key.Binding
	YankLedger key.Binding
	Stop       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusNext: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next panel"),
		),
		FocusPrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous panel"),
		),
		FocusForm: key.NewBinding(
			key.WithKeys("n", "i"),
			key.WithHelp("n", "new run"),
		),
		LeaveForm: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "leave form"),
		),
		YankBranch: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "yank branch"),
		),
		YankLedger: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank ledger"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop run"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}
